package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnexpectedEOF is returned when a read runs past the end of the
// stream; the input is truncated or corrupt.
var ErrUnexpectedEOF = errors.New("wire: unexpected end of stream")

// ErrUnknownDiscriminator is returned when a union carries a
// discriminator the reader's schema does not know. The reader has
// already skipped to the end of the union body.
var ErrUnknownDiscriminator = errors.New("wire: unknown union discriminator")

// Reader consumes wire-format values from a byte slice.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos is the current read offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining reports how many bytes are left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Seek jumps to an absolute offset, clamped to the stream bounds.
func (r *Reader) Seek(pos int) {
	if pos > len(r.buf) {
		pos = len(r.buf)
	}
	if pos < 0 {
		pos = 0
	}
	r.pos = pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, n, r.Remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) ReadUint8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadByteArray reads the Array(Byte) specialization. The returned slice
// is a copy.
func (r *Reader) ReadByteArray() ([]byte, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadGuid undoes the mixed-endian layout back into textual order.
func (r *Reader) ReadGuid() ([16]byte, error) {
	var g [16]byte
	b, err := r.take(16)
	if err != nil {
		return g, err
	}
	g[0], g[1], g[2], g[3] = b[3], b[2], b[1], b[0]
	g[4], g[5] = b[5], b[4]
	g[6], g[7] = b[7], b[6]
	copy(g[8:], b[8:16])
	return g, nil
}

func (r *Reader) ReadDate() (int64, error) {
	return r.ReadInt64()
}

// ReadFrame reads a UInt32 body length and returns the body's end
// offset so the caller can skip unknown content.
func (r *Reader) ReadFrame() (end int, err error) {
	n, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if r.Remaining() < int(n) {
		return 0, fmt.Errorf("%w: frame of %d bytes, have %d", ErrUnexpectedEOF, n, r.Remaining())
	}
	return r.pos + int(n), nil
}
