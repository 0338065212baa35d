// Package wire implements the binary wire-format contract every
// generator back end must honor: little-endian primitives,
// length-prefixed strings, arrays and maps, one-byte option tags,
// framed messages with an end-of-message sentinel, and framed unions
// with a one-byte discriminator.
package wire

import (
	"encoding/binary"
	"math"
)

// Writer appends wire-format values to a growable buffer.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Bytes returns the encoded stream. The slice aliases the writer's
// buffer; callers must not keep writing while holding it.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteUint8(v byte) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteString writes a UInt32 byte length followed by UTF-8 bytes.
func (w *Writer) WriteString(v string) {
	w.WriteUint32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteByteArray is the Array(Byte) specialization: a UInt32 length
// followed by the raw byte run.
func (w *Writer) WriteByteArray(v []byte) {
	w.WriteUint32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteGuid writes 16 bytes in the mixed-endian layout: the first
// 4-byte group and the two following 2-byte groups little-endian, the
// trailing 8 bytes in textual order. g is in canonical textual order.
func (w *Writer) WriteGuid(g [16]byte) {
	w.buf = append(w.buf,
		g[3], g[2], g[1], g[0],
		g[5], g[4],
		g[7], g[6],
	)
	w.buf = append(w.buf, g[8:]...)
}

// WriteDate writes a signed 64-bit count of 100-nanosecond ticks since
// the runtime's fixed epoch.
func (w *Writer) WriteDate(ticks int64) {
	w.WriteInt64(ticks)
}

// BeginFrame reserves a UInt32 length slot and returns its position for
// EndFrame. Messages and unions use it for their body length prefix.
func (w *Writer) BeginFrame() int {
	pos := len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)
	return pos
}

// EndFrame patches the length slot at pos with the number of bytes
// written after it.
func (w *Writer) EndFrame(pos int) {
	binary.LittleEndian.PutUint32(w.buf[pos:], uint32(len(w.buf)-pos-4))
}
