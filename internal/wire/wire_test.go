package wire_test

import (
	"bytes"
	"testing"

	"bebopc/internal/wire"
)

func TestPrimitiveLayout(t *testing.T) {
	w := wire.NewWriter()
	w.WriteBool(true)
	w.WriteUint8(0xAB)
	w.WriteInt16(-2)
	w.WriteUint32(0x12345678)
	w.WriteInt64(-1)

	want := []byte{
		0x01,
		0xAB,
		0xFE, 0xFF,
		0x78, 0x56, 0x34, 0x12,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("stream = % x, want % x", w.Bytes(), want)
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	w.WriteString("héllo")

	r := wire.NewReader(w.Bytes())
	got, err := r.ReadString()
	if err != nil || got != "héllo" {
		t.Fatalf("got %q, %v", got, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining = %d", r.Remaining())
	}

	// length prefix counts bytes, not runes
	if w.Bytes()[0] != 6 {
		t.Fatalf("byte length = %d", w.Bytes()[0])
	}
}

func TestGuidMixedEndianLayout(t *testing.T) {
	// canonical text 01020304-0506-0708-090a-0b0c0d0e0f10
	g := [16]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	w := wire.NewWriter()
	w.WriteGuid(g)

	want := []byte{
		0x04, 0x03, 0x02, 0x01, // first group little-endian
		0x06, 0x05,
		0x08, 0x07,
		0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("guid stream = % x, want % x", w.Bytes(), want)
	}

	r := wire.NewReader(w.Bytes())
	back, err := r.ReadGuid()
	if err != nil || back != g {
		t.Fatalf("round trip = % x, %v", back, err)
	}
}

func TestFrames(t *testing.T) {
	w := wire.NewWriter()
	frame := w.BeginFrame()
	w.WriteUint8(7)
	w.WriteUint8(9)
	w.EndFrame(frame)

	want := []byte{0x02, 0x00, 0x00, 0x00, 0x07, 0x09}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("framed stream = % x, want % x", w.Bytes(), want)
	}

	r := wire.NewReader(w.Bytes())
	end, err := r.ReadFrame()
	if err != nil || end != 6 {
		t.Fatalf("frame end = %d, %v", end, err)
	}
}

func TestReaderTruncation(t *testing.T) {
	r := wire.NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadUint32(); err == nil {
		t.Fatal("truncated read must fail")
	}

	r = wire.NewReader([]byte{0x0A, 0x00, 0x00, 0x00, 0x01})
	if _, err := r.ReadFrame(); err == nil {
		t.Fatal("frame longer than the stream must fail")
	}
}

func TestByteArraySpecialization(t *testing.T) {
	w := wire.NewWriter()
	w.WriteByteArray([]byte{1, 2, 3})

	want := []byte{0x03, 0x00, 0x00, 0x00, 1, 2, 3}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("byte array = % x", w.Bytes())
	}

	r := wire.NewReader(w.Bytes())
	got, err := r.ReadByteArray()
	if err != nil || !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("round trip = % x, %v", got, err)
	}
}
