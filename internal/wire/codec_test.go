package wire_test

import (
	"bytes"
	"reflect"
	"testing"

	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/lexer"
	"bebopc/internal/parser"
	"bebopc/internal/schema"
	"bebopc/internal/sema"
	"bebopc/internal/source"
	"bebopc/internal/wire"
)

// compileSchema runs the whole front end so codec tests exercise real
// compiled IR rather than hand-built definitions.
func compileSchema(t *testing.T, input string) *schema.Schema {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("codec.bop", []byte(input))

	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})

	s, ok := sema.Analyze(builder, []ast.FileID{res.File}, sema.Options{Reporter: reporter})
	if !ok {
		t.Fatalf("schema failed to compile: %v", bag.Items())
	}
	return s
}

func TestEmptyStruct(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `struct Empty {}`))

	enc, err := c.Encode("Empty", wire.Record{})
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 0 {
		t.Fatalf("empty struct encodes to % x, want zero bytes", enc)
	}

	dec, err := c.Decode("Empty", []byte{})
	if err != nil {
		t.Fatal(err)
	}
	if rec, ok := dec.(wire.Record); !ok || len(rec) != 0 {
		t.Fatalf("decode = %#v", dec)
	}
}

func TestPrimitiveStruct(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `struct Point { int32 x; int32 y; }`))

	enc, err := c.Encode("Point", wire.Record{"x": int32(1), "y": int32(-2)})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x00, 0x00, 0x00, 0xFE, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoding = % x, want % x", enc, want)
	}

	dec, err := c.Decode("Point", enc)
	if err != nil {
		t.Fatal(err)
	}
	rec := dec.(wire.Record)
	if rec["x"] != int32(1) || rec["y"] != int32(-2) {
		t.Fatalf("decode = %#v", rec)
	}
}

func TestMessagePresentAndAbsent(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `message M { 1 -> int32 a; 2 -> string b; }`))

	enc, err := c.Encode("M", wire.Record{"a": int32(5)})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x06, 0x00, 0x00, 0x00, 0x01, 0x05, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoding = % x, want % x", enc, want)
	}

	dec, err := c.Decode("M", enc)
	if err != nil {
		t.Fatal(err)
	}
	rec := dec.(wire.Record)
	if rec["a"] != int32(5) {
		t.Fatalf("a = %#v", rec["a"])
	}
	if _, present := rec["b"]; present {
		t.Fatal("absent field materialized")
	}
}

func TestEmptyMessage(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `message M { 1 -> int32 a; }`))

	enc, err := c.Encode("M", wire.Record{})
	if err != nil {
		t.Fatal(err)
	}
	// body is just the sentinel byte
	want := []byte{0x01, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoding = % x, want % x", enc, want)
	}

	dec, err := c.Decode("M", enc)
	if err != nil {
		t.Fatal(err)
	}
	if rec := dec.(wire.Record); len(rec) != 0 {
		t.Fatalf("decode = %#v", rec)
	}
}

func TestUnionEncoding(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `
union U {
    1 -> struct A { byte x; };
    2 -> struct B { byte y; };
}`))

	enc, err := c.Encode("U", wire.UnionValue{Discriminator: 2, Value: wire.Record{"y": byte(9)}})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x02, 0x00, 0x00, 0x00, 0x02, 0x09}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoding = % x, want % x", enc, want)
	}

	dec, err := c.Decode("U", enc)
	if err != nil {
		t.Fatal(err)
	}
	uv := dec.(wire.UnionValue)
	if uv.Discriminator != 2 || uv.Value.(wire.Record)["y"] != byte(9) {
		t.Fatalf("decode = %#v", uv)
	}
}

func TestUnionUnknownDiscriminator(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `union U { 1 -> struct A { byte x; }; }`))

	stream := []byte{0x02, 0x00, 0x00, 0x00, 0x07, 0x09}
	_, err := c.Decode("U", stream)
	if err == nil {
		t.Fatal("unknown discriminator must fail")
	}
}

func TestMapRoundTrip(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `struct KV { map[string, int32] m; }`))

	in := wire.Record{"m": []wire.MapEntry{
		{Key: "a", Value: int32(1)},
		{Key: "b", Value: int32(2)},
	}}
	enc, err := c.Encode("KV", in)
	if err != nil {
		t.Fatal(err)
	}

	dec, err := c.Decode("KV", enc)
	if err != nil {
		t.Fatal(err)
	}
	entries := dec.(wire.Record)["m"].([]wire.MapEntry)
	if len(entries) != 2 {
		t.Fatalf("entries = %#v", entries)
	}
	found := map[string]int32{}
	for _, e := range entries {
		found[e.Key.(string)] = e.Value.(int32)
	}
	if found["a"] != 1 || found["b"] != 2 {
		t.Fatalf("pairings = %#v", found)
	}
}

func TestUnknownFieldSkip(t *testing.T) {
	// writer has fields {1,2,3}; reader's older schema only has {1,3}
	writerCodec := wire.NewCodec(compileSchema(t, `
message Wide { 1 -> int32 a; 2 -> string b; 3 -> byte c; }`))
	readerCodec := wire.NewCodec(compileSchema(t, `
message Wide { 1 -> int32 a; 3 -> byte c; }`))

	enc, err := writerCodec.Encode("Wide", wire.Record{"a": int32(1), "b": "skip me", "c": byte(3)})
	if err != nil {
		t.Fatal(err)
	}

	dec, err := readerCodec.Decode("Wide", enc)
	if err != nil {
		t.Fatal(err)
	}
	rec := dec.(wire.Record)
	if rec["a"] != int32(1) {
		t.Fatalf("a = %#v", rec["a"])
	}
	if _, present := rec["b"]; present {
		t.Fatal("unknown field decoded")
	}
	// the reader seeks to the body end: on skip it returns what it has,
	// so field 3 (written after the unknown index) is dropped, not misread
}

func TestNewFieldCompatibility(t *testing.T) {
	oldCodec := wire.NewCodec(compileSchema(t, `message M { 1 -> int32 a; }`))
	newCodec := wire.NewCodec(compileSchema(t, `message M { 1 -> int32 a; 2 -> string b; }`))

	// old writer, new reader: the new field is absent
	enc, err := oldCodec.Encode("M", wire.Record{"a": int32(7)})
	if err != nil {
		t.Fatal(err)
	}
	dec, err := newCodec.Decode("M", enc)
	if err != nil {
		t.Fatal(err)
	}
	rec := dec.(wire.Record)
	if rec["a"] != int32(7) {
		t.Fatalf("a = %#v", rec["a"])
	}
	if _, present := rec["b"]; present {
		t.Fatal("field b should be absent")
	}
}

func TestNestedOptionEncoding(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `struct T { int32?? v; }`))

	// some(some(5)): two present bytes then the payload
	enc, err := c.Encode("T", wire.Record{"v": wire.Some(wire.Some(int32(5)))})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x01, 0x05, 0x00, 0x00, 0x00}
	if !bytes.Equal(enc, want) {
		t.Fatalf("some(some(5)) = % x, want % x", enc, want)
	}

	// some(none): present then absent
	enc, err = c.Encode("T", wire.Record{"v": wire.Some(wire.None())})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(enc, []byte{0x01, 0x00}) {
		t.Fatalf("some(none) = % x", enc)
	}

	dec, err := c.Decode("T", enc)
	if err != nil {
		t.Fatal(err)
	}
	v := dec.(wire.Record)["v"].(wire.Opt)
	if !v.Present {
		t.Fatal("outer option lost")
	}
	if inner := v.Value.(wire.Opt); inner.Present {
		t.Fatal("inner option should be absent")
	}
}

func TestArrayOfStructsRoundTrip(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `
struct Point { int32 x; int32 y; }
struct Path { Point[] points; string name; }`))

	in := wire.Record{
		"points": []any{
			wire.Record{"x": int32(1), "y": int32(2)},
			wire.Record{"x": int32(3), "y": int32(4)},
		},
		"name": "diagonal",
	}
	enc, err := c.Encode("Path", in)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := c.Decode("Path", enc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dec, in) {
		t.Fatalf("round trip = %#v, want %#v", dec, in)
	}
}

func TestByteArrayFieldRoundTrip(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `struct Blob { byte[] data; }`))

	in := wire.Record{"data": []byte{0xDE, 0xAD, 0xBE, 0xEF}}
	enc, err := c.Encode("Blob", in)
	if err != nil {
		t.Fatal(err)
	}
	// count prefix + raw run, same shape as a string payload
	want := []byte{0x04, 0x00, 0x00, 0x00, 0xDE, 0xAD, 0xBE, 0xEF}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encoding = % x", enc)
	}

	dec, err := c.Decode("Blob", enc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec.(wire.Record)["data"].([]byte), in["data"].([]byte)) {
		t.Fatalf("round trip = %#v", dec)
	}
}

func TestEnumPreservesUnknownValues(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `
enum Color { Red = 0; Green = 1; }
struct S { Color c; }`))

	// 99 is not a declared member; it must round-trip anyway
	enc, err := c.Encode("S", wire.Record{"c": uint32(99)})
	if err != nil {
		t.Fatal(err)
	}
	dec, err := c.Decode("S", enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec.(wire.Record)["c"] != uint32(99) {
		t.Fatalf("decode = %#v", dec)
	}
}

func TestMinimalSizeIsLowerBound(t *testing.T) {
	src := `
enum E { A = 0; }
struct Fixed { int32 a; E e; }
struct Var { string s; int32[] xs; }
message M { 1 -> string s; }
union U { 1 -> struct Inner { byte b; }; }
`
	s := compileSchema(t, src)
	c := wire.NewCodec(s)

	values := map[string]any{
		"Fixed": wire.Record{"a": int32(1), "e": uint32(0)},
		"Var":   wire.Record{"s": "hello", "xs": []any{int32(1), int32(2)}},
		"M":     wire.Record{"s": "x"},
		"U":     wire.UnionValue{Discriminator: 1, Value: wire.Record{"b": byte(0)}},
	}
	for name, v := range values {
		def, _ := s.Lookup(name)
		enc, err := c.Encode(name, v)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if uint32(len(enc)) < def.MinSize {
			t.Errorf("%s: encoded %d bytes < minimal size %d", name, len(enc), def.MinSize)
		}
	}
}

func TestDateRoundTrip(t *testing.T) {
	c := wire.NewCodec(compileSchema(t, `struct When { date at; }`))

	const ticks = int64(638412768000000000) // some fixed instant
	enc, err := c.Encode("When", wire.Record{"at": ticks})
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 8 {
		t.Fatalf("date encodes to %d bytes", len(enc))
	}
	dec, err := c.Decode("When", enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec.(wire.Record)["at"] != ticks {
		t.Fatalf("round trip = %#v", dec)
	}
}
