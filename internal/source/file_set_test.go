package source_test

import (
	"testing"

	"bebopc/internal/source"
)

func TestResolveLineCol(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.bop", []byte("struct A {\n    int32 x;\n}\n"))

	cases := []struct {
		name  string
		span  source.Span
		line  uint32
		col   uint32
	}{
		{"start of file", source.Span{File: id, Start: 0, End: 6}, 1, 1},
		{"mid first line", source.Span{File: id, Start: 7, End: 8}, 1, 8},
		{"second line", source.Span{File: id, Start: 15, End: 20}, 2, 5},
		{"third line", source.Span{File: id, Start: 24, End: 25}, 3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, _ := fs.Resolve(tc.span)
			if start.Line != tc.line || start.Col != tc.col {
				t.Fatalf("Resolve(%v) = %d:%d, want %d:%d", tc.span, start.Line, start.Col, tc.line, tc.col)
			}
		})
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("crlf.bop", []byte("\xEF\xBB\xBFenum E {\r\n}\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "enum E {\n}\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lines.bop", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "one" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "two" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
}

func TestGetByPathTracksLatest(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.bop", []byte("struct A {}"))
	second := fs.AddVirtual("a.bop", []byte("struct B {}"))

	f, ok := fs.GetByPath("a.bop")
	if !ok {
		t.Fatal("GetByPath miss")
	}
	if f.ID != second {
		t.Fatalf("GetByPath returned %d, want latest %d", f.ID, second)
	}
}
