package generator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/generator"
	"bebopc/internal/lexer"
	"bebopc/internal/parser"
	"bebopc/internal/schema"
	"bebopc/internal/sema"
	"bebopc/internal/source"
)

func compileSchema(t *testing.T, input string) *schema.Schema {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("gen.bop", []byte(input))

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

func TestRegistry(t *testing.T) {
	g, err := generator.Lookup("go")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name() != "go" {
		t.Fatalf("name = %q", g.Name())
	}
	if _, err := generator.Lookup("cobol"); err == nil {
		t.Fatal("unknown generator lookup must fail")
	}
}

func TestGoGeneratorEmit(t *testing.T) {
	s := compileSchema(t, `
/* What a musician plays. */
enum Instrument { Sax = 0; Trumpet = 1; }

struct Musician {
    string name;
    Instrument plays;
}

message Song {
    1 -> string title;
    2 -> uint16 year;
}

union Media { 1 -> struct Tape { byte speed; }; 2 -> message Disc { 1 -> byte rpm; }; }

const int32 max_tracks = 99;
`)

	g, err := generator.Lookup("go")
	if err != nil {
		t.Fatal(err)
	}
	out, err := g.Emit(s)
	if err != nil {
		t.Fatal(err)
	}

	wants := []string{
		"package bebop",
		"// What a musician plays.",
		"type Instrument uint32",
		"InstrumentSax Instrument = 0",
		"type Musician struct {",
		"Name string",
		"Plays Instrument",
		"func (v *Musician) EncodeBebop(w *Writer)",
		"func (v *Musician) DecodeBebop(r *Reader) error",
		"type Song struct {",
		"Title *string",
		"w.WriteUint8(0)", // end-of-message sentinel
		"type Media struct {",
		"Tape *Tape",
		"Disc *Disc",
		"const MaxTracks int32 = 99",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("generated output missing %q", want)
		}
	}
}

func TestGoGeneratorByteArraySpecialization(t *testing.T) {
	s := compileSchema(t, `struct Blob { byte[] data; int32[] nums; }`)
	g, _ := generator.Lookup("go")
	out, err := g.Emit(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "w.WriteByteArray(v.Data)") {
		t.Error("byte arrays must use the specialized path")
	}
	if !strings.Contains(out, "w.WriteUint32(uint32(len(v.Nums)))") {
		t.Error("other arrays use the element loop")
	}
}

func TestWriteAuxiliaryFiles(t *testing.T) {
	dir := t.TempDir()
	g, _ := generator.Lookup("go")
	if err := g.WriteAuxiliaryFiles(dir); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(filepath.Join(dir, "runtime.go"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	for _, want := range []string{"package bebop", "type Writer struct", "func (r *Reader) ReadFrame()"} {
		if !strings.Contains(text, want) {
			t.Errorf("runtime missing %q", want)
		}
	}
}
