package sema_test

import (
	"testing"

	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/lexer"
	"bebopc/internal/parser"
	"bebopc/internal/schema"
	"bebopc/internal/sema"
	"bebopc/internal/source"
)

// analyzeString runs the whole front end over one in-memory schema file.
func analyzeString(t *testing.T, input string) (*schema.Schema, bool, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.bop", []byte(input))

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})

	s, ok := sema.Analyze(builder, []ast.FileID{res.File}, sema.Options{Reporter: reporter})
	return s, ok, bag
}

func mustAnalyze(t *testing.T, input string) *schema.Schema {
	t.Helper()
	s, ok, bag := analyzeString(t, input)
	if !ok || bag.HasErrors() {
		t.Fatalf("analysis failed: %v", bag.Items())
	}
	return s
}

func expectCode(t *testing.T, input string, code diag.Code) {
	t.Helper()
	_, ok, bag := analyzeString(t, input)
	if ok {
		t.Fatalf("analysis unexpectedly succeeded for %q", input)
	}
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected %s in diagnostics, got %v", code.ID(), bag.Items())
}

func TestResolveAndSizes(t *testing.T) {
	s := mustAnalyze(t, `
enum Instrument { Sax = 0; Trumpet = 1; }
struct Musician { string name; Instrument plays; }
message Song {
    1 -> string title;
    2 -> uint16 year;
}
union Media { 1 -> struct A { byte x; }; 2 -> message B { 1 -> byte y; }; }
`)

	musician, ok := s.Lookup("Musician")
	if !ok {
		t.Fatal("Musician missing")
	}
	plays := musician.Struct.Fields[1].Type
	if plays.Kind != schema.TypeDef {
		t.Fatalf("Instrument reference unresolved: %v", plays.Kind)
	}
	if s.Def(plays.Def).Name != "Instrument" {
		t.Fatalf("resolved to %q", s.Def(plays.Def).Name)
	}

	if musician.MinSize != 8 {
		t.Errorf("Musician min size = %d, want 8", musician.MinSize)
	}
	song, _ := s.Lookup("Song")
	if song.MinSize != 5 {
		t.Errorf("Song min size = %d, want 5", song.MinSize)
	}
	media, _ := s.Lookup("Media")
	if media.MinSize != 6 { // 4 + 1 + min(struct A = 1, message B = 5)
		t.Errorf("Media min size = %d, want 6", media.MinSize)
	}
	if song.Message.Fields[1].Index != 2 {
		t.Errorf("Song field 'year' index = %d", song.Message.Fields[1].Index)
	}
}

func TestOrderIsSourceOrder(t *testing.T) {
	s := mustAnalyze(t, `
struct B {}
struct A {}
struct C {}
`)
	var names []string
	for _, id := range s.Roots {
		names = append(names, s.Def(id).Name)
	}
	want := []string{"B", "A", "C"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("roots order = %v, want %v", names, want)
		}
	}
}

func TestDuplicateDefinition(t *testing.T) {
	expectCode(t, `struct A {} enum A { X = 0; }`, diag.SemaDuplicateDefinition)
}

func TestUnknownType(t *testing.T) {
	expectCode(t, `struct A { Missing m; }`, diag.SemaUnknownType)
}

func TestUnionScopeShadowing(t *testing.T) {
	// a branch def may reference a sibling branch by name, resolving in
	// the union scope before the top level
	s := mustAnalyze(t, `
struct Inner { byte a; }
union U {
    1 -> struct Inner { int32 b; };
    2 -> struct Other { Inner sibling; };
}
`)
	u, _ := s.Lookup("U")
	other := s.Def(u.Union.Branches[1].Def)
	ref := other.Struct.Fields[0].Type
	target := s.Def(ref.Def)
	if !target.Parent.IsValid() {
		t.Fatal("Inner resolved to the top-level definition, want the branch-local one")
	}
}

func TestMessageIndexRules(t *testing.T) {
	expectCode(t, `message M { 0 -> int32 a; }`, diag.SemaReservedFieldIndexZero)
	expectCode(t, `message M { 256 -> int32 a; }`, diag.SemaFieldIndexOutOfRange)
	expectCode(t, `message M { 1 -> int32 a; 1 -> int32 b; }`, diag.SemaDuplicateFieldIndex)
	expectCode(t, `message M { 2 -> int32 a; 1 -> int32 b; }`, diag.SemaFieldIndexNotIncreasing)

	// max index and gaps are fine
	mustAnalyze(t, `message M { 1 -> int32 a; 7 -> int32 b; 255 -> int32 c; }`)
}

func TestUnionRules(t *testing.T) {
	expectCode(t, `union U {}`, diag.SemaEmptyUnion)
	expectCode(t, `union U { 0 -> struct A {}; }`, diag.SemaInvalidUnionBranch)
	expectCode(t, `union U { 1 -> struct A {}; 1 -> struct B {}; }`, diag.SemaInvalidUnionBranch)
	expectCode(t, `union U { 2 -> struct A {}; 1 -> struct B {}; }`, diag.SemaInvalidUnionBranch)
}

func TestEnumRules(t *testing.T) {
	expectCode(t, `enum E { A = 1; B = 1; }`, diag.SemaDuplicateEnumValue)
	expectCode(t, `enum E : uint8 { A = 256; }`, diag.SemaEnumValueOutOfRange)
	expectCode(t, `enum E { A = -1; }`, diag.SemaEnumValueOutOfRange)
	expectCode(t, `enum E : string { A = 0; }`, diag.SemaInvalidEnumBase)

	// flags enums allow duplicate bit patterns
	s := mustAnalyze(t, `[flags] enum F : uint8 { None = 0; A = 1; Alias = 1; }`)
	f, _ := s.Lookup("F")
	if !f.Enum.IsFlags || len(f.Enum.Members) != 3 {
		t.Fatalf("flags enum mishandled: %+v", f.Enum)
	}

	// negative members of signed-base enums sign-extend
	s = mustAnalyze(t, `enum E : int16 { Neg = -2; }`)
	e, _ := s.Lookup("E")
	if e.Enum.Members[0].Value != 0xFFFFFFFFFFFFFFFE {
		t.Fatalf("sign-extension wrong: %x", e.Enum.Members[0].Value)
	}
}

func TestRecursionRules(t *testing.T) {
	expectCode(t, `struct A { A self; }`, diag.SemaInfiniteStruct)
	expectCode(t, `struct A { B b; } struct B { A a; }`, diag.SemaInfiniteStruct)

	// indirection through option, array, map, message, union is fine
	mustAnalyze(t, `struct A { A? next; }`)
	mustAnalyze(t, `struct A { A[] children; }`)
	mustAnalyze(t, `struct A { map[string, A] children; }`)
	mustAnalyze(t, `struct A { M m; } message M { 1 -> A a; }`)
}

func TestConstEval(t *testing.T) {
	s := mustAnalyze(t, `
const int32 answer = 42;
const uint64 big = 0xFFFFFFFFFFFFFFFF;
const int16 neg = -17;
const float64 e = 2.71828;
const float32 half = 0.5;
const float64 weird = -inf;
const bool yes = true;
const string name = "bebop";
const guid id = "81c6987b-48b7-495f-ad01-ec20cc5f5be1";
`)
	answer, _ := s.Lookup("answer")
	if answer.Const.Value.Int != 42 {
		t.Errorf("answer = %d", answer.Const.Value.Int)
	}
	big, _ := s.Lookup("big")
	if big.Const.Value.Uint != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("big = %x", big.Const.Value.Uint)
	}
	neg, _ := s.Lookup("neg")
	if neg.Const.Value.Int != -17 {
		t.Errorf("neg = %d", neg.Const.Value.Int)
	}
	id, _ := s.Lookup("id")
	if id.Const.Value.Guid[0] != 0x81 || id.Const.Value.Guid[15] != 0xe1 {
		t.Errorf("guid bytes = %x", id.Const.Value.Guid)
	}
}

func TestConstErrors(t *testing.T) {
	expectCode(t, `const uint32 neg = -5;`, diag.SemaConstOutOfRange)
	expectCode(t, `const byte big = 300;`, diag.SemaConstOutOfRange)
	expectCode(t, `const int32 s = "nope";`, diag.SemaConstTypeMismatch)
	expectCode(t, `const bool b = 1;`, diag.SemaConstTypeMismatch)
	expectCode(t, `const guid g = "not-a-guid";`, diag.SemaInvalidGuid)
	expectCode(t, `const date d = 5;`, diag.SemaConstTypeMismatch)
}

func TestOpcodes(t *testing.T) {
	s := mustAnalyze(t, `
[opcode(0x12345678)]
struct A { byte x; }
[opcode("YEET")]
message B { 1 -> byte y; }
`)
	a, _ := s.Lookup("A")
	if !a.OpcodeSet || a.Opcode != 0x12345678 {
		t.Fatalf("A opcode = %x set=%v", a.Opcode, a.OpcodeSet)
	}
	b, _ := s.Lookup("B")
	want := uint32('Y') | uint32('E')<<8 | uint32('E')<<16 | uint32('T')<<24
	if b.Opcode != want {
		t.Fatalf("B opcode = %x, want %x", b.Opcode, want)
	}

	expectCode(t, `
[opcode(7)] struct A { byte x; }
[opcode(7)] struct B { byte y; }
`, diag.SemaDuplicateOpcode)
	expectCode(t, `[opcode(1)] enum E { A = 0; }`, diag.SemaInvalidOpcode)
	expectCode(t, `[opcode("TOOLONG")] struct A {}`, diag.SemaInvalidOpcode)
}

func TestDeprecatedAttribute(t *testing.T) {
	s := mustAnalyze(t, `
message Song {
    1 -> string title;
    [deprecated("use title")]
    2 -> string name;
}
`)
	song, _ := s.Lookup("Song")
	if song.Message.Fields[1].Deprecated != "use title" {
		t.Fatalf("deprecation = %q", song.Message.Fields[1].Deprecated)
	}
}

func TestDuplicateFieldName(t *testing.T) {
	expectCode(t, `struct A { int32 x; int32 x; }`, diag.SemaDuplicateField)
}

func TestDuplicateOpcodeAcrossFiles(t *testing.T) {
	fs := source.NewFileSet()
	f1 := fs.AddVirtual("a.bop", []byte(`[opcode(9)] struct A { byte x; }`))
	f2 := fs.AddVirtual("b.bop", []byte(`[opcode(9)] struct B { byte y; }`))

	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})

	var files []ast.FileID
	for _, id := range []source.FileID{f1, f2} {
		lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
		res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
		files = append(files, res.File)
	}

	_, ok := sema.Analyze(builder, files, sema.Options{Reporter: reporter})
	if ok {
		t.Fatal("duplicate opcode across files must fail")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaDuplicateOpcode {
			found = true
		}
	}
	if !found {
		t.Fatalf("no SemaDuplicateOpcode in %v", bag.Items())
	}
}
