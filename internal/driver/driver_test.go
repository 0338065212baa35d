package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bebopc/internal/driver"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileSources(t *testing.T) {
	res := driver.CompileSources(map[string]string{
		"music.bop": `
enum Instrument { Sax = 0; }
struct Musician { string name; Instrument plays; }
`,
	}, driver.Options{Namespace: "music"})

	if !res.OK {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	if res.Schema.Namespace != "music" {
		t.Fatalf("namespace = %q", res.Schema.Namespace)
	}
	if _, ok := res.Schema.Lookup("Musician"); !ok {
		t.Fatal("Musician missing from schema")
	}
}

func TestCompileSourcesReportsErrors(t *testing.T) {
	res := driver.CompileSources(map[string]string{
		"bad.bop": `struct A { Missing m; }`,
	}, driver.Options{})

	if res.OK {
		t.Fatal("compile must fail")
	}
	if !res.Bag.HasErrors() {
		t.Fatal("no diagnostics collected")
	}
}

func TestCompileFilesWithImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.bop", `enum Kind { A = 0; B = 1; }`)
	main := writeFile(t, dir, "main.bop", `
import "common.bop";
struct Item { Kind kind; }
`)

	res, err := driver.CompileFiles([]string{main}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	if _, ok := res.Schema.Lookup("Kind"); !ok {
		t.Fatal("imported definition missing")
	}
}

func TestCompileFilesImportCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.bop", `import "b.bop";`+"\n"+`struct A { B b; }`)
	aPath := filepath.Join(dir, "a.bop")
	writeFile(t, dir, "b.bop", `import "a.bop";`+"\n"+`struct B { byte x; }`)

	res, err := driver.CompileFiles([]string{aPath}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK {
		t.Fatalf("cyclic imports must still compile: %v", res.Bag.Items())
	}
}

func TestCompileFilesMissingImport(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.bop", `import "gone.bop";`+"\n"+`struct A {}`)

	res, err := driver.CompileFiles([]string{main}, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.OK {
		t.Fatal("missing import must fail the compile")
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.bop", `struct A {}`)
	writeFile(t, dir, "b.bop", `enum E { X = 0; }`)

	fs, results, err := driver.TokenizeDir(context.Background(), dir, 50, 2)
	if err != nil {
		t.Fatal(err)
	}
	if fs.Len() != 2 || len(results) != 2 {
		t.Fatalf("files = %d, results = %d", fs.Len(), len(results))
	}
	if len(results[0].Tokens) == 0 || len(results[1].Tokens) == 0 {
		t.Fatal("tokens missing")
	}
	// path order is deterministic
	if filepath.Base(results[0].Path) != "a.bop" {
		t.Fatalf("order broken: %s first", results[0].Path)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cache, err := driver.OpenDiskCache("bebopc-test")
	if err != nil {
		t.Fatal(err)
	}

	res := driver.CompileSources(map[string]string{
		"s.bop": `[opcode(5)] struct S { int32 x; }`,
	}, driver.Options{})
	if !res.OK {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}

	key := driver.HashInputs(res.FileSet, res.FileSet.Len())
	payload := driver.Summarize(res.Schema, []string{"s.bop"})
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}

	var got driver.CachePayload
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if len(got.Defs) != 1 || got.Defs[0].Name != "S" || !got.Defs[0].HasOp || got.Defs[0].Opcode != 5 {
		t.Fatalf("payload = %+v", got)
	}

	var miss driver.CachePayload
	hit, err = cache.Get(driver.Digest{1}, &miss)
	if err != nil || hit {
		t.Fatalf("expected miss, hit=%v err=%v", hit, err)
	}
}
