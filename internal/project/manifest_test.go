package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"bebopc/internal/project"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	content := `
namespace = "music"
schemas = ["schemas/music.bop", "/abs/other.bop"]

[generator]
name = "go"
out_dir = "gen"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Namespace != "music" || m.Generator.Name != "go" {
		t.Fatalf("manifest = %+v", m)
	}

	paths := m.SchemaPaths()
	if paths[0] != filepath.Join(dir, "schemas", "music.bop") {
		t.Fatalf("relative path = %q", paths[0])
	}
	if paths[1] != "/abs/other.bop" {
		t.Fatalf("absolute path = %q", paths[1])
	}
	if m.OutDir() != filepath.Join(dir, "gen") {
		t.Fatalf("out dir = %q", m.OutDir())
	}
}

func TestLoadManifestRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(`namespace = "x"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := project.Load(path); err == nil {
		t.Fatal("manifest without schemas must fail")
	}
}

func TestFindWalksUp(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := project.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if found != path {
		t.Fatalf("found %q, want %q", found, path)
	}
}
