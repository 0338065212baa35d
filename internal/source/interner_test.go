package source_test

import (
	"testing"

	"bebopc/internal/source"
)

func TestInternerDedup(t *testing.T) {
	in := source.NewInterner()

	a := in.Intern("Song")
	b := in.Intern("Album")
	c := in.Intern("Song")

	if a == source.NoStringID || b == source.NoStringID {
		t.Fatal("valid strings must not intern to NoStringID")
	}
	if a != c {
		t.Fatalf("same string interned twice: %d vs %d", a, c)
	}
	if a == b {
		t.Fatalf("distinct strings collided: %d", a)
	}

	if s, ok := in.Lookup(a); !ok || s != "Song" {
		t.Fatalf("Lookup(%d) = %q, %v", a, s, ok)
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := source.NewInterner()
	if id := in.Intern(""); id != source.NoStringID {
		t.Fatalf("empty string interned to %d", id)
	}
	if _, ok := in.Lookup(source.StringID(99)); ok {
		t.Fatal("lookup of unknown ID succeeded")
	}
}
