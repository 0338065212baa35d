package source_test

import (
	"testing"

	"bebopc/internal/source"
)

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 4, End: 10}
	b := source.Span{File: 0, Start: 8, End: 16}

	got := a.Cover(b)
	if got.Start != 4 || got.End != 16 {
		t.Fatalf("Cover = %v", got)
	}

	other := source.Span{File: 1, Start: 0, End: 2}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files changed span: %v", got)
	}
}

func TestSpanCaret(t *testing.T) {
	s := source.Span{File: 0, Start: 4, End: 10}
	c := s.Caret()
	if !c.Empty() || c.Start != 10 {
		t.Fatalf("Caret = %v", c)
	}
}
