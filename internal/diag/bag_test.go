package diag_test

import (
	"testing"

	"bebopc/internal/diag"
	"bebopc/internal/source"
)

func TestBagSortIsStable(t *testing.T) {
	mk := func(file source.FileID, start uint32, code diag.Code, sev diag.Severity) diag.Diagnostic {
		return diag.New(sev, code, source.Span{File: file, Start: start, End: start + 1}, "x")
	}

	bag := diag.NewBag(16)
	bag.Add(mk(1, 5, diag.SemaUnknownType, diag.SevError))
	bag.Add(mk(0, 9, diag.SynUnexpectedToken, diag.SevError))
	bag.Add(mk(0, 2, diag.LexUnrecognizedChar, diag.SevError))
	bag.Add(mk(0, 2, diag.LexBadNumber, diag.SevWarning))
	bag.Sort()

	items := bag.Items()
	if items[0].Code != diag.LexUnrecognizedChar {
		t.Fatalf("first after sort: %v", items[0].Code)
	}
	if items[1].Code != diag.LexBadNumber {
		t.Fatalf("error must sort before warning at same span, got %v", items[1].Code)
	}
	if items[3].Primary.File != 1 {
		t.Fatalf("file order broken: %v", items[3].Primary)
	}
}

func TestBagCapAndMerge(t *testing.T) {
	bag := diag.NewBag(1)
	d := diag.NewError(diag.LexBadNumber, source.Span{}, "a")
	if !bag.Add(d) {
		t.Fatal("first add refused")
	}
	if bag.Add(d) {
		t.Fatal("cap not enforced")
	}

	other := diag.NewBag(4)
	other.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{}, "b"))
	bag.Merge(other)
	if bag.Len() != 2 {
		t.Fatalf("merge lost items: %d", bag.Len())
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(8)
	d := diag.NewError(diag.SemaDuplicateOpcode, source.Span{Start: 3, End: 7}, "dup")
	bag.Add(d)
	bag.Add(d)
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("dedup kept %d items", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[diag.Code]string{
		diag.LexUnrecognizedChar:  "LEX1001",
		diag.SynUnexpectedToken:   "SYN2001",
		diag.SemaInfiniteStruct:   "SEM3009",
		diag.IOLoadFileError:      "IO4001",
		diag.ProjInvalidManifest:  "PRJ5001",
		diag.GenUnknownGenerator:  "GEN6001",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
