package token_test

import (
	"testing"

	"bebopc/internal/token"
)

func TestKeywordLookup(t *testing.T) {
	cases := []struct {
		ident string
		kind  token.Kind
		ok    bool
	}{
		{"enum", token.KwEnum, true},
		{"struct", token.KwStruct, true},
		{"message", token.KwMessage, true},
		{"union", token.KwUnion, true},
		{"const", token.KwConst, true},
		{"readonly", token.KwReadonly, true},
		{"mut", token.KwMut, true},
		{"import", token.KwImport, true},
		{"true", token.KwTrue, true},
		{"inf", token.KwInf, true},
		{"nan", token.KwNan, true},
		{"Enum", 0, false},
		{"map", 0, false},
		{"int32", 0, false},
	}

	for _, tc := range cases {
		kind, ok := token.LookupKeyword(tc.ident)
		if ok != tc.ok {
			t.Errorf("LookupKeyword(%q) ok = %v, want %v", tc.ident, ok, tc.ok)
			continue
		}
		if ok && kind != tc.kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tc.ident, kind, tc.kind)
		}
	}
}

func TestIsDefinitionStart(t *testing.T) {
	starts := []token.Kind{token.KwEnum, token.KwStruct, token.KwMessage, token.KwUnion, token.KwConst, token.KwReadonly, token.KwImport, token.LBracket}
	for _, k := range starts {
		if !(token.Token{Kind: k}).IsDefinitionStart() {
			t.Errorf("%v should start a definition", k)
		}
	}
	if (token.Token{Kind: token.Ident}).IsDefinitionStart() {
		t.Error("identifier must not start a definition")
	}
}
