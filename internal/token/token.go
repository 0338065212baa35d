package token

import (
	"bebopc/internal/source"
)

// Token is a single schema token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwInf, KwNan:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a schema keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwEnum, KwStruct, KwMessage, KwUnion, KwConst, KwReadonly, KwMut,
		KwImport, KwTrue, KwFalse, KwInf, KwNan:
		return true
	default:
		return false
	}
}

// IsDefinitionStart reports whether the token can begin a top-level definition.
func (t Token) IsDefinitionStart() bool {
	switch t.Kind {
	case KwEnum, KwStruct, KwMessage, KwUnion, KwConst, KwReadonly, KwImport, LBracket:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
