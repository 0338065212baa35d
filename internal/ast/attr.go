package ast

import "bebopc/internal/source"

// Attr is a bracketed attribute like [opcode(0x12345678)] or [flags].
// Value is nil when the attribute has no argument.
type Attr struct {
	Name  source.StringID
	Value *Literal
	Span  source.Span
}
