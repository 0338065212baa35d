package ast

import (
	"bebopc/internal/schema"
	"bebopc/internal/source"
)

// DefKind discriminates top-level (and union-nested) definitions.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefEnum
	DefStruct
	DefMessage
	DefUnion
	DefConst
)

func (k DefKind) String() string {
	switch k {
	case DefEnum:
		return "enum"
	case DefStruct:
		return "struct"
	case DefMessage:
		return "message"
	case DefUnion:
		return "union"
	case DefConst:
		return "const"
	}
	return "invalid"
}

// EnumMember is one `Name = value;` entry of an enum body.
type EnumMember struct {
	Name     source.StringID
	NameSpan source.Span
	Value    Literal
	Attrs    []Attr
	Doc      string
	Span     source.Span
}

// Field is a struct field or, with Index set, a message field.
type Field struct {
	Name      source.StringID
	NameSpan  source.Span
	Type      TypeID
	Index     Literal // message fields only; Kind == LitInvalid for structs
	HasIndex  bool
	IndexSpan source.Span
	Attrs     []Attr
	Doc       string
	Span      source.Span
}

// UnionBranch is `discriminator -> definition;` where the definition is a
// struct or message nested inside the union body.
type UnionBranch struct {
	Discriminator Literal
	DiscSpan      source.Span
	Def           DefID
	Span          source.Span
}

// Def is the unresolved definition node. Exactly the payload matching
// Kind is populated.
type Def struct {
	Kind     DefKind
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Doc      string
	Attrs    []Attr
	// Parent is the enclosing union for definitions declared in a branch.
	Parent DefID

	// DefEnum
	EnumBase     schema.BaseType // base type after ':'; InvalidBase means default
	EnumBaseSpan source.Span
	EnumMembers  []EnumMember

	// DefStruct / DefMessage
	Fields     []Field
	IsReadonly bool

	// DefUnion
	Branches []UnionBranch

	// DefConst
	ConstType     schema.BaseType
	ConstTypeSpan source.Span
	ConstValue    Literal
}
