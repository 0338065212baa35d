package schema

import (
	"bebopc/internal/source"
)

// DefID addresses a definition inside a Schema's arena. Zero is invalid.
// Parent links use DefIDs instead of pointers so the definition graph
// stays acyclic at the value level.
type DefID uint32

const NoDefID DefID = 0

func (id DefID) IsValid() bool { return id != NoDefID }

// DefKind discriminates the definition variants.
type DefKind uint8

const (
	KindInvalid DefKind = iota
	KindEnum
	KindStruct
	KindMessage
	KindUnion
	KindConst
)

func (k DefKind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindMessage:
		return "message"
	case KindUnion:
		return "union"
	case KindConst:
		return "const"
	}
	return "invalid"
}

// Header carries the fields shared by every definition variant.
type Header struct {
	Name   string
	Span   source.Span
	Doc    string
	Parent DefID // enclosing union for branch-local definitions

	// Deprecated holds the [deprecated("...")] reason; empty means not set.
	Deprecated    string
	DeprecatedSet bool

	OpcodeSet bool
	Opcode    uint32

	// Poisoned marks placeholder definitions created for unresolved names
	// so later passes can keep running. A schema containing poisoned
	// definitions is never surfaced as success.
	Poisoned bool

	// MinSize is the minimal encoded byte size, computed by the analyzer.
	MinSize uint32
}

// EnumMember is one named constant of an enum.
type EnumMember struct {
	Name string
	// Value is the member's two's-complement bit pattern, sign-extended
	// for negative members of signed-base enums.
	Value      uint64
	Doc        string
	Deprecated string
	Span       source.Span
}

// EnumDef is a closed set of named integer constants.
type EnumDef struct {
	Base    BaseType // backing scalar, UInt32 unless declared
	Members []EnumMember
	IsFlags bool
}

// StructField is one field of a struct.
type StructField struct {
	Name       string
	Type       *TypeRef
	Doc        string
	Deprecated string
	Span       source.Span
}

// StructDef is a fixed-layout record: fields concatenate on the wire in
// source order with no header, so structs are not extensible.
type StructDef struct {
	Fields     []StructField
	IsReadonly bool
}

// MessageField is one indexed, optional field of a message.
type MessageField struct {
	Name       string
	Type       *TypeRef
	Index      uint8 // 1..255, strictly increasing in source order
	Doc        string
	Deprecated string
	Span       source.Span
}

// MessageDef is an extensible record: each present field is tagged with
// its index on the wire and the whole body is length-prefixed.
type MessageDef struct {
	Fields []MessageField
}

// UnionBranch pairs a discriminator with its branch definition.
type UnionBranch struct {
	Discriminator uint8 // 1..255, strictly increasing
	Def           DefID // always a struct or message definition
	Span          source.Span
}

// UnionDef is a tagged choice between struct/message branches.
type UnionDef struct {
	Branches []UnionBranch
}

// ConstValue is the evaluated value of a const definition.
type ConstValue struct {
	Bool  bool
	Int   int64   // signed integer types
	Uint  uint64  // unsigned integer types
	Float float64 // float types, inf/-inf/nan included
	Str   string  // string consts
	Guid  [16]byte
	// Raw preserves the literal as written, for generators that want to
	// reproduce the source spelling.
	Raw string
}

// ConstDef is a named compile-time constant of a base type.
type ConstDef struct {
	Type  BaseType
	Value ConstValue
}

// Definition is the IR's tagged variant. Exactly one payload pointer is
// non-nil, matching Kind.
type Definition struct {
	Kind DefKind
	Header

	Enum    *EnumDef
	Struct  *StructDef
	Message *MessageDef
	Union   *UnionDef
	Const   *ConstDef
}

// Schema is the validated, immutable output of semantic analysis.
// Iteration order of Order and Roots follows source order; that order is
// part of the public contract so generated output is stable.
type Schema struct {
	// Namespace is an optional dotted identifier supplied by the host
	// (project manifest or CLI flag), not schema text.
	Namespace string

	defs []Definition

	// Order lists every definition, nested ones included, in source order.
	Order []DefID
	// Roots lists only top-level definitions in source order.
	Roots []DefID
	// ByName indexes top-level definitions.
	ByName map[string]DefID
}

// NewSchema creates an empty schema shell for the analyzer to populate.
func NewSchema(namespace string) *Schema {
	return &Schema{
		Namespace: namespace,
		defs:      make([]Definition, 0, 16),
		ByName:    make(map[string]DefID),
	}
}

// Add allocates a definition and returns its stable ID.
func (s *Schema) Add(def Definition) DefID {
	s.defs = append(s.defs, def)
	id := DefID(len(s.defs))
	s.Order = append(s.Order, id)
	return id
}

// Def returns the definition for id, or nil for the invalid ID.
func (s *Schema) Def(id DefID) *Definition {
	if id == NoDefID || int(id) > len(s.defs) {
		return nil
	}
	return &s.defs[id-1]
}

// Len reports how many definitions the schema holds.
func (s *Schema) Len() int {
	return len(s.defs)
}

// Lookup finds a top-level definition by name.
func (s *Schema) Lookup(name string) (*Definition, bool) {
	id, ok := s.ByName[name]
	if !ok {
		return nil, false
	}
	return s.Def(id), true
}

// HasPoisoned reports whether any definition is a placeholder for an
// unresolved name.
func (s *Schema) HasPoisoned() bool {
	for i := range s.defs {
		if s.defs[i].Poisoned {
			return true
		}
	}
	return false
}
