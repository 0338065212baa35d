package schema

import (
	"bebopc/internal/source"
)

// TypeKind discriminates resolved type references.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	// TypeScalar is a built-in base type.
	TypeScalar
	// TypeDef references a user definition (enum, struct, message, union).
	TypeDef
	// TypeArray is T[].
	TypeArray
	// TypeMap is map[K, V].
	TypeMap
	// TypeOption is T?.
	TypeOption
)

// TypeRef is a fully resolved type reference in the IR. Named references
// have been rewritten into DefIDs by the analyzer; an unresolved name never
// survives into a Schema that is surfaced as success.
type TypeRef struct {
	Kind   TypeKind
	Scalar BaseType // TypeScalar
	Def    DefID    // TypeDef
	Elem   *TypeRef // TypeArray, TypeOption
	Key    *TypeRef // TypeMap
	Value  *TypeRef // TypeMap
	Span   source.Span
}

// ScalarRef is a convenience constructor for built-in types.
func ScalarRef(b BaseType) *TypeRef {
	return &TypeRef{Kind: TypeScalar, Scalar: b}
}

func (t *TypeRef) String() string {
	return t.describe(nil)
}

// Describe renders the type using definition names from s, e.g.
// "map[string, Song?[]]".
func (t *TypeRef) Describe(s *Schema) string {
	return t.describe(s)
}

func (t *TypeRef) describe(s *Schema) string {
	switch t.Kind {
	case TypeScalar:
		return t.Scalar.String()
	case TypeDef:
		if s != nil {
			if def := s.Def(t.Def); def != nil {
				return def.Name
			}
		}
		return "<def>"
	case TypeArray:
		return t.Elem.describe(s) + "[]"
	case TypeMap:
		return "map[" + t.Key.describe(s) + ", " + t.Value.describe(s) + "]"
	case TypeOption:
		return t.Elem.describe(s) + "?"
	}
	return "<invalid>"
}
