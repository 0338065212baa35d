package ast

import (
	"bebopc/internal/schema"
	"bebopc/internal/source"
)

// TypeKind discriminates unresolved type expressions.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	// TypeScalar is a built-in base type name.
	TypeScalar
	// TypeNamed is a user-defined type name, resolved by the analyzer.
	TypeNamed
	// TypeArray is T[].
	TypeArray
	// TypeMap is map[K, V].
	TypeMap
	// TypeOption is T?.
	TypeOption
)

// Type is one node of an unresolved type expression.
type Type struct {
	Kind   TypeKind
	Span   source.Span
	Scalar schema.BaseType // TypeScalar
	Name   source.StringID // TypeNamed
	Elem   TypeID          // TypeArray, TypeOption
	Key    TypeID          // TypeMap
	Value  TypeID          // TypeMap
}
