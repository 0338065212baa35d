package schema

// Derived wire-size data. The analyzer calls these once and caches the
// results in Header.MinSize; generators may also call them directly.

// MinimalEncodedSize is the smallest number of bytes any legal value of
// the definition can occupy on the wire.
func (s *Schema) MinimalEncodedSize(id DefID) uint32 {
	return s.minSize(id, make(map[DefID]bool))
}

func (s *Schema) minSize(id DefID, visiting map[DefID]bool) uint32 {
	def := s.Def(id)
	if def == nil || visiting[id] {
		// cycles are rejected by the recursion check; treat defensively
		// visited nodes as adding nothing rather than looping
		return 0
	}
	visiting[id] = true
	defer delete(visiting, id)

	switch def.Kind {
	case KindEnum:
		return def.Enum.Base.EncodedSize()
	case KindStruct:
		var sum uint32
		for _, f := range def.Struct.Fields {
			sum += s.minTypeSize(f.Type, visiting)
		}
		return sum
	case KindMessage:
		// 4-byte length header plus the end-of-message sentinel
		return 5
	case KindUnion:
		// 4-byte length, 1-byte discriminator, smallest branch body
		best := uint32(0)
		for i, br := range def.Union.Branches {
			sz := s.minSize(br.Def, visiting)
			if i == 0 || sz < best {
				best = sz
			}
		}
		return 4 + 1 + best
	case KindConst:
		return 0
	}
	return 0
}

func (s *Schema) minTypeSize(t *TypeRef, visiting map[DefID]bool) uint32 {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case TypeScalar:
		if t.Scalar == String {
			return 4 // length prefix only; contents may be empty
		}
		return t.Scalar.EncodedSize()
	case TypeArray, TypeMap:
		return 4 // element/entry count only
	case TypeOption:
		return 1 // absent tag
	case TypeDef:
		return s.minSize(t.Def, visiting)
	}
	return 0
}

// IsFixedSize reports whether every value of the type encodes to the same
// number of bytes: scalars except string, fixed-size enums, and structs
// whose fields are all fixed-size.
func (s *Schema) IsFixedSize(t *TypeRef) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeScalar:
		return t.Scalar != String
	case TypeDef:
		return s.IsFixedSizeDef(t.Def)
	default:
		return false
	}
}

// IsFixedSizeDef is IsFixedSize for a definition reference.
func (s *Schema) IsFixedSizeDef(id DefID) bool {
	def := s.Def(id)
	if def == nil {
		return false
	}
	switch def.Kind {
	case KindEnum:
		return true
	case KindStruct:
		for _, f := range def.Struct.Fields {
			if !s.IsFixedSize(f.Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
