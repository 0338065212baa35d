package sema

import (
	"bebopc/internal/diag"
	"bebopc/internal/schema"
)

// checkRecursion rejects structs that must store themselves inline.
// Edge A -> B exists when struct A has a field whose type reaches struct
// B without passing through an array, map, option, message, or union;
// those all break the inline-storage requirement. Any cycle in that
// graph would need infinite storage.
func (a *analyzer) checkRecursion() {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[schema.DefID]int)

	var visit func(id schema.DefID) bool // reports whether id is on a cycle
	visit = func(id schema.DefID) bool {
		switch state[id] {
		case visiting:
			return true
		case done:
			return false
		}
		state[id] = visiting
		defer func() { state[id] = done }()

		def := a.out.Def(id)
		if def == nil || def.Kind != schema.KindStruct || def.Struct == nil {
			return false
		}
		for _, f := range def.Struct.Fields {
			if target, ok := inlineTarget(f.Type); ok {
				if visit(target) && state[target] == visiting {
					a.errorAt(diag.SemaInfiniteStruct, f.Span,
						"struct '"+def.Name+"' stores itself inline through this field; break the cycle with an array, map, optional, message, or union").Emit()
				}
			}
		}
		return false
	}

	for _, id := range a.out.Order {
		visit(id)
	}
}

// inlineTarget returns the definition a type embeds inline, if any.
// Only direct struct references require inline storage: enums are
// scalars, and messages/unions are length-prefixed indirections.
func inlineTarget(t *schema.TypeRef) (schema.DefID, bool) {
	if t != nil && t.Kind == schema.TypeDef {
		return t.Def, true
	}
	return schema.NoDefID, false
}
