package sema

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/source"
)

// scope is one level of the name environment: the top level, or the
// inside of a union whose branch definitions are visible to each other.
// Lookup starts at the innermost scope and walks outward.
type scope struct {
	parent *scope
	names  map[source.StringID]ast.DefID
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[source.StringID]ast.DefID)}
}

func (s *scope) lookup(name source.StringID) (ast.DefID, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if id, ok := cur.names[name]; ok {
			return id, true
		}
	}
	return ast.NoDefID, false
}

// declare binds name in this scope, reporting a duplicate with both
// occurrences cited.
func (a *analyzer) declare(s *scope, name source.StringID, id ast.DefID) {
	if prev, ok := s.names[name]; ok {
		prevDef := a.builder.Def(prev)
		def := a.builder.Def(id)
		a.errorAt(diag.SemaDuplicateDefinition, def.NameSpan,
			"duplicate definition of '"+a.name(name)+"'").
			WithNote(prevDef.NameSpan, "first defined here").
			Emit()
		return
	}
	s.names[name] = id
}

// buildScopes constructs the top-level scope and one child scope per
// union, registering every definition name.
func (a *analyzer) buildScopes() {
	a.topScope = newScope(nil)

	a.topLevelDefs(func(id ast.DefID, def *ast.Def) {
		a.declare(a.topScope, def.Name, id)
		a.scopeOf[id] = a.topScope
		if def.Kind == ast.DefUnion {
			a.buildUnionScope(id, def, a.topScope)
		}
	})
}

func (a *analyzer) buildUnionScope(unionID ast.DefID, def *ast.Def, parent *scope) {
	inner := newScope(parent)
	a.scopeOf[unionID] = parent
	for _, br := range def.Branches {
		child := a.builder.Def(br.Def)
		if child == nil {
			continue
		}
		a.declare(inner, child.Name, br.Def)
		a.scopeOf[br.Def] = inner
		if child.Kind == ast.DefUnion {
			a.buildUnionScope(br.Def, child, inner)
		}
	}
}
