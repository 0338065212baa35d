package sema

import (
	"strconv"

	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/source"
)

// checkStructures enforces the structural rules:
//   - field names unique within a definition
//   - message indices integers in [1,255], unique, strictly increasing;
//     index 0 is the end-of-message sentinel and is reserved
//   - union discriminators in [1,255], unique, strictly increasing;
//     every branch a struct or message; at least one branch
func (a *analyzer) checkStructures() {
	a.eachDef(func(id ast.DefID, def *ast.Def) {
		switch def.Kind {
		case ast.DefStruct, ast.DefMessage:
			a.checkFieldNames(def)
			if def.Kind == ast.DefMessage {
				a.checkMessageIndices(id, def)
			}
		case ast.DefUnion:
			a.checkUnionBranches(id, def)
		case ast.DefEnum:
			a.checkMemberNames(def)
		}
	})
}

func (a *analyzer) checkFieldNames(def *ast.Def) {
	seen := make(map[source.StringID]source.Span)
	for i := range def.Fields {
		f := &def.Fields[i]
		if prev, dup := seen[f.Name]; dup {
			a.errorAt(diag.SemaDuplicateField, f.NameSpan,
				"duplicate field '"+a.name(f.Name)+"' in '"+a.name(def.Name)+"'").
				WithNote(prev, "first declared here").
				Emit()
			continue
		}
		seen[f.Name] = f.NameSpan
	}
}

func (a *analyzer) checkMemberNames(def *ast.Def) {
	seen := make(map[source.StringID]source.Span)
	for i := range def.EnumMembers {
		m := &def.EnumMembers[i]
		if prev, dup := seen[m.Name]; dup {
			a.errorAt(diag.SemaDuplicateField, m.NameSpan,
				"duplicate member '"+a.name(m.Name)+"' in '"+a.name(def.Name)+"'").
				WithNote(prev, "first declared here").
				Emit()
			continue
		}
		seen[m.Name] = m.NameSpan
	}
}

func (a *analyzer) checkMessageIndices(id ast.DefID, def *ast.Def) {
	ir := a.out.Def(a.defMap[id])
	prev := uint64(0)
	seen := make(map[uint64]source.Span)

	for i := range def.Fields {
		f := &def.Fields[i]
		neg, mag, ok := parseIntegerLiteral(f.Index)
		if !ok || neg {
			a.errorAt(diag.SemaFieldIndexOutOfRange, f.IndexSpan, "field index must be a positive integer").Emit()
			continue
		}
		switch {
		case mag == 0:
			a.errorAt(diag.SemaReservedFieldIndexZero, f.IndexSpan,
				"field index 0 is reserved for the end-of-message sentinel").Emit()
			continue
		case mag > 255:
			a.errorAt(diag.SemaFieldIndexOutOfRange, f.IndexSpan,
				"field index "+strconv.FormatUint(mag, 10)+" exceeds the maximum of 255").Emit()
			continue
		}
		if prevSpan, dup := seen[mag]; dup {
			a.errorAt(diag.SemaDuplicateFieldIndex, f.IndexSpan,
				"duplicate field index "+strconv.FormatUint(mag, 10)).
				WithNote(prevSpan, "first used here").
				Emit()
			continue
		}
		seen[mag] = f.IndexSpan
		if mag <= prev {
			a.errorAt(diag.SemaFieldIndexNotIncreasing, f.IndexSpan,
				"field indices must increase in source order").Emit()
			continue
		}
		prev = mag

		// gaps are fine: they mean reserved indices
		if i < len(ir.Message.Fields) {
			ir.Message.Fields[i].Index = uint8(mag)
		}
	}
}

func (a *analyzer) checkUnionBranches(id ast.DefID, def *ast.Def) {
	ir := a.out.Def(a.defMap[id])

	if len(def.Branches) == 0 {
		a.errorAt(diag.SemaEmptyUnion, def.Span,
			"union '"+a.name(def.Name)+"' has no branches; no value of it can exist").Emit()
		return
	}

	prev := uint64(0)
	seen := make(map[uint64]source.Span)
	for i, br := range def.Branches {
		child := a.builder.Def(br.Def)
		if child == nil {
			continue
		}
		if child.Kind != ast.DefStruct && child.Kind != ast.DefMessage {
			a.errorAt(diag.SemaInvalidUnionBranch, br.Span,
				"union branch must be a struct or message, got "+child.Kind.String()).Emit()
			continue
		}

		neg, mag, ok := parseIntegerLiteral(br.Discriminator)
		if !ok || neg || mag == 0 || mag > 255 {
			a.errorAt(diag.SemaInvalidUnionBranch, br.DiscSpan,
				"discriminator must be an integer in 1..255").Emit()
			continue
		}
		if prevSpan, dup := seen[mag]; dup {
			a.errorAt(diag.SemaInvalidUnionBranch, br.DiscSpan,
				"duplicate discriminator "+strconv.FormatUint(mag, 10)).
				WithNote(prevSpan, "first used here").
				Emit()
			continue
		}
		seen[mag] = br.DiscSpan
		if mag <= prev {
			a.errorAt(diag.SemaInvalidUnionBranch, br.DiscSpan,
				"discriminators must increase in source order").Emit()
			continue
		}
		prev = mag

		if i < len(ir.Union.Branches) {
			ir.Union.Branches[i].Discriminator = uint8(mag)
		}
	}
}
