package sema

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/schema"
)

// applyDefAttrs interprets the recognized attributes on a definition:
// [opcode(...)], [deprecated("...")], [flags]. Anything else draws a
// warning and is otherwise ignored.
func (a *analyzer) applyDefAttrs(astDef *ast.Def, header *schema.Header, kind schema.DefKind, isFlags *bool) {
	for i := range astDef.Attrs {
		attr := &astDef.Attrs[i]
		switch a.name(attr.Name) {
		case "opcode":
			a.applyOpcode(attr, header, kind)
		case "deprecated":
			header.Deprecated, header.DeprecatedSet = a.deprecationReason(attr)
		case "flags":
			if kind != schema.KindEnum {
				a.errorAt(diag.SemaInvalidAttribute, attr.Span, "[flags] is only valid on enums").Emit()
				continue
			}
			if attr.Value != nil {
				a.errorAt(diag.SemaInvalidAttribute, attr.Span, "[flags] takes no argument").Emit()
			}
			if isFlags != nil {
				*isFlags = true
			}
		default:
			a.warnAt(diag.SemaInvalidAttribute, attr.Span,
				"unrecognized attribute '"+a.name(attr.Name)+"'").Emit()
		}
	}
}

// applyOpcode validates [opcode(u32)] / [opcode("FOUR")]. A four-byte
// ASCII string packs little-endian, first character in the low byte.
func (a *analyzer) applyOpcode(attr *ast.Attr, header *schema.Header, kind schema.DefKind) {
	switch kind {
	case schema.KindStruct, schema.KindMessage, schema.KindUnion:
	default:
		a.errorAt(diag.SemaInvalidOpcode, attr.Span, "[opcode] is only valid on structs, messages, and unions").Emit()
		return
	}
	if attr.Value == nil {
		a.errorAt(diag.SemaInvalidOpcode, attr.Span, "[opcode] requires an argument").Emit()
		return
	}

	switch attr.Value.Kind {
	case ast.LitInteger:
		neg, mag, ok := parseIntegerLiteral(*attr.Value)
		if !ok || neg || mag > 0xFFFFFFFF {
			a.errorAt(diag.SemaInvalidOpcode, attr.Value.Span, "opcode must fit an unsigned 32-bit integer").Emit()
			return
		}
		header.Opcode = uint32(mag)
		header.OpcodeSet = true

	case ast.LitString:
		text := attr.Value.Text
		if len(text) != 4 || !isASCII(text) {
			a.errorAt(diag.SemaInvalidOpcode, attr.Value.Span, "opcode string must be exactly 4 ASCII characters").Emit()
			return
		}
		header.Opcode = uint32(text[0]) | uint32(text[1])<<8 | uint32(text[2])<<16 | uint32(text[3])<<24
		header.OpcodeSet = true

	default:
		a.errorAt(diag.SemaInvalidOpcode, attr.Value.Span, "opcode must be an integer or a 4-character string").Emit()
	}
}

// deprecationReason extracts the reason string of [deprecated("...")].
func (a *analyzer) deprecationReason(attr *ast.Attr) (string, bool) {
	if attr.Value == nil {
		return "", true
	}
	if attr.Value.Kind != ast.LitString {
		a.errorAt(diag.SemaInvalidAttribute, attr.Value.Span, "[deprecated] takes a string reason").Emit()
		return "", true
	}
	return attr.Value.Text, true
}

// fieldDeprecation pulls [deprecated] off a field's attributes; other
// attributes are not valid on fields.
func (a *analyzer) fieldDeprecation(attrs []ast.Attr) string {
	reason := ""
	for i := range attrs {
		attr := &attrs[i]
		if a.name(attr.Name) == "deprecated" {
			reason, _ = a.deprecationReason(attr)
			continue
		}
		a.warnAt(diag.SemaInvalidAttribute, attr.Span,
			"unrecognized attribute '"+a.name(attr.Name)+"' on field").Emit()
	}
	return reason
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// checkOpcodes enforces global opcode uniqueness across the whole schema,
// imported files included.
func (a *analyzer) checkOpcodes() {
	seen := make(map[uint32]schema.DefID)
	for _, id := range a.out.Order {
		def := a.out.Def(id)
		if def == nil || !def.OpcodeSet {
			continue
		}
		if prev, ok := seen[def.Opcode]; ok {
			prevDef := a.out.Def(prev)
			a.errorAt(diag.SemaDuplicateOpcode, def.Span,
				"opcode of '"+def.Name+"' is already used by '"+prevDef.Name+"'").
				WithNote(prevDef.Span, "first used here").
				Emit()
			continue
		}
		seen[def.Opcode] = id
	}
}
