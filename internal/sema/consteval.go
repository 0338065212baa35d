package sema

import (
	"encoding/hex"
	"math"

	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/schema"
)

// evalConsts parses every const literal in its declared type, range-checks
// it, and records the canonical value in the IR.
func (a *analyzer) evalConsts() {
	a.eachDef(func(id ast.DefID, def *ast.Def) {
		if def.Kind != ast.DefConst {
			return
		}
		ir := a.out.Def(a.defMap[id])
		a.evalConst(def, ir)
	})
}

func (a *analyzer) evalConst(def *ast.Def, ir *schema.Definition) {
	base := ir.Const.Type
	lit := def.ConstValue
	value := &ir.Const.Value
	value.Raw = lit.Text

	mismatch := func(what string) {
		a.errorAt(diag.SemaConstTypeMismatch, lit.Span,
			"cannot assign "+what+" to const of type "+base.String()).Emit()
	}

	switch {
	case base == schema.Bool:
		if lit.Kind != ast.LitBool {
			mismatch(literalName(lit.Kind))
			return
		}
		value.Bool = lit.Bool

	case base.IsInteger():
		if lit.Kind != ast.LitInteger {
			mismatch(literalName(lit.Kind))
			return
		}
		neg, mag, ok := parseIntegerLiteral(lit)
		if !ok {
			a.errorAt(diag.SemaConstOutOfRange, lit.Span, "malformed integer literal").Emit()
			return
		}
		min, max := base.IntegerRange()
		if neg && mag > 0 {
			if !base.IsSigned() {
				a.errorAt(diag.SemaConstOutOfRange, lit.Span,
					"negative literal cannot be assigned to unsigned type "+base.String()).Emit()
				return
			}
			magLimit := uint64(-(min + 1)) + 1
			if mag > magLimit {
				a.errorAt(diag.SemaConstOutOfRange, lit.Span,
					"value does not fit in "+base.String()).Emit()
				return
			}
			value.Int = -int64(mag - 1) - 1
			return
		}
		if mag > max {
			a.errorAt(diag.SemaConstOutOfRange, lit.Span,
				"value does not fit in "+base.String()).Emit()
			return
		}
		if base.IsSigned() {
			value.Int = int64(mag)
		} else {
			value.Uint = mag
		}

	case base.IsFloat():
		var v float64
		switch lit.Kind {
		case ast.LitFloat:
			f, ok := parseFloatLiteral(lit)
			if !ok {
				a.errorAt(diag.SemaConstOutOfRange, lit.Span, "malformed float literal").Emit()
				return
			}
			v = f
		case ast.LitInteger:
			neg, mag, ok := parseIntegerLiteral(lit)
			if !ok {
				a.errorAt(diag.SemaConstOutOfRange, lit.Span, "malformed float literal").Emit()
				return
			}
			v = float64(mag)
			if neg {
				v = -v
			}
		default:
			mismatch(literalName(lit.Kind))
			return
		}
		if base == schema.Float32 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			if v != 0 && (math.Abs(v) > math.MaxFloat32) {
				a.errorAt(diag.SemaConstOutOfRange, lit.Span, "value does not fit in float32").Emit()
				return
			}
		}
		value.Float = v

	case base == schema.String:
		if lit.Kind != ast.LitString {
			mismatch(literalName(lit.Kind))
			return
		}
		value.Str = lit.Text

	case base == schema.Guid:
		if lit.Kind != ast.LitString {
			mismatch(literalName(lit.Kind))
			return
		}
		guid, ok := parseGuid(lit.Text)
		if !ok {
			a.errorAt(diag.SemaInvalidGuid, lit.Span,
				"GUID must be 36 characters in canonical 8-4-4-4-12 form").Emit()
			return
		}
		value.Guid = guid
		value.Str = lit.Text

	default:
		// date has no literal form
		mismatch(literalName(lit.Kind))
	}
}

func literalName(k ast.LiteralKind) string {
	switch k {
	case ast.LitBool:
		return "a boolean literal"
	case ast.LitInteger:
		return "an integer literal"
	case ast.LitFloat:
		return "a float literal"
	case ast.LitString:
		return "a string literal"
	}
	return "this literal"
}

// parseGuid decodes the canonical 36-character textual form into 16
// bytes in textual order. The wire layer owns the mixed-endian layout.
func parseGuid(text string) ([16]byte, bool) {
	var out [16]byte
	if len(text) != 36 {
		return out, false
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if text[pos] != '-' {
			return out, false
		}
	}
	compact := text[0:8] + text[9:13] + text[14:18] + text[19:23] + text[24:36]
	decoded, err := hex.DecodeString(compact)
	if err != nil || len(decoded) != 16 {
		return out, false
	}
	copy(out[:], decoded)
	return out, true
}
