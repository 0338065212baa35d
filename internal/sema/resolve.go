package sema

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/schema"
	"bebopc/internal/source"
)

// allocateDefinitions creates the IR slot for every AST definition, in
// source order with parents before their union branches, so type
// resolution can point at stable DefIDs.
func (a *analyzer) allocateDefinitions() {
	a.eachDef(func(id ast.DefID, def *ast.Def) {
		header := schema.Header{
			Name: a.name(def.Name),
			Span: def.Span,
			Doc:  def.Doc,
		}
		if def.Parent.IsValid() {
			header.Parent = a.defMap[def.Parent]
		}

		out := schema.Definition{Header: header}
		switch def.Kind {
		case ast.DefEnum:
			out.Kind = schema.KindEnum
			base := def.EnumBase
			if base == schema.InvalidBase {
				base = schema.UInt32
			}
			out.Enum = &schema.EnumDef{Base: base}
			a.applyDefAttrs(def, &out.Header, out.Kind, &out.Enum.IsFlags)
			if !base.IsInteger() {
				a.errorAt(diag.SemaInvalidEnumBase, def.EnumBaseSpan,
					"enum base type must be an integer, got "+base.String()).Emit()
				out.Enum.Base = schema.UInt32
			}
		case ast.DefStruct:
			out.Kind = schema.KindStruct
			out.Struct = &schema.StructDef{IsReadonly: def.IsReadonly}
			a.applyDefAttrs(def, &out.Header, out.Kind, nil)
		case ast.DefMessage:
			out.Kind = schema.KindMessage
			out.Message = &schema.MessageDef{}
			a.applyDefAttrs(def, &out.Header, out.Kind, nil)
		case ast.DefUnion:
			out.Kind = schema.KindUnion
			out.Union = &schema.UnionDef{}
			a.applyDefAttrs(def, &out.Header, out.Kind, nil)
		case ast.DefConst:
			out.Kind = schema.KindConst
			out.Const = &schema.ConstDef{Type: def.ConstType}
			a.applyDefAttrs(def, &out.Header, out.Kind, nil)
		}

		irID := a.out.Add(out)
		a.defMap[id] = irID
		if !def.Parent.IsValid() {
			a.out.Roots = append(a.out.Roots, irID)
			if _, exists := a.out.ByName[header.Name]; !exists {
				a.out.ByName[header.Name] = irID
			}
		}
	})
}

// resolveAll rewrites every Named type reference into a direct DefID and
// fills the IR payloads. Unknown names poison a placeholder definition so
// later passes still have something to chew on.
func (a *analyzer) resolveAll() {
	a.eachDef(func(id ast.DefID, def *ast.Def) {
		irID := a.defMap[id]
		ir := a.out.Def(irID)
		sc := a.scopeOf[id]

		switch def.Kind {
		case ast.DefEnum:
			a.fillEnum(def, ir)
		case ast.DefStruct:
			for i := range def.Fields {
				f := &def.Fields[i]
				ir.Struct.Fields = append(ir.Struct.Fields, schema.StructField{
					Name:       a.name(f.Name),
					Type:       a.resolveType(f.Type, sc),
					Doc:        f.Doc,
					Deprecated: a.fieldDeprecation(f.Attrs),
					Span:       f.Span,
				})
			}
		case ast.DefMessage:
			for i := range def.Fields {
				f := &def.Fields[i]
				ir.Message.Fields = append(ir.Message.Fields, schema.MessageField{
					Name:       a.name(f.Name),
					Type:       a.resolveType(f.Type, sc),
					Doc:        f.Doc,
					Deprecated: a.fieldDeprecation(f.Attrs),
					Span:       f.Span,
				})
			}
		case ast.DefUnion:
			for _, br := range def.Branches {
				ir.Union.Branches = append(ir.Union.Branches, schema.UnionBranch{
					Def:  a.defMap[br.Def],
					Span: br.Span,
				})
			}
		}
	})
}

// resolveType converts an unresolved type expression, looking names up
// innermost-scope-first.
func (a *analyzer) resolveType(id ast.TypeID, sc *scope) *schema.TypeRef {
	node := a.builder.Type(id)
	if node == nil {
		return &schema.TypeRef{Kind: schema.TypeInvalid}
	}

	switch node.Kind {
	case ast.TypeScalar:
		return &schema.TypeRef{Kind: schema.TypeScalar, Scalar: node.Scalar, Span: node.Span}
	case ast.TypeNamed:
		target, ok := sc.lookup(node.Name)
		if !ok {
			return a.unknownType(node)
		}
		return &schema.TypeRef{Kind: schema.TypeDef, Def: a.defMap[target], Span: node.Span}
	case ast.TypeArray:
		return &schema.TypeRef{Kind: schema.TypeArray, Elem: a.resolveType(node.Elem, sc), Span: node.Span}
	case ast.TypeMap:
		return &schema.TypeRef{
			Kind:  schema.TypeMap,
			Key:   a.resolveType(node.Key, sc),
			Value: a.resolveType(node.Value, sc),
			Span:  node.Span,
		}
	case ast.TypeOption:
		return &schema.TypeRef{Kind: schema.TypeOption, Elem: a.resolveType(node.Elem, sc), Span: node.Span}
	}
	return &schema.TypeRef{Kind: schema.TypeInvalid, Span: node.Span}
}

// unknownType reports the failure and returns a reference to a poisoned
// placeholder so downstream passes can continue.
func (a *analyzer) unknownType(node *ast.Type) *schema.TypeRef {
	a.errorAt(diag.SemaUnknownType, node.Span,
		"unknown type '"+a.name(node.Name)+"'").Emit()
	return &schema.TypeRef{Kind: schema.TypeDef, Def: a.placeholderFor(node.Name), Span: node.Span}
}

func (a *analyzer) placeholderFor(name source.StringID) schema.DefID {
	if id, ok := a.placeholders[name]; ok {
		return id
	}
	id := a.out.Add(schema.Definition{
		Kind:   schema.KindStruct,
		Header: schema.Header{Name: a.name(name), Poisoned: true},
		Struct: &schema.StructDef{},
	})
	a.placeholders[name] = id
	return id
}

// fillEnum range-checks member values against the backing scalar and
// enforces value uniqueness for non-flags enums.
func (a *analyzer) fillEnum(def *ast.Def, ir *schema.Definition) {
	base := ir.Enum.Base
	min, max := base.IntegerRange()
	seen := make(map[uint64]source.Span)

	for i := range def.EnumMembers {
		m := &def.EnumMembers[i]
		neg, mag, ok := parseIntegerLiteral(m.Value)
		if !ok {
			a.errorAt(diag.SemaEnumValueOutOfRange, m.Value.Span, "malformed enum value").Emit()
			continue
		}

		var bits uint64
		switch {
		case neg && mag > 0:
			magLimit := uint64(-(min + 1)) + 1
			if !base.IsSigned() || mag > magLimit {
				a.errorAt(diag.SemaEnumValueOutOfRange, m.Value.Span,
					"value does not fit in "+base.String()).Emit()
				continue
			}
			bits = uint64(0) - mag // two's complement, sign-extended
		default:
			if mag > max {
				a.errorAt(diag.SemaEnumValueOutOfRange, m.Value.Span,
					"value does not fit in "+base.String()).Emit()
				continue
			}
			bits = mag
		}

		if prev, dup := seen[bits]; dup && !ir.Enum.IsFlags {
			a.errorAt(diag.SemaDuplicateEnumValue, m.Value.Span,
				"duplicate enum value in '"+ir.Name+"'").
				WithNote(prev, "first used here").
				Emit()
			continue
		}
		seen[bits] = m.Value.Span

		ir.Enum.Members = append(ir.Enum.Members, schema.EnumMember{
			Name:       a.name(m.Name),
			Value:      bits,
			Doc:        m.Doc,
			Deprecated: a.fieldDeprecation(m.Attrs),
			Span:       m.Span,
		})
	}
}
