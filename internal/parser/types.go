package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/schema"
	"bebopc/internal/token"
)

// parseType parses a type expression:
//
//	prefix:  map[K, V] | base type | named type
//	postfix: '?' (option) and '[]' (array), applied left to right so
//	         int32?[] is an array of optional int32
func (p *Parser) parseType() (ast.TypeID, bool) {
	id, ok := p.parseTypePrefix()
	if !ok {
		return ast.NoTypeID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.Question:
			q := p.advance()
			node := p.arenas.Type(id)
			id = p.arenas.NewType(ast.Type{
				Kind: ast.TypeOption,
				Span: node.Span.Cover(q.Span),
				Elem: id,
			})
		case token.LBracket:
			p.advance()
			closeTok, ok := p.expect(token.RBracket, diag.SynExpectType, "expected ']' after '[' in array type")
			if !ok {
				return ast.NoTypeID, false
			}
			node := p.arenas.Type(id)
			id = p.arenas.NewType(ast.Type{
				Kind: ast.TypeArray,
				Span: node.Span.Cover(closeTok.Span),
				Elem: id,
			})
		default:
			return id, true
		}
	}
}

func (p *Parser) parseTypePrefix() (ast.TypeID, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynExpectType, "expected type, got "+tok.Kind.String())
		return ast.NoTypeID, false
	}

	// map[K, V]
	if tok.Text == "map" {
		p.advance()
		if _, ok := p.expect(token.LBracket, diag.SynExpectType, "expected '[' after 'map'"); !ok {
			return ast.NoTypeID, false
		}
		key, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		if _, ok := p.expect(token.Comma, diag.SynExpectType, "expected ',' between map key and value types"); !ok {
			return ast.NoTypeID, false
		}
		value, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		closeTok, ok := p.expect(token.RBracket, diag.SynExpectType, "expected ']' to close map type")
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.NewType(ast.Type{
			Kind:  ast.TypeMap,
			Span:  tok.Span.Cover(closeTok.Span),
			Key:   key,
			Value: value,
		}), true
	}

	p.advance()
	if base, ok := schema.LookupBaseType(tok.Text); ok {
		return p.arenas.NewType(ast.Type{
			Kind:   ast.TypeScalar,
			Span:   tok.Span,
			Scalar: base,
		}), true
	}
	return p.arenas.NewType(ast.Type{
		Kind: ast.TypeNamed,
		Span: tok.Span,
		Name: p.arenas.StringsInterner.Intern(tok.Text),
	}), true
}

// parseBaseTypeName expects an identifier naming a built-in scalar type.
func (p *Parser) parseBaseTypeName() (schema.BaseType, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynExpectType, "expected base type, got "+tok.Kind.String())
		return schema.InvalidBase, false
	}
	base, ok := schema.LookupBaseType(tok.Text)
	if !ok {
		p.err(diag.SynExpectType, "expected base type, got '"+tok.Text+"'")
		return schema.InvalidBase, false
	}
	p.advance()
	return base, true
}
