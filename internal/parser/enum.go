package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/schema"
	"bebopc/internal/token"
)

// parseEnum parses:
//
//	enum Instrument { Sax = 0; Trumpet = 1; }
//	enum Flags : uint16 { None = 0; A = 1; B = 2; }
func (p *Parser) parseEnum(doc string, attrs []ast.Attr, parent ast.DefID) (ast.DefID, bool) {
	kw := p.advance() // 'enum'

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoDefID, false
	}

	base := schema.InvalidBase
	var baseSpan = nameSpan.Caret()
	if p.at(token.Colon) {
		p.advance()
		baseSpan = p.lx.Peek().Span
		base, ok = p.parseBaseTypeName()
		if !ok {
			return ast.NoDefID, false
		}
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open enum body"); !ok {
		return ast.NoDefID, false
	}

	var members []ast.EnumMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseEnumMember()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		members = append(members, member)
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close enum body")
	if !ok {
		return ast.NoDefID, false
	}

	return p.arenas.NewDef(ast.Def{
		Kind:         ast.DefEnum,
		Name:         name,
		NameSpan:     nameSpan,
		Span:         kw.Span.Cover(closeTok.Span),
		Doc:          doc,
		Attrs:        attrs,
		Parent:       parent,
		EnumBase:     base,
		EnumBaseSpan: baseSpan,
		EnumMembers:  members,
	}), true
}

// parseEnumMember parses `doc? attr* Name = integer ;`.
func (p *Parser) parseEnumMember() (ast.EnumMember, bool) {
	p.takeDocComments()
	doc := p.claimDoc()

	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.EnumMember{}, false
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.EnumMember{}, false
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after enum member name"); !ok {
		return ast.EnumMember{}, false
	}

	value, ok := p.parseIntLiteral()
	if !ok {
		return ast.EnumMember{}, false
	}

	if !p.expectSemicolon() {
		return ast.EnumMember{}, false
	}

	return ast.EnumMember{
		Name:     name,
		NameSpan: nameSpan,
		Value:    value,
		Attrs:    attrs,
		Doc:      doc,
		Span:     nameSpan.Cover(p.lastSpan),
	}, true
}
