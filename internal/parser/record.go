package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// parseStruct parses `[readonly] struct Name { field* }` where each
// field is `doc? attr* type name ;`.
func (p *Parser) parseStruct(doc string, attrs []ast.Attr, parent ast.DefID) (ast.DefID, bool) {
	start := p.lx.Peek().Span
	readonly := false
	if p.at(token.KwReadonly) {
		p.advance()
		readonly = true
	}

	if _, ok := p.expect(token.KwStruct, diag.SynUnexpectedToken, "expected 'struct' after 'readonly'"); !ok {
		return ast.NoDefID, false
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoDefID, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open struct body"); !ok {
		return ast.NoDefID, false
	}

	var fields []ast.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseStructField()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		fields = append(fields, field)
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close struct body")
	if !ok {
		return ast.NoDefID, false
	}

	return p.arenas.NewDef(ast.Def{
		Kind:       ast.DefStruct,
		Name:       name,
		NameSpan:   nameSpan,
		Span:       start.Cover(closeTok.Span),
		Doc:        doc,
		Attrs:      attrs,
		Parent:     parent,
		Fields:     fields,
		IsReadonly: readonly,
	}), true
}

func (p *Parser) parseStructField() (ast.Field, bool) {
	p.takeDocComments()
	doc := p.claimDoc()

	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.Field{}, false
	}

	start := p.lx.Peek().Span
	typeID, ok := p.parseType()
	if !ok {
		return ast.Field{}, false
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.Field{}, false
	}

	if !p.expectSemicolon() {
		return ast.Field{}, false
	}

	return ast.Field{
		Name:     name,
		NameSpan: nameSpan,
		Type:     typeID,
		Attrs:    attrs,
		Doc:      doc,
		Span:     start.Cover(p.lastSpan),
	}, true
}

// parseMessage parses `message Name { messageField* }` where each field
// is `doc? attr* index -> type name ;`.
func (p *Parser) parseMessage(doc string, attrs []ast.Attr, parent ast.DefID) (ast.DefID, bool) {
	kw := p.advance() // 'message'

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoDefID, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open message body"); !ok {
		return ast.NoDefID, false
	}

	var fields []ast.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseMessageField()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		fields = append(fields, field)
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close message body")
	if !ok {
		return ast.NoDefID, false
	}

	return p.arenas.NewDef(ast.Def{
		Kind:     ast.DefMessage,
		Name:     name,
		NameSpan: nameSpan,
		Span:     kw.Span.Cover(closeTok.Span),
		Doc:      doc,
		Attrs:    attrs,
		Parent:   parent,
		Fields:   fields,
	}), true
}

func (p *Parser) parseMessageField() (ast.Field, bool) {
	p.takeDocComments()
	doc := p.claimDoc()

	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.Field{}, false
	}

	if !p.at(token.IntLit) {
		p.err(diag.SynExpectFieldIndex, "expected field index, got "+p.lx.Peek().Kind.String())
		return ast.Field{}, false
	}
	index, ok := p.parseIntLiteral()
	if !ok {
		return ast.Field{}, false
	}

	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after field index"); !ok {
		return ast.Field{}, false
	}

	typeID, ok := p.parseType()
	if !ok {
		return ast.Field{}, false
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.Field{}, false
	}

	if !p.expectSemicolon() {
		return ast.Field{}, false
	}

	return ast.Field{
		Name:      name,
		NameSpan:  nameSpan,
		Type:      typeID,
		Index:     index,
		HasIndex:  true,
		IndexSpan: index.Span,
		Attrs:     attrs,
		Doc:       doc,
		Span:      index.Span.Cover(p.lastSpan),
	}, true
}
