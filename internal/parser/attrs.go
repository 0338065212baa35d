package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// parseAttrs parses zero or more `[name]` / `[name(literal)]` groups.
func (p *Parser) parseAttrs() ([]ast.Attr, bool) {
	var attrs []ast.Attr
	for p.at(token.LBracket) {
		attr, ok := p.parseAttr()
		if !ok {
			return attrs, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	open := p.advance() // '['

	name, _, ok := p.parseIdent()
	if !ok {
		p.resyncUntil(token.RBracket, token.Semicolon, token.RBrace)
		if p.at(token.RBracket) {
			p.advance()
		}
		return ast.Attr{}, false
	}

	var value *ast.Literal
	if p.at(token.LParen) {
		p.advance()
		lit, ok := p.parseLiteral()
		if !ok {
			p.resyncUntil(token.RParen, token.RBracket, token.Semicolon)
		} else {
			value = &lit
		}
		if _, ok := p.expect(token.RParen, diag.SynMalformedAttribute, "expected ')' to close attribute argument"); !ok {
			return ast.Attr{}, false
		}
	}

	closeTok, ok := p.expect(token.RBracket, diag.SynMalformedAttribute, "expected ']' to close attribute")
	if !ok {
		return ast.Attr{}, false
	}

	return ast.Attr{
		Name:  name,
		Value: value,
		Span:  open.Span.Cover(closeTok.Span),
	}, true
}

// parseLiteral parses a bool, number, or string literal token.
func (p *Parser) parseLiteral() (ast.Literal, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwTrue:
		p.advance()
		return ast.BoolLiteral(true, tok.Span), true
	case token.KwFalse:
		p.advance()
		return ast.BoolLiteral(false, tok.Span), true
	case token.IntLit:
		p.advance()
		return ast.IntegerLiteral(tok.Text, tok.Span), true
	case token.FloatLit:
		p.advance()
		return ast.FloatLiteral(tok.Text, tok.Span), true
	case token.KwInf:
		p.advance()
		return ast.FloatLiteral("inf", tok.Span), true
	case token.KwNan:
		p.advance()
		return ast.FloatLiteral("nan", tok.Span), true
	case token.StringLit:
		p.advance()
		return ast.StringLiteral(tok.Text, tok.Span), true
	default:
		p.err(diag.SynMalformedLiteral, "expected literal, got "+tok.Kind.String())
		return ast.Literal{}, false
	}
}

// parseIntLiteral parses a literal that must be an integer.
func (p *Parser) parseIntLiteral() (ast.Literal, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.IntLit {
		p.err(diag.SynMalformedLiteral, "expected integer literal, got "+tok.Kind.String())
		return ast.Literal{}, false
	}
	p.advance()
	return ast.IntegerLiteral(tok.Text, tok.Span), true
}
