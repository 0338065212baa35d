package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// parseConst parses `const baseType Name = literal ;`.
func (p *Parser) parseConst(doc string, attrs []ast.Attr, parent ast.DefID) (ast.DefID, bool) {
	kw := p.advance() // 'const'

	typeSpan := p.lx.Peek().Span
	base, ok := p.parseBaseTypeName()
	if !ok {
		return ast.NoDefID, false
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoDefID, false
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const definition"); !ok {
		return ast.NoDefID, false
	}

	value, ok := p.parseLiteral()
	if !ok {
		return ast.NoDefID, false
	}

	if !p.expectSemicolon() {
		return ast.NoDefID, false
	}

	return p.arenas.NewDef(ast.Def{
		Kind:          ast.DefConst,
		Name:          name,
		NameSpan:      nameSpan,
		Span:          kw.Span.Cover(p.lastSpan),
		Doc:           doc,
		Attrs:         attrs,
		Parent:        parent,
		ConstType:     base,
		ConstTypeSpan: typeSpan,
		ConstValue:    value,
	}), true
}
