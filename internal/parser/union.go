package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// parseUnion parses:
//
//	union Shape {
//	    1 -> struct Circle { float64 radius; };
//	    2 -> message Polygon { 1 -> int32 sides; };
//	}
//
// Branch definitions nest inside the union and remember it as parent.
func (p *Parser) parseUnion(doc string, attrs []ast.Attr, parent ast.DefID) (ast.DefID, bool) {
	kw := p.advance() // 'union'

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoDefID, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open union body"); !ok {
		return ast.NoDefID, false
	}

	// allocate the union def up front so branches can point at it
	unionID := p.arenas.NewDef(ast.Def{
		Kind:     ast.DefUnion,
		Name:     name,
		NameSpan: nameSpan,
		Doc:      doc,
		Attrs:    attrs,
		Parent:   parent,
	})

	var branches []ast.UnionBranch
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		branch, ok := p.parseUnionBranch(unionID)
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		branches = append(branches, branch)
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close union body")
	if !ok {
		return ast.NoDefID, false
	}

	def := p.arenas.Def(unionID)
	def.Span = kw.Span.Cover(closeTok.Span)
	def.Branches = branches
	return unionID, true
}

// parseUnionBranch parses `doc? discriminator -> (structDef | messageDef) ;`.
func (p *Parser) parseUnionBranch(unionID ast.DefID) (ast.UnionBranch, bool) {
	p.takeDocComments()

	if !p.at(token.IntLit) {
		p.err(diag.SynExpectUnionBranch, "expected branch discriminator, got "+p.lx.Peek().Kind.String())
		return ast.UnionBranch{}, false
	}
	disc, ok := p.parseIntLiteral()
	if !ok {
		return ast.UnionBranch{}, false
	}

	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after branch discriminator"); !ok {
		return ast.UnionBranch{}, false
	}

	switch p.lx.Peek().Kind {
	case token.KwStruct, token.KwReadonly, token.KwMessage:
	default:
		p.err(diag.SynExpectUnionBranch, "union branch must be a struct or message definition")
		return ast.UnionBranch{}, false
	}

	defID, ok := p.parseDefinition(unionID)
	if !ok {
		return ast.UnionBranch{}, false
	}

	if !p.expectSemicolon() {
		return ast.UnionBranch{}, false
	}

	return ast.UnionBranch{
		Discriminator: disc,
		DiscSpan:      disc.Span,
		Def:           defID,
		Span:          disc.Span.Cover(p.lastSpan),
	}, true
}
