package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// parseImport parses `import "path";`. The host resolves the path to
// text; the parser only records it.
func (p *Parser) parseImport() {
	kw := p.advance() // 'import'

	tok := p.lx.Peek()
	if tok.Kind != token.StringLit {
		p.err(diag.SynExpectImportPath, "expected string after 'import'")
		p.resyncUntil(token.Semicolon, token.RBrace)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return
	}
	p.advance()

	if !p.expectSemicolon() {
		return
	}

	p.arenas.PushImport(p.file, ast.Import{
		Path:     tok.Text,
		PathSpan: tok.Span,
		Span:     kw.Span.Cover(p.lastSpan),
	})
}
