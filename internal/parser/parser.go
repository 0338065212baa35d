package parser

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/lexer"
	"bebopc/internal/source"
	"bebopc/internal/token"
)

// Options configure one parse.
type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result of parsing one schema file.
type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span

	// pendingDoc is the most recent block comment not yet claimed by a
	// definition or field. Preceding block comments bind to the next
	// definition; an unclaimed comment stays pending until the next
	// definition, field or enum member claims it.
	pendingDoc    string
	hasPendingDoc bool
}

// ParseFile is the entry point for one schema file. The lexer must wrap
// the file being parsed; arenas may be shared across files of a compile.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseSchema()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

// parseSchema is the top-level loop: imports and definitions until EOF.
func (p *Parser) parseSchema() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		p.takeDocComments()
		if p.at(token.EOF) {
			break
		}

		switch p.lx.Peek().Kind {
		case token.KwImport:
			p.parseImport()
		default:
			defID, ok := p.parseDefinition(ast.NoDefID)
			if !ok {
				p.resyncTop()
				continue
			}
			p.arenas.PushDef(p.file, defID)
		}
	}
	f := p.arenas.Files.Get(p.file)
	f.Span = startSpan.Cover(p.lastSpan)
}

// parseDefinition dispatches on the next token: attributes, readonly
// prefix, then one of enum/struct/message/union/const. parent is the
// enclosing union for branch-nested definitions.
func (p *Parser) parseDefinition(parent ast.DefID) (ast.DefID, bool) {
	doc := p.claimDoc()
	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.NoDefID, false
	}
	// attributes may carry their own doc comment between them and the keyword
	p.takeDocComments()
	if p.hasPendingDoc && doc == "" {
		doc = p.claimDoc()
	}

	switch p.lx.Peek().Kind {
	case token.KwEnum:
		return p.parseEnum(doc, attrs, parent)
	case token.KwReadonly, token.KwStruct:
		return p.parseStruct(doc, attrs, parent)
	case token.KwMessage:
		return p.parseMessage(doc, attrs, parent)
	case token.KwUnion:
		return p.parseUnion(doc, attrs, parent)
	case token.KwConst:
		return p.parseConst(doc, attrs, parent)
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected a definition, got "+p.lx.Peek().Kind.String())
		return ast.NoDefID, false
	}
}

// resyncTop skips ahead to the next plausible definition start or past
// the closing brace of the broken construct.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if (token.Token{Kind: k}).IsDefinitionStart() {
			return
		}
		if k == token.RBrace || k == token.Semicolon {
			p.advance()
			return
		}
		p.advance()
	}
}

// takeDocComments consumes consecutive block-comment tokens, keeping the
// last one as the pending documentation.
func (p *Parser) takeDocComments() {
	for p.at(token.BlockComment) {
		tok := p.advance()
		p.pendingDoc = tok.Text
		p.hasPendingDoc = true
	}
}

// claimDoc hands the pending documentation to the construct being parsed.
func (p *Parser) claimDoc() string {
	if !p.hasPendingDoc {
		return ""
	}
	doc := p.pendingDoc
	p.pendingDoc = ""
	p.hasPendingDoc = false
	return doc
}
