package lexer

import (
	"bebopc/internal/source"
	"bebopc/internal/token"
)

// Lexer is a pull-based tokenizer over one schema file. Callers request
// tokens one at a time; after EOF it keeps returning EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // leading trivia gathered for the next token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// Block comments are significant here: the parser decides whether they are
// documentation or noise.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '/' && lx.peekSecond() == '*':
		tok = lx.scanBlockComment()

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch == '\'' || ch == '"':
		tok = lx.scanString()

	case ch == '-' && lx.peekSecond() == '>':
		tok = lx.scanSymbol()

	case ch == '-' || isDec(ch):
		tok = lx.scanNumber()

	default:
		tok = lx.scanSymbol()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// File exposes the file the lexer reads from.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan is a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) peekSecond() byte {
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return 0
	}
	return b1
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
