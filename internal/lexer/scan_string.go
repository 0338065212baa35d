package lexer

import (
	"strings"

	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// scanString scans a single- or double-quoted string literal. The quote
// character escapes itself by doubling ('' or ""); backslash has no special
// meaning and newlines are allowed inside the literal. Token.Text carries
// the decoded value, without quotes.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b != quote {
			sb.WriteByte(b)
			continue
		}
		// doubled quote is a literal quote character
		if lx.cursor.Peek() == quote {
			lx.cursor.Bump()
			sb.WriteByte(quote)
			continue
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.StringLit, Span: sp, Text: sb.String()}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}
