package lexer

import (
	"strings"

	"bebopc/internal/diag"
	"bebopc/internal/token"
)

// collectLeadingTrivia gathers whitespace and line comments before the next
// significant token into lx.hold:
//   - runs of ' ' / '\t' coalesce into one TriviaSpace
//   - '\n', '\r', '\r\n' each count as one line break; runs coalesce into
//     one TriviaNewline
//   - "// ..." up to end-of-line becomes TriviaLineComment (never surfaced
//     to the parser as documentation)
//
// Block comments stop the scan: they are real tokens.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '\n' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 == '\r' {
					lx.cursor.Bump()
					lx.cursor.Eat('\n')
					continue
				}
				if b2 == '\n' {
					lx.cursor.Bump()
					continue
				}
				break
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '/' && lx.peekSecond() == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			for !lx.cursor.EOF() {
				b2 := lx.cursor.Peek()
				if b2 == '\n' || b2 == '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.text(sp)})
			continue
		}

		break
	}
}

// scanBlockComment consumes a nestable /* ... */ comment and returns it as
// a BlockComment token whose Text is the cleaned documentation body.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	}
	return token.Token{Kind: token.BlockComment, Span: sp, Text: cleanBlockComment(lx.text(sp))}
}

// cleanBlockComment strips the comment delimiters and the leading
// whitespace-and-asterisk decoration common in box-style comments,
// joining the remaining lines with \n.
func cleanBlockComment(raw string) string {
	body := strings.TrimPrefix(raw, "/*")
	body = strings.TrimSuffix(body, "*/")

	lines := strings.Split(body, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimLeft(line, " \t")
		line = strings.TrimRight(line, " \t\r")
		cleaned = append(cleaned, line)
	}

	// drop blank edges produced by "/*\n" and "\n*/" layouts
	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
