package lexer

import (
	"bebopc/internal/diag"
	"bebopc/internal/source"
)

// Options configure one lexer instance.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil; scanning
	// continues either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
