package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bebopc/internal/diag"
	"bebopc/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgBlue)
)

// Pretty renders diagnostics for humans, one per block:
//
//	file.bop:3:9: ERROR SEM3002: unknown type 'Missing'
//	    Missing m;
//	    ^~~~~~~
//
// The bag should be sorted beforehand; output follows bag order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	primary := d.Primary
	if d.Code == diag.IOLoadFileError {
		// the file that failed to load has no FileID; point past the set
		primary.File = source.FileID(fs.Len())
	}
	writeHeader(w, d.Severity, d.Code, d.Message, primary, fs, opts)
	writeExcerpt(w, primary, fs)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			prefix := "note"
			if opts.Color {
				prefix = noteColor.Sprint(prefix)
			}
			start, _ := fs.Resolve(n.Span)
			file := fs.Get(n.Span.File)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", prefix, file.Path, start.Line, start.Col, n.Msg)
			writeExcerpt(w, n.Span, fs)
		}
	}
}

func writeHeader(w io.Writer, sev diag.Severity, code diag.Code, msg string, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	sevText := sev.String()
	if opts.Color {
		switch sev {
		case diag.SevError:
			sevText = errColor.Sprint(sevText)
		case diag.SevWarning:
			sevText = warnColor.Sprint(sevText)
		default:
			sevText = infoColor.Sprint(sevText)
		}
	}
	// diagnostics without a loadable file (I/O failures) still render,
	// just without a position
	if int(sp.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s: %s\n", sevText, code.ID(), msg)
		return
	}
	start, _ := fs.Resolve(sp)
	file := fs.Get(sp.File)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", file.Path, start.Line, start.Col, sevText, code.ID(), msg)
}

// writeExcerpt prints the source line with a caret underline sized to the
// span. Wide runes count for their display width.
func writeExcerpt(w io.Writer, sp source.Span, fs *source.FileSet) {
	if int(sp.File) >= fs.Len() {
		return
	}
	start, end := fs.Resolve(sp)
	file := fs.Get(sp.File)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])

	length := 1
	if end.Line == start.Line && end.Col > start.Col {
		length = int(end.Col - start.Col)
	}
	underline := "^"
	if length > 1 {
		underline += strings.Repeat("~", length-1)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}
