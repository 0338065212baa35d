package diagfmt

import (
	"encoding/json"
	"io"

	"bebopc/internal/diag"
	"bebopc/internal/source"
)

type jsonNote struct {
	File    string `json:"file"`
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	File     string     `json:"file"`
	Line     uint32     `json:"line"`
	Col      uint32     `json:"col"`
	Message  string     `json:"message"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON renders diagnostics as a JSON array, one object per diagnostic.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := make([]jsonDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if int(d.Primary.File) < fs.Len() {
			start, _ := fs.Resolve(d.Primary)
			jd.File = fs.Get(d.Primary.File).Path
			jd.Line = start.Line
			jd.Col = start.Col
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				nStart, _ := fs.Resolve(n.Span)
				jd.Notes = append(jd.Notes, jsonNote{
					File:    fs.Get(n.Span.File).Path,
					Line:    nStart.Line,
					Col:     nStart.Col,
					Message: n.Msg,
				})
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
