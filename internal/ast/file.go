package ast

import (
	"bebopc/internal/source"
)

// Import is an `import "path";` statement.
type Import struct {
	Path     string
	PathSpan source.Span
	Span     source.Span
}

// File is one parsed schema file: imports first, then definitions in
// source order.
type File struct {
	Span    source.Span
	Imports []Import
	Defs    []DefID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
