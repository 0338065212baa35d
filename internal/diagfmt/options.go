package diagfmt

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color bool
	// ShowNotes includes secondary notes under each diagnostic.
	ShowNotes bool
}

// JSONOpts configures machine-readable diagnostic output.
type JSONOpts struct {
	IncludeNotes bool
}
