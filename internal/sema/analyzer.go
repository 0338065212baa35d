package sema

import (
	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/schema"
	"bebopc/internal/source"
)

// Options configure one semantic pass.
type Options struct {
	Reporter diag.Reporter
	// Namespace is supplied by the host (manifest or CLI flag); schema
	// text has no namespace syntax.
	Namespace string
}

// analyzer carries the state threaded through the passes. The schema
// value is built here and never mutated after Analyze returns.
type analyzer struct {
	builder  *ast.Builder
	files    []ast.FileID
	reporter diag.Reporter
	out      *schema.Schema

	// scopes maps every AST definition to the scope its body resolves in.
	topScope *scope
	scopeOf  map[ast.DefID]*scope

	// defMap links AST definitions to their IR slots.
	defMap map[ast.DefID]schema.DefID

	// poisoned placeholder defs created per unresolved name
	placeholders map[source.StringID]schema.DefID

	errored bool
}

// Analyze resolves and validates the parsed files into an immutable
// Schema. It collects as many diagnostics as is sensible: scope and type
// resolution failures poison the affected definitions, and later passes
// keep running best-effort. ok is false whenever the returned schema must
// not be consumed as a successful compile.
func Analyze(builder *ast.Builder, files []ast.FileID, opts Options) (*schema.Schema, bool) {
	a := &analyzer{
		builder:      builder,
		files:        files,
		reporter:     opts.Reporter,
		out:          schema.NewSchema(opts.Namespace),
		scopeOf:      make(map[ast.DefID]*scope),
		defMap:       make(map[ast.DefID]schema.DefID),
		placeholders: make(map[source.StringID]schema.DefID),
	}

	a.buildScopes()
	a.allocateDefinitions()
	a.resolveAll()
	a.checkStructures()
	a.checkRecursion()
	a.evalConsts()
	a.checkOpcodes()
	a.computeSizes()

	ok := !a.errored && !a.out.HasPoisoned()
	return a.out, ok
}

func (a *analyzer) errorAt(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	a.errored = true
	return diag.ReportError(a.reporter, code, sp, msg)
}

func (a *analyzer) warnAt(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(a.reporter, code, sp, msg)
}

func (a *analyzer) name(id source.StringID) string {
	return a.builder.StringsInterner.MustLookup(id)
}

// topLevelDefs iterates the files' definitions in source order.
func (a *analyzer) topLevelDefs(fn func(ast.DefID, *ast.Def)) {
	for _, fileID := range a.files {
		file := a.builder.Files.Get(fileID)
		if file == nil {
			continue
		}
		for _, defID := range file.Defs {
			if def := a.builder.Def(defID); def != nil {
				fn(defID, def)
			}
		}
	}
}

// eachDef visits top-level definitions and union branch definitions,
// parents before children, in source order.
func (a *analyzer) eachDef(fn func(ast.DefID, *ast.Def)) {
	var walk func(ast.DefID, *ast.Def)
	walk = func(id ast.DefID, def *ast.Def) {
		fn(id, def)
		for _, br := range def.Branches {
			if child := a.builder.Def(br.Def); child != nil {
				walk(br.Def, child)
			}
		}
	}
	a.topLevelDefs(walk)
}

// computeSizes caches the minimal encoded size in every definition header.
func (a *analyzer) computeSizes() {
	for _, id := range a.out.Order {
		def := a.out.Def(id)
		if def == nil || def.Kind == schema.KindConst {
			continue
		}
		def.MinSize = a.out.MinimalEncodedSize(id)
	}
}
