// Package driver wires the pipeline stages together: it loads schema
// text, runs lexer, parser, and analyzer, and hands the validated IR to
// a generator. The stages themselves stay pure; all I/O lives here.
package driver

import (
	"fmt"
	"path/filepath"
	"sort"

	"bebopc/internal/ast"
	"bebopc/internal/diag"
	"bebopc/internal/lexer"
	"bebopc/internal/parser"
	"bebopc/internal/schema"
	"bebopc/internal/sema"
	"bebopc/internal/source"
	"bebopc/internal/token"
)

// Options configure a compile.
type Options struct {
	// Namespace is threaded into the schema; optional.
	Namespace string
	// MaxDiagnostics caps the diagnostic bag.
	MaxDiagnostics int
}

func (o Options) maxDiag() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// TokenizeResult is the output of the tokenize entry point.
type TokenizeResult struct {
	FileSet *source.FileSet
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single schema file, keeping every significant token.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fileSet.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	bag.Sort()
	return &TokenizeResult{FileSet: fileSet, Tokens: tokens, Bag: bag}, nil
}

// CompileResult is the output of a full compile.
type CompileResult struct {
	FileSet *source.FileSet
	Schema  *schema.Schema
	Bag     *diag.Bag
	OK      bool
}

// CompileFiles loads the given schema files (and everything they
// import), then runs the full front end over the union.
func CompileFiles(paths []string, opts Options) (*CompileResult, error) {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(opts.maxDiag())
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})

	loaded := make(map[string]bool)
	var astFiles []ast.FileID

	// queue-based import resolution: imports are deduplicated, so
	// cycles load each file once and terminate
	queue := make([]string, 0, len(paths))
	for _, p := range paths {
		queue = append(queue, filepath.Clean(p))
	}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if loaded[path] {
			continue
		}
		loaded[path] = true

		fileID, err := fileSet.Load(path)
		if err != nil {
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("cannot load %s: %v", path, err)))
			continue
		}

		lx := lexer.New(fileSet.Get(fileID), lexer.Options{Reporter: reporter})
		res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
		astFiles = append(astFiles, res.File)

		for _, imp := range builder.Files.Get(res.File).Imports {
			resolved := filepath.Clean(filepath.Join(filepath.Dir(path), imp.Path))
			if !loaded[resolved] {
				queue = append(queue, resolved)
			}
		}
	}

	return finishCompile(fileSet, builder, astFiles, bag, opts), nil
}

// CompileSources runs the front end over pre-read texts; no I/O happens.
// This is the pure compile(sources) entry point.
func CompileSources(sources map[string]string, opts Options) *CompileResult {
	fileSet := source.NewFileSet()
	bag := diag.NewBag(opts.maxDiag())
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{})

	// deterministic input order: callers that care pass ordered paths
	// through CompileFiles; map inputs are sorted by name
	var astFiles []ast.FileID
	for _, name := range sortedKeys(sources) {
		fileID := fileSet.AddVirtual(name, []byte(sources[name]))
		lx := lexer.New(fileSet.Get(fileID), lexer.Options{Reporter: reporter})
		res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
		astFiles = append(astFiles, res.File)
	}

	return finishCompile(fileSet, builder, astFiles, bag, opts)
}

func finishCompile(fileSet *source.FileSet, builder *ast.Builder, astFiles []ast.FileID, bag *diag.Bag, opts Options) *CompileResult {
	var compiled *schema.Schema
	ok := false
	if !bag.HasErrors() || len(astFiles) > 0 {
		compiled, ok = sema.Analyze(builder, astFiles, sema.Options{
			Reporter:  diag.BagReporter{Bag: bag},
			Namespace: opts.Namespace,
		})
	}
	if bag.HasErrors() {
		ok = false
	}
	bag.Sort()
	return &CompileResult{
		FileSet: fileSet,
		Schema:  compiled,
		Bag:     bag,
		OK:      ok,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
