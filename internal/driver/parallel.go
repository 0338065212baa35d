package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"bebopc/internal/diag"
	"bebopc/internal/lexer"
	"bebopc/internal/source"
	"bebopc/internal/token"
)

// TokenizeDirResult is the per-file output of TokenizeDir.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// listSchemaFiles returns every *.bop file under dir, sorted for a
// deterministic compile order.
func listSchemaFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".bop") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir tokenizes every schema file under dir in parallel. Files
// are preloaded serially (the FileSet is not concurrency-safe); lexing
// fans out across jobs workers. Results come back in path order.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := listSchemaFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	results := make([]TokenizeDirResult, len(files))
	for i, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			return nil, nil, err
		}
		results[i] = TokenizeDirResult{Path: path, FileID: fileID}
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i := range results {
		g.Go(func() error {
			res := &results[i]
			bag := diag.NewBag(maxDiagnostics)
			lx := lexer.New(fileSet.Get(res.FileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
			for {
				tok := lx.Next()
				if tok.Kind == token.EOF {
					break
				}
				res.Tokens = append(res.Tokens, tok)
			}
			bag.Sort()
			res.Bag = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}
