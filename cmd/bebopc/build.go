package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bebopc/internal/diag"
	"bebopc/internal/diagfmt"
	"bebopc/internal/driver"
	"bebopc/internal/generator"
	"bebopc/internal/project"
	"bebopc/internal/source"
	"bebopc/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags]",
	Short: "Compile schemas and run a generator",
	Long: `Build compiles schemas and emits generated code.

With --schema, a single schema (plus its imports) is compiled using the
--generator and --out-dir flags. Without it, the nearest bebop.toml
manifest drives the build.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("schema", "", "schema file to compile")
	buildCmd.Flags().String("generator", "go", "generator to run")
	buildCmd.Flags().String("out-dir", "gen", "output directory")
	buildCmd.Flags().String("namespace", "", "namespace recorded in the compiled schema")
	buildCmd.Flags().Bool("no-cache", false, "skip the compiled-schema disk cache")
}

func runBuild(cmd *cobra.Command, args []string) error {
	schemaFlag, _ := cmd.Flags().GetString("schema")
	genName, _ := cmd.Flags().GetString("generator")
	outDir, _ := cmd.Flags().GetString("out-dir")
	namespace, _ := cmd.Flags().GetString("namespace")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	var schemas []string
	if schemaFlag != "" {
		schemas = []string{schemaFlag}
	} else {
		manifestPath, err := project.Find(".")
		if err != nil {
			return fmt.Errorf("no --schema given and %w", err)
		}
		manifest, err := project.Load(manifestPath)
		if err != nil {
			return err
		}
		schemas = manifest.SchemaPaths()
		genName = manifest.Generator.Name
		outDir = manifest.OutDir()
		if namespace == "" {
			namespace = manifest.Namespace
		}
	}

	gen, err := generator.Lookup(genName)
	if err != nil {
		return err
	}

	res, err := driver.CompileFiles(schemas, driver.Options{
		Namespace:      namespace,
		MaxDiagnostics: maxDiagnostics(cmd),
	})
	if err != nil {
		return err
	}

	colored := useColor(cmd, os.Stderr)
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     colored,
		ShowNotes: true,
	})

	summary := ui.BuildSummary{
		Schemas:   res.FileSet.Len(),
		Generator: genName,
		OutDir:    outDir,
		OK:        res.OK,
	}
	for _, d := range res.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			summary.Errors++
		case diag.SevWarning:
			summary.Warnings++
		}
	}

	if !res.OK {
		fmt.Fprintln(os.Stderr, ui.Render(summary, colored))
		os.Exit(1)
	}
	summary.Definitions = res.Schema.Len()

	out, err := gen.Emit(res.Schema)
	if err != nil {
		return fmt.Errorf("generator %s: %w", genName, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outFile := filepath.Join(outDir, "schema.go")
	if err := os.WriteFile(outFile, []byte(out), 0o644); err != nil {
		return err
	}
	if err := gen.WriteAuxiliaryFiles(outDir); err != nil {
		return err
	}

	if !noCache {
		writeCache(res)
	}

	fmt.Fprintln(os.Stderr, ui.Render(summary, colored))
	return nil
}

// writeCache records the compile summary; cache failures never fail a
// build.
func writeCache(res *driver.CompileResult) {
	cache, err := driver.OpenDiskCache("bebopc")
	if err != nil {
		return
	}
	inputs := make([]string, 0, res.FileSet.Len())
	for i := 0; i < res.FileSet.Len(); i++ {
		inputs = append(inputs, res.FileSet.Get(source.FileID(i)).Path)
	}
	key := driver.HashInputs(res.FileSet, res.FileSet.Len())
	_ = cache.Put(key, driver.Summarize(res.Schema, inputs))
}
