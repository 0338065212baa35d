package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bebopc/internal/diagfmt"
	"bebopc/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.bop...",
	Short: "Parse and validate schemas without generating code",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostic format (pretty|json)")
	checkCmd.Flags().String("namespace", "", "namespace recorded in the compiled schema")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	namespace, _ := cmd.Flags().GetString("namespace")

	res, err := driver.CompileFiles(args, driver.Options{
		Namespace:      namespace,
		MaxDiagnostics: maxDiagnostics(cmd),
	})
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	case "json":
		if err := diagfmt.JSON(os.Stderr, res.Bag, res.FileSet, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !res.OK {
		os.Exit(1)
	}
	fmt.Printf("%d definition(s) ok\n", res.Schema.Len())
	return nil
}
