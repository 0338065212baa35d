// Package ui renders the human-facing build summary.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// BuildSummary is what the build command reports when it finishes.
type BuildSummary struct {
	Schemas     int
	Definitions int
	Errors      int
	Warnings    int
	Generator   string
	OutDir      string
	OK          bool
}

// Render returns the summary as a bordered block, or a plain line when
// color is off.
func Render(s BuildSummary, colored bool) string {
	status := "FAILED"
	if s.OK {
		status = "OK"
	}

	if !colored {
		return fmt.Sprintf("build %s: %d schema file(s), %d definition(s), %d error(s), %d warning(s)",
			status, s.Schemas, s.Definitions, s.Errors, s.Warnings)
	}

	styled := failStyle.Render(status)
	if s.OK {
		styled = okStyle.Render(status)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "build %s\n", styled)
	fmt.Fprintf(&sb, "%s %d schema file(s), %d definition(s)\n", dimStyle.Render("input:"), s.Schemas, s.Definitions)
	fmt.Fprintf(&sb, "%s %d error(s), %d warning(s)", dimStyle.Render("diags:"), s.Errors, s.Warnings)
	if s.Generator != "" {
		fmt.Fprintf(&sb, "\n%s %s -> %s", dimStyle.Render("codegen:"), s.Generator, s.OutDir)
	}
	return boxStyle.Render(sb.String())
}
