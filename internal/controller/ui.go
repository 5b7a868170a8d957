// Package controller provides output adapters for displaying api check results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

// Format selects how results are rendered.
type Format string

// Available Format values.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat returns the format named by value.
func ParseFormat(value string) (Format, bool) {
	switch Format(value) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(value), true
	}

	return "", false
}

// UI defines the interface for displaying api check results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySummary(ctx context.Context, summary m.DiffSummary) error
	DisplayGroups(ctx context.Context, descriptors []m.ApiGroupDescriptor) error
	DisplayFindings(ctx context.Context, report m.Report) error
}

// NewUI returns a TUI when interactive table output goes to a terminal and a
// SimpleUI otherwise.
func NewUI(cmd *cobra.Command, format Format, interactive bool) UI {
	simple := NewSimpleUI(cmd, format)

	if !interactive || format != FormatTable {
		return simple
	}

	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !IsTTY(f) {
		return simple
	}

	return NewTUI(f, simple)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
