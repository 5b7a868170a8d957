package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/runtime/schema"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

// SimpleUI implements UI by writing to the cobra command's stdout.
type SimpleUI struct {
	cmd    *cobra.Command
	format Format
}

// NewSimpleUI creates a new SimpleUI. An empty format means FormatTable.
func NewSimpleUI(cmd *cobra.Command, format Format) *SimpleUI {
	if format == "" {
		format = FormatTable
	}

	return &SimpleUI{cmd: cmd, format: format}
}

// DisplaySummary prints the added and removed API counts and the removed groups.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.DiffSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format != FormatTable {
		return s.encode(summary)
	}

	return s.printf("\n%s\n%s", renderSummaryTable(summary), renderGroupsTable(summary.Removed.Descriptors))
}

// DisplayGroups prints the deprecated API groups and their resource types.
func (s *SimpleUI) DisplayGroups(ctx context.Context, descriptors []m.ApiGroupDescriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch s.format {
	case FormatTable:
		return s.printf("\n%s", renderGroupsTable(descriptors))
	case FormatJSON, FormatYAML:
		// Structured output emits a single document; the report already
		// carries these descriptors under summary.removed.
		return nil
	}

	return fmt.Errorf("unsupported output format %q", s.format)
}

// DisplayFindings prints the deprecated API usages found in manifests.
func (s *SimpleUI) DisplayFindings(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format != FormatTable {
		return s.encode(report)
	}

	if len(report.Findings) == 0 {
		return s.printf("No deprecated APIs found in %d file(s)\n", report.FilesScanned)
	}

	return s.printf("\n%s", renderFindingsTable(report))
}

func (s *SimpleUI) encode(v any) error {
	switch s.format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return s.printf("%s\n", data)
	case FormatYAML:
		var buf bytes.Buffer

		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)

		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return s.printf("%s", buf.String())
	}

	return fmt.Errorf("unsupported output format %q", s.format)
}

func (s *SimpleUI) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
	return err
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func renderSummaryTable(summary m.DiffSummary) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Change", "API Paths", "Named Groups", "Core Groups"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	table.Append([]string{
		"added",
		fmt.Sprintf("%d", len(summary.PathsAdded)),
		fmt.Sprintf("%d", len(summary.Added.NamedGroups)),
		fmt.Sprintf("%d", len(summary.Added.CoreGroups)),
	})
	table.Append([]string{
		"removed",
		fmt.Sprintf("%d", len(summary.PathsRemoved)),
		fmt.Sprintf("%d", len(summary.Removed.NamedGroups)),
		fmt.Sprintf("%d", len(summary.Removed.CoreGroups)),
	})

	table.SetFooter([]string{fmt.Sprintf("%s -> %s", summary.Lesser, summary.Greater), "", "", ""})
	table.Render()

	return buf.String()
}

func renderGroupsTable(descriptors []m.ApiGroupDescriptor) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"API Group", "Version", "Resource Types"})

	for _, d := range descriptors {
		group, version := d.GroupVersion, ""
		if gv, err := schema.ParseGroupVersion(d.GroupVersion); err == nil {
			group, version = gv.Group, gv.Version
		}

		table.Append([]string{group, version, strings.Join(d.ResourceTypes, ", ")})
	}

	table.SetFooter([]string{fmt.Sprintf("Deprecated Groups %d", len(descriptors)), "", ""})
	table.Render()

	return buf.String()
}

func renderFindingsTable(report m.Report) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"File", "API Version", "Kind", "Resource Type", "Similarity"})

	files := map[m.Path]struct{}{}

	for _, f := range report.Findings {
		files[f.File] = struct{}{}

		similarity := ""
		if f.Kind != "" {
			similarity = fmt.Sprintf("%.2f", f.Similarity)
		}

		table.Append([]string{string(f.File), f.APIVersion, f.Kind, f.Resource, similarity})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Files %d/%d", len(files), report.FilesScanned),
		fmt.Sprintf("Findings %d", len(report.Findings)),
		"", "", "",
	})
	table.Render()

	return buf.String()
}
