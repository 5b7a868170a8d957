package domain

import (
	"context"
	"fmt"
	"log/slog"

	"apicheck.dev/pkg/apicheck/internal/adapter"
	"apicheck.dev/pkg/apicheck/internal/controller"
	m "apicheck.dev/pkg/apicheck/internal/model"
)

// DiffArgs selects the two versions to compare.
type DiffArgs struct {
	Lesser  m.Version
	Greater m.Version
}

// CheckArgs contains the arguments for the check workflow.
type CheckArgs struct {
	DiffArgs
	// Root is the manifest directory. Scanning is skipped when empty.
	Root        m.Path
	Patterns    []string
	Policy      m.MatchPolicy
	IncludeCore bool
	// Pretty displays the deprecated group table before scanning.
	Pretty bool
	// Fail turns findings into ErrDeprecatedAPIsFound.
	Fail bool
}

// Workflow runs the spec comparison pipeline.
type Workflow interface {
	Diff(ctx context.Context, args DiffArgs) (m.DiffSummary, error)
	Check(ctx context.Context, args CheckArgs) (m.Report, error)
}

type workflow struct {
	specs   adapter.SpecSourceAdapter
	differ  SpecDiffer
	scanner ManifestScanner
	ui      controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	specs adapter.SpecSourceAdapter,
	differ SpecDiffer,
	scanner ManifestScanner,
	ui controller.UI,
) Workflow {
	return &workflow{
		specs:   specs,
		differ:  differ,
		scanner: scanner,
		ui:      ui,
	}
}

// Diff compares the two versions and displays the summary.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) (m.DiffSummary, error) {
	summary, err := w.summarize(ctx, args)
	if err != nil {
		return summary, err
	}

	if err := w.ui.DisplaySummary(ctx, summary); err != nil {
		return summary, fmt.Errorf("display summary: %w", err)
	}

	return summary, nil
}

// Check compares the two versions and scans manifests for removed APIs.
func (w *workflow) Check(ctx context.Context, args CheckArgs) (m.Report, error) {
	summary, err := w.summarize(ctx, args.DiffArgs)
	if err != nil {
		return m.Report{}, err
	}

	report := m.Report{Summary: summary, Policy: args.Policy}

	if args.Pretty {
		if err := w.ui.DisplayGroups(ctx, summary.Removed.Descriptors); err != nil {
			return report, fmt.Errorf("display groups: %w", err)
		}
	}

	if args.Root == "" {
		slog.Debug("no manifest path configured, skipping scan")
		return report, nil
	}

	result, err := w.scanner.Scan(ctx, ScanArgs{
		Root:        args.Root,
		Patterns:    args.Patterns,
		Policy:      args.Policy,
		Groups:      DeprecatedGroups(summary.Removed, args.IncludeCore),
		Descriptors: summary.Removed.Descriptors,
	})
	if err != nil {
		return report, fmt.Errorf("scan manifests: %w", err)
	}

	report.FilesScanned = len(result.Files)
	report.Findings = result.Findings

	if err := w.ui.DisplayFindings(ctx, report); err != nil {
		return report, fmt.Errorf("display findings: %w", err)
	}

	if len(report.Findings) > 0 && args.Fail {
		return report, fmt.Errorf("%w: %d finding(s) in %s", ErrDeprecatedAPIsFound, len(report.Findings), args.Root)
	}

	return report, nil
}

func (w *workflow) summarize(ctx context.Context, args DiffArgs) (m.DiffSummary, error) {
	summary := m.DiffSummary{Lesser: args.Lesser, Greater: args.Greater}

	lesser, err := w.specs.Fetch(ctx, args.Lesser)
	if err != nil {
		return summary, fmt.Errorf("fetch api spec %s: %w", args.Lesser, err)
	}

	greater, err := w.specs.Fetch(ctx, args.Greater)
	if err != nil {
		return summary, fmt.Errorf("fetch api spec %s: %w", args.Greater, err)
	}

	diff, err := w.differ.Diff(lesser, greater)
	if err != nil {
		return summary, fmt.Errorf("diff api specs %s..%s: %w", args.Lesser, args.Greater, err)
	}

	summary.PathsAdded = ExtractPaths(diff, m.ChangeAdded)
	summary.PathsRemoved = ExtractPaths(diff, m.ChangeRemoved)
	summary.Added = Classify(summary.PathsAdded)
	summary.Removed = Classify(summary.PathsRemoved)

	return summary, nil
}
