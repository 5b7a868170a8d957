package cmd

import (
	"github.com/spf13/cobra"

	"apicheck.dev/pkg/apicheck/internal/domain"
	m "apicheck.dev/pkg/apicheck/internal/model"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	var versions versionFlags

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the API paths and groups that changed between two releases",
		Long: `Download the OpenAPI specification of both releases and list the API paths,
named groups and core groups that were added or removed.`,
		Example: "  apicheck diff -l 1.15 -g 1.16\n  apicheck diff -l 1.21 -g 1.22 --format yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			_, err = wf.Diff(cmd.Context(), versions.args())

			return err
		},
	}

	versions.register(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

// versionFlags holds the two release flags shared by diff and check.
type versionFlags struct {
	lesser  string
	greater string
}

func (v *versionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&v.lesser, lesserVersionFlagName, "l", "", "the older Kubernetes release, e.g. 1.21")
	cmd.Flags().StringVarP(&v.greater, greaterVersionFlagName, "g", "", "the newer Kubernetes release, e.g. 1.22")
	cobra.CheckErr(cmd.MarkFlagRequired(lesserVersionFlagName))
	cobra.CheckErr(cmd.MarkFlagRequired(greaterVersionFlagName))
}

func (v *versionFlags) args() domain.DiffArgs {
	return domain.DiffArgs{
		Lesser:  m.Version(v.lesser),
		Greater: m.Version(v.greater),
	}
}
