package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"apicheck.dev/pkg/apicheck/internal/domain"
	m "apicheck.dev/pkg/apicheck/internal/model"
)

var (
	yamlPathFlag       string
	fileExtensionsFlag []string
	matchFlag          string
	prettyFlag         bool
	includeCoreFlag    bool
	failFlag           bool
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	var versions versionFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Scan manifests for APIs removed in the newer release",
		Long: `Compare two releases like diff does, then scan every manifest below
--yaml-path for apiVersion values the newer release removed.

With --match kind (the default) a finding also names the manifest kinds that
resemble a removed resource type of that group. With --match group only the
apiVersion is reported.

The command exits with status 1 when deprecated APIs are found, unless
--fail=false is given.`,
		Example: "  apicheck check -l 1.15 -g 1.16 -p ./charts\n" +
			"  apicheck check -l 1.21 -g 1.22 -p . -e '*.yaml' --match group --fail=false",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, ok := m.ParseMatchPolicy(viper.GetString(scanMatchKey))
			if !ok {
				return fmt.Errorf("invalid --%s %q: expected %q or %q",
					matchFlagName, viper.GetString(scanMatchKey), m.MatchGroup, m.MatchKind)
			}

			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			_, err = wf.Check(cmd.Context(), domain.CheckArgs{
				DiffArgs:    versions.args(),
				Root:        m.Path(viper.GetString(scanPathKey)),
				Patterns:    viper.GetStringSlice(scanPatternsKey),
				Policy:      policy,
				IncludeCore: viper.GetBool(scanIncludeCoreKey),
				Pretty:      viper.GetBool(outputPrettyKey),
				Fail:        viper.GetBool(scanFailKey),
			})

			return err
		},
	}

	versions.register(cmd)
	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&yamlPathFlag, yamlPathFlagName, "p", "", "directory with manifests or Helm charts to scan (skipped when empty)")
	bindFlagToConfig(cmd.Flags().Lookup(yamlPathFlagName), scanPathKey)

	cmd.Flags().StringArrayVarP(&fileExtensionsFlag, fileExtensionsFlagName, "e", domain.DefaultFilePatterns, "file patterns to scan (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(fileExtensionsFlagName), scanPatternsKey)

	cmd.Flags().StringVar(&matchFlag, matchFlagName, defaultScanMatch, "match policy: group (apiVersion only) or kind (apiVersion and resource kind)")
	bindFlagToConfig(cmd.Flags().Lookup(matchFlagName), scanMatchKey)

	cmd.Flags().BoolVar(&prettyFlag, prettyFlagName, false, "print the removed API groups and their resource types")
	bindFlagToConfig(cmd.Flags().Lookup(prettyFlagName), outputPrettyKey)

	cmd.Flags().BoolVar(&includeCoreFlag, includeCoreFlagName, false, "also match removed core (/api) groups")
	bindFlagToConfig(cmd.Flags().Lookup(includeCoreFlagName), scanIncludeCoreKey)

	cmd.Flags().BoolVar(&failFlag, failFlagName, defaultScanFail, "exit with an error when deprecated APIs are found")
	bindFlagToConfig(cmd.Flags().Lookup(failFlagName), scanFailKey)
}
