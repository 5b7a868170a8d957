// Package cmd provides the root command and CLI setup for apicheck.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"apicheck.dev/pkg/apicheck/internal/adapter"
	"apicheck.dev/pkg/apicheck/internal/controller"
	"apicheck.dev/pkg/apicheck/internal/domain"
)

// workflow is built on first use from the parsed flags. Tests replace it with a mock.
var workflow domain.Workflow

var (
	debugFlag       bool
	logFileFlag     string
	formatFlag      string
	interactiveFlag bool
	specURLFlag     string
)

const rootLongDescription = `apicheck compares the OpenAPI specifications of two Kubernetes releases
and reports which API groups and resource types were added or removed.

The check command additionally scans a directory of manifests (plain YAML
or Helm templates) for apiVersion values that the newer release no longer
serves, so upgrades can be validated in CI before they break.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "apicheck",
		Short:         "Kubernetes API deprecation checker",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(cmd.ErrOrStderr(), viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&debugFlag, debugFlagName, "d", false, "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(debugFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "also write logs to this rotating file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().StringVar(&formatFlag, formatFlagName, defaultOutputFormat, "output format: table, json or yaml")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), outputFormatKey)

	cmd.PersistentFlags().BoolVar(&interactiveFlag, interactiveFlagName, false, "page long tables in an interactive terminal view")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(interactiveFlagName), outputInteractiveKey)

	cmd.PersistentFlags().StringVar(
		&specURLFlag, specURLFlagName,
		adapter.DefaultSpecURLTemplate,
		"spec location template, "+adapter.VersionPlaceholder+" is replaced by the release (http(s) URL or file path)",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(specURLFlagName), specURLTemplateKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// resolveWorkflow returns the shared workflow, building it from the current
// configuration on first use.
func resolveWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	format, ok := controller.ParseFormat(viper.GetString(outputFormatKey))
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q", viper.GetString(outputFormatKey))
	}

	specs := adapter.NewSpecSourceAdapter(viper.GetString(specURLTemplateKey), specTimeout())
	scanner := domain.NewManifestScanner(adapter.NewLocalManifestFSAdapter())
	ui := controller.NewUI(cmd, format, viper.GetBool(outputInteractiveKey))

	workflow = domain.NewWorkflow(specs, domain.NewDefaultSpecDiffer(), scanner, ui)

	return workflow, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		slog.Error("apicheck failed", "error", err)
		os.Exit(1)
	}
}
