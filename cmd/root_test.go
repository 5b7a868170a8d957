package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainmocks "apicheck.dev/pkg/apicheck/internal/domain/mocks"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "apicheck", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{debugFlagName, logFileFlagName, formatFlagName, interactiveFlagName, specURLFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	assert.Equal(t, "d", cmd.PersistentFlags().Lookup(debugFlagName).Shorthand)
	assert.Equal(t, "table", cmd.PersistentFlags().Lookup(formatFlagName).DefValue)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "OpenAPI specifications")
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"check", "diff", "init", "version"})
}

func TestResolveWorkflow(t *testing.T) {
	originalWorkflow := workflow
	t.Cleanup(func() { workflow = originalWorkflow })

	t.Run("reuses the existing workflow", func(t *testing.T) {
		mockWorkflow := domainmocks.NewMockWorkflow(t)
		workflow = mockWorkflow

		got, err := resolveWorkflow(newRootCmd())
		require.NoError(t, err)
		assert.Same(t, mockWorkflow, got)
	})

	t.Run("builds from configuration", func(t *testing.T) {
		workflow = nil

		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		require.NoError(t, cmd.ParseFlags([]string{"--format", "json", "--spec-url", "/tmp/{version}.json"}))

		got, err := resolveWorkflow(cmd)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Same(t, got, workflow)
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		workflow = nil

		cmd := newRootCmd()
		require.NoError(t, cmd.ParseFlags([]string{"--format", "xml"}))

		_, err := resolveWorkflow(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "xml")
		assert.Nil(t, workflow)
	})
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Println("success")
				return nil
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS=1")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "success")
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use:           "test",
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return errors.New("no changes in OpenApi spec detected")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // This should call os.Exit(1)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	var exitErr *exec.ExitError
	if assert.ErrorAs(t, err, &exitErr) {
		assert.Equal(t, 1, exitErr.ExitCode())
	}

	assert.Contains(t, string(output), "apicheck failed")
	assert.Contains(t, string(output), "no changes in OpenApi spec detected")
}
