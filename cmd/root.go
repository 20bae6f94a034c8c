package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() error {
	logger, err := configureLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing root command: %s", err)
		os.Exit(1)
	}

	rootCmd, err := NewRootCmd(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing root command: %s", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}

	return nil
}

func NewRootCmd(logger hclog.Logger) (*cobra.Command, error) {
	c := &RootCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	rootCmd := &cobra.Command{
		Use:          "mbregistry <command> [args]",
		Short:        "'mbregistry' validates and gates changes to the MBII community repositories.json registry.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	base := c.BaseCmd
	for _, create := range []func() (*cobra.Command, error){
		func() (*cobra.Command, error) { return NewInitCmd(base) },
		func() (*cobra.Command, error) { return NewValidateCmd(base) },
		func() (*cobra.Command, error) { return NewGateCmd(base) },
		func() (*cobra.Command, error) { return NewDiffCmd(base) },
		func() (*cobra.Command, error) { return NewListCmd(base) },
		func() (*cobra.Command, error) { return NewCheckCmd(base) },
	} {
		sub, err := create()
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(sub)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'mbregistry' CLI is the merge gate for the MBII community mod registry.
It validates proposed versions of repositories.json, diffs them against the
accepted registry, and checks that listed repositories are still live on GitHub.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If MBREGISTRY_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mbregistry",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
