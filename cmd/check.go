package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd"
	cmdopts "github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/options"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/config"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/flags"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/github"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/printer"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/source"
)

// CheckCmd should be used to represent the 'check' command.
type CheckCmd struct {
	*cmd.BaseCmd
	Format    cmd.OutputFormat
	Latest    bool
	cfgLoader config.Loader
}

// NewCheckCmd creates a newly configured (Cobra) command.
func NewCheckCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CheckCmd{
		BaseCmd:   baseCmd,
		Format:    cmd.FormatText,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "check [file]",
		Short: "Checks that every registry entry points at a live GitHub repository.",
		Long:  c.longDescription(),
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed()),
	)

	cobraCommand.Flags().BoolVar(
		&c.Latest,
		"latest",
		false,
		"Also resolve the latest release tag for each live repository",
	)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *CheckCmd) longDescription() string {
	return `Confirms via the GitHub API that every entry in the registry points at a
repository that still exists. This is deliberately separate from 'validate':
validation is a pure, offline computation, while this check performs bounded,
cancellable network calls.

With a file argument the registry is read locally ('-' for stdin); without
one it is loaded from the configured registry URL.`
}

// run is configured (via NewCheckCmd) to be called by the Cobra framework when the command is executed.
func (c *CheckCmd) run(cobraCmd *cobra.Command, args []string) error {
	ctx := cobraCmd.Context()

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	var fetcher source.Fetcher
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		fetcher = source.File{Path: strings.TrimSpace(args[0])}
	} else {
		manifests, err := newManifestCache(c.Logger(), cfg)
		if err != nil {
			return err
		}
		fetcher, err = source.NewRemote(c.Logger(), cfg.RegistryURL, manifests, false)
		if err != nil {
			return err
		}
	}

	data, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	reg, err := registry.Parse(data)
	if err != nil {
		return err
	}

	client, err := github.NewClient(c.Logger(), cfg.GitHubAPIURL)
	if err != nil {
		return err
	}

	results := github.NewChecker(c.Logger(), client, c.Latest).Check(ctx, reg)

	if err := c.render(cobraCmd, results); err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed the liveness check", failed, len(results))
	}

	return nil
}

func (c *CheckCmd) render(cobraCmd *cobra.Command, results []github.CheckResult) error {
	w := cobraCmd.OutOrStdout()

	switch c.Format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[github.CheckResult](w, 2).HandleResults(results...)
	case cmd.FormatYAML:
		return output.NewYAMLHandler[github.CheckResult](w, 2).HandleResults(results...)
	default:
		return output.NewTextHandler[github.CheckResult](w, &printer.CheckResultPrinter{}).HandleResults(results...)
	}
}
