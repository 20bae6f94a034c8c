package cmd

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cache"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd"
	cmdopts "github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/options"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/config"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/flags"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/printer"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/source"
)

// ListCmd should be used to represent the 'list' command.
type ListCmd struct {
	*cmd.BaseCmd
	Format    cmd.OutputFormat
	Refresh   bool
	cfgLoader config.Loader
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:   baseCmd,
		Format:    cmd.FormatText,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "list [file]",
		Short: "Lists registry entries from a local file or the configured registry URL.",
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
		&c.Refresh,
		"refresh",
		false,
		"Force a refresh of the cached registry manifest",
	)

	return cobraCommand, nil
}

// longDescription returns the long version of the command description.
func (c *ListCmd) longDescription() string {
	return `Lists the entries of a repositories.json registry.

With a file argument the document is read locally ('-' for stdin). Without
one, the registry is fetched from the configured registry URL through the
local manifest cache; when the registry host is unreachable a stale cached
copy is used instead.`
}

// run is configured (via NewListCmd) to be called by the Cobra framework when the command is executed.
func (c *ListCmd) run(cobraCmd *cobra.Command, args []string) error {
	fetcher, err := c.fetcher(args)
	if err != nil {
		return err
	}

	data, err := fetcher.Fetch(cobraCmd.Context())
	if err != nil {
		return err
	}

	reg, err := registry.Parse(data)
	if err != nil {
		return err
	}

	w := cobraCmd.OutOrStdout()

	switch c.Format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[registry.Entry](w, 2).HandleResults(reg...)
	case cmd.FormatYAML:
		return output.NewYAMLHandler[registry.Entry](w, 2).HandleResults(reg...)
	default:
		return output.NewTextHandler[registry.Entry](w, &printer.EntryPrinter{}).HandleResults(reg...)
	}
}

// fetcher selects the registry source: a local file when one was supplied,
// the configured remote registry otherwise.
func (c *ListCmd) fetcher(args []string) (source.Fetcher, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return source.File{Path: strings.TrimSpace(args[0])}, nil
	}

	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	manifests, err := newManifestCache(c.Logger(), cfg)
	if err != nil {
		return nil, err
	}

	return source.NewRemote(c.Logger(), cfg.RegistryURL, manifests, c.Refresh)
}

// newManifestCache builds the registry manifest cache from config settings.
// Shared by the list and check commands.
func newManifestCache(logger hclog.Logger, cfg *config.Config) (*cache.Cache, error) {
	ttl, err := cfg.Cache.ParseTTL()
	if err != nil {
		return nil, err
	}

	opts := []cache.Option{
		cache.WithTTL(ttl),
		cache.WithEnabled(!cfg.Cache.Disabled),
	}
	if dir := strings.TrimSpace(cfg.Cache.Dir); dir != "" {
		opts = append(opts, cache.WithDir(dir))
	}

	return cache.New(logger, opts...)
}
