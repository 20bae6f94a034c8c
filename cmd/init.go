package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd"
	cmdopts "github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/options"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/config"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/flags"
)

// InitCmd should be used to represent the 'init' command.
type InitCmd struct {
	*cmd.BaseCmd
	cfgInitializer config.Initializer
}

// NewInitCmd creates a newly configured (Cobra) command.
func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		cfgInitializer: opts.ConfigInitializer,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Creates a skeleton .mbregistry.toml config file.",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	return cobraCommand, nil
}

// run is configured (via NewInitCmd) to be called by the Cobra framework when the command is executed.
func (c *InitCmd) run(cobraCmd *cobra.Command, _ []string) error {
	path := flags.ConfigFile

	if err := c.cfgInitializer.Init(path); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Created config file: %s\n", path)
	return nil
}
