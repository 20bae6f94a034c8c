package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd"
	cmdopts "github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/options"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/output"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/printer"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/source"
)

// DiffCmd should be used to represent the 'diff' command.
type DiffCmd struct {
	*cmd.BaseCmd
	Format cmd.OutputFormat
}

// NewDiffCmd creates a newly configured (Cobra) command.
func NewDiffCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	if _, err := cmdopts.NewOptions(opt...); err != nil {
		return nil, err
	}

	c := &DiffCmd{
		BaseCmd: baseCmd,
		Format:  cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Shows the entries added, removed, and modified between two registry snapshots.",
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}

	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed()),
	)

	return cobraCommand, nil
}

// run is configured (via NewDiffCmd) to be called by the Cobra framework when the command is executed.
func (c *DiffCmd) run(cobraCmd *cobra.Command, args []string) error {
	oldPath := strings.TrimSpace(args[0])
	newPath := strings.TrimSpace(args[1])
	if oldPath == "" || newPath == "" {
		return fmt.Errorf("old and new file paths are required and cannot be empty")
	}

	ctx := cobraCmd.Context()

	oldData, err := (source.File{Path: oldPath}).Fetch(ctx)
	if err != nil {
		return err
	}
	newData, err := (source.File{Path: newPath}).Fetch(ctx)
	if err != nil {
		return err
	}

	oldReg, err := registry.Parse(oldData)
	if err != nil {
		return err
	}
	newReg, err := registry.Parse(newData)
	if err != nil {
		return err
	}

	cs := registry.Diff(oldReg, newReg)
	w := cobraCmd.OutOrStdout()

	switch c.Format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[registry.ChangeSet](w, 2).HandleResult(cs)
	case cmd.FormatYAML:
		return output.NewYAMLHandler[registry.ChangeSet](w, 2).HandleResult(cs)
	default:
		return output.NewTextHandler[registry.ChangeSet](w, &printer.ChangeSetPrinter{}).HandleResult(cs)
	}
}
