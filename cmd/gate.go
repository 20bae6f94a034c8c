package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd"
	cmdopts "github.com/MBII-Galactic-Conquest/mbregistry/internal/cmd/options"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/registry"
	"github.com/MBII-Galactic-Conquest/mbregistry/internal/source"
)

// GateCmd should be used to represent the 'gate' command.
type GateCmd struct {
	*cmd.BaseCmd
	Format cmd.OutputFormat
}

// NewGateCmd creates a newly configured (Cobra) command.
func NewGateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	if _, err := cmdopts.NewOptions(opt...); err != nil {
		return nil, err
	}

	c := &GateCmd{
		BaseCmd: baseCmd,
		Format:  cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "gate <accepted-file> <candidate-file>",
		Short: "Runs the merge gate: validates a candidate registry and flags non-additive changes.",
		Long:  c.longDescription(),
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

// longDescription returns the long version of the command description.
func (c *GateCmd) longDescription() string {
	return `Runs the full merge gate over a proposed change to repositories.json.

The candidate document is validated exactly as with 'validate'. On top of
that, the candidate is diffed against the accepted registry: community
contributions are expected to be additive, so modified or removed entries are
reported as warnings for the reviewer. Warnings never fail the gate; only
error-level violations in the candidate do.`
}

// run is configured (via NewGateCmd) to be called by the Cobra framework when the command is executed.
func (c *GateCmd) run(cobraCmd *cobra.Command, args []string) error {
	acceptedPath := strings.TrimSpace(args[0])
	candidatePath := strings.TrimSpace(args[1])
	if acceptedPath == "" || candidatePath == "" {
		return fmt.Errorf("accepted and candidate file paths are required and cannot be empty")
	}

	ctx := cobraCmd.Context()

	candidate, err := (source.File{Path: candidatePath}).Fetch(ctx)
	if err != nil {
		return err
	}

	report := registry.Validate(candidate)

	// Diffing needs both documents parsed; a candidate that doesn't decode
	// has already been reported by Validate, so skip the diff silently.
	if newReg, parseErr := registry.Parse(candidate); parseErr == nil {
		accepted, err := (source.File{Path: acceptedPath}).Fetch(ctx)
		if err != nil {
			return err
		}

		oldReg, err := registry.Parse(accepted)
		if err != nil {
			return fmt.Errorf("accepted registry is not loadable: %w", err)
		}

		cs := registry.Diff(oldReg, newReg)
		report.Violations = append(report.Violations, cs.Warnings()...)

		c.Logger().Debug(
			"Gated candidate registry",
			"added", len(cs.Added),
			"modified", len(cs.Modified),
			"removed", len(cs.Removed),
		)
	}

	if err := renderReport(cobraCmd, c.Format, report); err != nil {
		return err
	}

	if !report.IsAcceptable() {
		return fmt.Errorf("registry document rejected: %d error(s)", len(report.Errors()))
	}

	return nil
}
