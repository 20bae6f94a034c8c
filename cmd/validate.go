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

// ValidateCmd should be used to represent the 'validate' command.
type ValidateCmd struct {
	*cmd.BaseCmd
	Format cmd.OutputFormat
}

// NewValidateCmd creates a newly configured (Cobra) command.
func NewValidateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	if _, err := cmdopts.NewOptions(opt...); err != nil {
		return nil, err
	}

	c := &ValidateCmd{
		BaseCmd: baseCmd,
		Format:  cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validates a candidate repositories.json document.",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
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
func (c *ValidateCmd) longDescription() string {
	return `Validates a candidate repositories.json document against the full merge-gate
rule set: JSON syntax, record shape, 'owner/repo' name format, URL consistency
and case-insensitive name uniqueness. Use '-' to read the document from stdin.

Every problem is reported in one pass. The command exits non-zero when any
error-level violation is found; warnings alone never fail the run.`
}

// run is configured (via NewValidateCmd) to be called by the Cobra framework when the command is executed.
func (c *ValidateCmd) run(cobraCmd *cobra.Command, args []string) error {
	path := strings.TrimSpace(args[0])
	if path == "" {
		return fmt.Errorf("candidate file path is required and cannot be empty")
	}

	data, err := (source.File{Path: path}).Fetch(cobraCmd.Context())
	if err != nil {
		return err
	}

	report := registry.Validate(data)

	c.Logger().Debug(
		"Validated candidate registry",
		"path", path,
		"violations", len(report.Violations),
		"acceptable", report.IsAcceptable(),
	)

	if err := renderReport(cobraCmd, c.Format, report); err != nil {
		return err
	}

	if !report.IsAcceptable() {
		return fmt.Errorf("registry document rejected: %d error(s)", len(report.Errors()))
	}

	return nil
}

// renderReport writes a validation report in the requested format.
// Shared by the validate and gate commands.
func renderReport(cobraCmd *cobra.Command, format cmd.OutputFormat, report registry.Report) error {
	w := cobraCmd.OutOrStdout()

	switch format {
	case cmd.FormatJSON:
		return output.NewJSONHandler[registry.Report](w, 2).HandleResult(report)
	case cmd.FormatYAML:
		return output.NewYAMLHandler[registry.Report](w, 2).HandleResult(report)
	default:
		handler := output.NewTextHandler[registry.Violation](w, &printer.ViolationPrinter{})
		if err := handler.HandleResults(report.Violations...); err != nil {
			return err
		}

		if report.IsAcceptable() {
			_, _ = fmt.Fprintln(w, "OK: registry document is acceptable")
		}
		return nil
	}
}

func allowed() string {
	formats := cmd.AllowedOutputFormats()
	return formats.String()
}
