package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/printplog/svgform/pkg/engine"
)

func newParseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <template.svg>",
		Short: "Extract the field list from a template",
		Long: `Parse an SVG template and print its field list as JSON.

Element identifiers carry the field metadata: type tokens, max_ limits,
depends_ expressions, select_ options, tracking flags. Elements whose
identifiers the grammar rejects are skipped; policy violations are logged
as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func runParse(cmd *cobra.Command, path, output string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	tpl, err := engine.New().Ingest(cmd.Context(), raw)
	if err != nil {
		return err
	}
	for _, warning := range tpl.Warnings {
		log.Warningf("%s: %s (%s)", warning.Code, warning.Detail, warning.ElementID)
	}

	payload, err := json.MarshalIndent(tpl.Fields, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	return writeOutput(output, append(payload, '\n'))
}
