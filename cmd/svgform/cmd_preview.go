package main

import (
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		valuesPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "preview <template.svg>",
		Short: "Render an HTML review page for a template",
		Long: `Render the HTML form preview: the filled document inline with one
form control per field. Shorthand for fill --renderer preview.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, args[0], valuesPath, false, "preview", output)
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file mapping field ids to values")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
