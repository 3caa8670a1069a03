package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printplog/svgform/pkg/engine"
	"github.com/printplog/svgform/pkg/export"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		title  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <template.svg>",
		Short: "Export the submission schema as an OpenAPI document",
		Long: `Describe a template's submission payload as an OpenAPI 3 document.

Each field becomes a schema property carrying its type, default, length
limit, and select options, plus extension attributes tracing back to the
source SVG element.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], format, title, output)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().StringVar(&title, "title", "", "document title (defaults to the template file name)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func runExport(cmd *cobra.Command, path, format, title, output string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	tpl, err := engine.New().Ingest(cmd.Context(), raw)
	if err != nil {
		return err
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	doc := export.Document(title, tpl.Fields)

	var payload []byte
	switch format {
	case "json":
		payload, err = export.JSON(doc)
	case "yaml", "yml":
		payload, err = export.YAML(doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	return writeOutput(output, append(payload, '\n'))
}
