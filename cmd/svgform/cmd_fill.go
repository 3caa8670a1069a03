package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/printplog/svgform/pkg/engine"
	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/render"
	"github.com/printplog/svgform/pkg/renderers/preview"
)

func newFillCmd() *cobra.Command {
	var (
		valuesPath   string
		interactive  bool
		rendererName string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "fill <template.svg>",
		Short: "Render a template with submitted values",
		Long: `Fill a template's fields and emit the rendered document.

Values come from a YAML file mapping field ids to values, from interactive
prompts, or both; prompts pre-fill with the file's values. The svg renderer
emits the filled document, the preview renderer an HTML review page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, args[0], valuesPath, interactive, rendererName, output)
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file mapping field ids to values")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for each editable field")
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "svg", "output renderer (svg, preview)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func runFill(cmd *cobra.Command, path, valuesPath string, interactive bool, rendererName, output string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	eng := engine.New()
	previewRenderer, err := preview.New()
	if err != nil {
		return err
	}
	eng.Registry().MustRegister(previewRenderer)

	tpl, err := eng.Ingest(cmd.Context(), raw)
	if err != nil {
		return err
	}

	values, err := loadValues(valuesPath)
	if err != nil {
		return err
	}
	if interactive {
		if err := promptValues(tpl.Fields, values); err != nil {
			return err
		}
	}

	updates := make([]render.Update, 0, len(values))
	for id, value := range values {
		updates = append(updates, render.Update{ID: id, Value: value})
	}

	out, _, err := eng.Render(cmd.Context(), engine.RenderRequest{
		Raw:      raw,
		Fields:   tpl.Fields,
		Updates:  updates,
		Renderer: rendererName,
	})
	if err != nil {
		return err
	}
	return writeOutput(output, out)
}

func loadValues(path string) (map[string]any, error) {
	values := map[string]any{}
	if path == "" {
		return values, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}

// promptValues asks for each editable field, seeding prompts with the value
// already on file. Computed fields are derived at render time and skipped.
func promptValues(list []fields.Field, values map[string]any) error {
	for _, field := range list {
		if !field.Editable || field.DependsOn != "" {
			continue
		}

		switch {
		case len(field.Options) > 0:
			labels := make([]string, 0, len(field.Options))
			byLabel := make(map[string]string, len(field.Options))
			for _, option := range field.Options {
				labels = append(labels, option.Label)
				byLabel[option.Label] = option.Value
			}
			var picked string
			prompt := &survey.Select{Message: field.Name + ":", Options: labels}
			if err := survey.AskOne(prompt, &picked); err != nil {
				return err
			}
			values[field.ID] = byLabel[picked]

		case field.Type == fields.FieldTypeCheckbox || field.Type == fields.FieldTypeHiddenToggle:
			var checked bool
			prompt := &survey.Confirm{
				Message: field.Name + "?",
				Default: fields.ValueString(values[field.ID]) == "true",
			}
			if err := survey.AskOne(prompt, &checked); err != nil {
				return err
			}
			values[field.ID] = checked

		default:
			var answer string
			prompt := &survey.Input{
				Message: field.Name + ":",
				Default: fields.ValueString(values[field.ID]),
				Help:    field.HelperText,
			}
			if err := survey.AskOne(prompt, &answer); err != nil {
				return err
			}
			values[field.ID] = answer
		}
	}
	return nil
}
