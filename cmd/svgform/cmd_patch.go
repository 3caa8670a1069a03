package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/printplog/svgform/pkg/engine"
	"github.com/printplog/svgform/pkg/patch"
)

func newPatchCmd() *cobra.Command {
	var (
		mergePath string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "patch <template.svg> <patches.json>",
		Short: "Apply editor patches to a template",
		Long: `Apply a batch of attribute patches to a template document.

Each patch targets an element by id, name, or data-name and sets one
attribute. The innerText pseudo-attribute replaces element text, the reorder
pseudo-attribute moves elements, and an empty value deletes the attribute.
With --merge the batch is first folded into an existing one, last write per
target and attribute winning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, args[0], args[1], mergePath, output)
		},
	}
	cmd.Flags().StringVar(&mergePath, "merge", "", "existing patch batch to merge into")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func runPatch(cmd *cobra.Command, templatePath, patchPath, mergePath, output string) error {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	patches, err := loadPatches(patchPath)
	if err != nil {
		return err
	}

	eng := engine.New()
	if mergePath != "" {
		existing, err := loadPatches(mergePath)
		if err != nil {
			return err
		}
		patches = eng.MergePatches(existing, patches)
	}

	out, report, err := eng.ApplyPatches(cmd.Context(), raw, patches)
	if err != nil {
		return err
	}

	log.Infof("applied %d, skipped %d, missing %d", report.Applied, report.Skipped, len(report.Missing))
	for _, target := range report.Missing {
		log.Warningf("no element matches %q", target)
	}
	for _, note := range report.Notes {
		log.Noticef("%s", note)
	}
	return writeOutput(output, out)
}

func loadPatches(path string) ([]patch.Patch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patches: %w", err)
	}
	var out []patch.Patch
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse patches: %w", err)
	}
	return out, nil
}
