package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/printplog/svgform/pkg/engine"
	"github.com/printplog/svgform/pkg/fields"
)

func newSyncCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sync <fields.json> <patches.json>",
		Short: "Reconcile a stored field list with editor patches",
		Long: `Update a stored field list from an editor patch batch without
re-parsing the document. Text patches update stored values; id patches
re-derive field metadata from the new identifier while keeping in-progress
user values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(args[0], args[1], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func runSync(fieldsPath, patchPath, output string) error {
	raw, err := os.ReadFile(fieldsPath)
	if err != nil {
		return fmt.Errorf("read fields: %w", err)
	}
	var list []fields.Field
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("parse fields: %w", err)
	}
	patches, err := loadPatches(patchPath)
	if err != nil {
		return err
	}

	updated, modified := engine.New().SyncFields(list, patches)
	if !modified {
		log.Info("no field changes")
	}

	payload, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	return writeOutput(output, append(payload, '\n'))
}
