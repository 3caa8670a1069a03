package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("svgform")

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "svgform",
		Short: "Turn identifier-annotated SVG documents into fillable form templates",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFillCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeOutput writes to the given path, or stdout when the path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Infof("wrote %s", path)
	return nil
}
