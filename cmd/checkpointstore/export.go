package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/archive"
)

var exportOut string

func init() {
	ExportCmd.Flags().StringVarP(&exportOut, "output", "o", "checkpoint.zip", "path to write the archive to")
}

// ExportCmd bundles .store/ and content/ into a single zip archive, per
// spec §4.6.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as a zip archive",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		data, out, err := archive.Export(ctx, e.Storage, e.Logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := os.WriteFile(exportOut, data, 0o644); err != nil { //nolint:gosec // G306: exported archive is not a secret by default
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("Exported %d files (%d bytes) to %s\n", out.FilesExported, out.TotalSize, exportOut)
	},
}
