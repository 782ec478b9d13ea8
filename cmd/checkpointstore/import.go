package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/archive"
)

// ImportCmd restores a store from a zip archive produced by ExportCmd,
// rejecting archives missing a manifest or containing a zip-slip entry.
var ImportCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Import a store from a zip archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := archive.Import(ctx, e.Storage, data, e.Logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("Imported project %q: %d files (%d bytes)\n", out.ProjectName, out.FilesImported, out.TotalSize)
	},
}
