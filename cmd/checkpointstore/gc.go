package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/gc"
	"github.com/rybkr/checkpointstore/internal/manifest"
)

// GCCmd sweeps blobs unreachable from any recorded version, per spec §4.5.
var GCCmd = &cobra.Command{
	Use:   "gc",
	Short: "Garbage-collect unreachable blobs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		e, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		m, err := manifest.Load(ctx, e.Storage)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := gc.Run(ctx, gc.Deps{Storage: e.Storage, Logger: e.Logger}, m)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("Checked %d blobs, deleted %d, freed %d bytes\n", out.BlobsChecked, out.BlobsDeleted, out.BytesFreed)
	},
}
