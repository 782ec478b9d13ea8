package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/checkpoint"
	"github.com/rybkr/checkpointstore/internal/manifest"
)

var checkpointMessage string

func init() {
	CheckpointCmd.Flags().StringVarP(&checkpointMessage, "message", "m", "", "checkpoint message")
}

// CheckpointCmd records a new version from the working content, per spec
// §4.2.
var CheckpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Record a new checkpoint of the current working content",
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

		key, err := resolveKey(ctx, e)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := checkpoint.Run(ctx, checkpoint.Deps{
			Storage: e.Storage,
			Hasher:  e.Hasher,
			Differ:  e.Differ,
			Cipher:  e.Cipher,
			Logger:  e.Logger,
		}, m, checkpoint.Input{
			Message:       checkpointMessage,
			Author:        flagAuthor,
			EncryptionKey: key,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := manifest.Save(ctx, e.Storage, m); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("Checkpoint %s: +%d ~%d -%d\n", out.VersionID, out.FilesAdded, out.FilesChanged, out.FilesDeleted)
	},
}
