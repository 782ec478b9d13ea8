package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/manifest"
	"github.com/rybkr/checkpointstore/internal/restore"
)

var restoreForce bool

func init() {
	RestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "restore even if the working copy has uncommitted changes")
}

// RestoreCmd rewinds the working content to a prior version, per spec §4.3.
var RestoreCmd = &cobra.Command{
	Use:   "restore <version-id>",
	Short: "Restore the working content to a prior checkpoint",
	Args:  cobra.ExactArgs(1),
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

		out, err := restore.Run(ctx, restore.Deps{
			Storage: e.Storage,
			Differ:  e.Differ,
			Cipher:  e.Cipher,
			Logger:  e.Logger,
		}, m, restore.Input{
			TargetVersionID: args[0],
			Force:           restoreForce,
			EncryptionKey:   key,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := manifest.Save(ctx, e.Storage, m); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Printf("Restored %s: %d files restored, %d patch chains applied\n", out.RestoredVersionID, out.FilesRestored, out.PatchesApplied)
	},
}
