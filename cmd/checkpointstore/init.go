package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/domain"
	"github.com/rybkr/checkpointstore/internal/manifest"
)

// InitCmd creates a new, empty manifest at the configured store root.
var InitCmd = &cobra.Command{
	Use:   "init <project-name>",
	Short: "Initialize a new checkpoint store",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEngine()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		ctx := cmd.Context()
		if _, err := manifest.Load(ctx, e.Storage); err == nil {
			fmt.Fprintln(os.Stderr, "a manifest already exists at this store root")
			os.Exit(1)
		} else if kind, ok := domain.KindOf(err); !ok || kind != domain.KindNotFound {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		m := domain.New(args[0], time.Now())
		if err := manifest.Save(ctx, e.Storage, m); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		e.Logger.Info("initialized store", "project", args[0], "store", flagStore)
		fmt.Printf("Initialized checkpoint store %q at %s\n", args[0], flagStore)
	},
}
