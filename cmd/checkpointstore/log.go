package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/manifest"
)

// LogCmd prints the version history reachable from HEAD, oldest parent
// links last, matching the teacher's own "log" subcommand's chronological
// listing style.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the checkpoint history",
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

		head := m.Head()
		if head == "" {
			fmt.Println("No checkpoints yet.")
			return
		}

		for cur := head; cur != ""; {
			v, ok := m.FindVersion(cur)
			if !ok {
				break
			}
			marker := "  "
			if v.ID == head {
				marker = "* "
			}
			fmt.Printf("%s%s  %s  %s  %s\n", marker, v.ID, v.Timestamp, v.Author, v.Message)
			if v.ParentID == nil {
				break
			}
			cur = *v.ParentID
		}
	},
}
