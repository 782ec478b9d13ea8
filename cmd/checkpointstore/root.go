package main

import (
	"github.com/spf13/cobra"

	"github.com/rybkr/checkpointstore/internal/config"
)

var (
	flagStore      string
	flagAuthor     string
	flagLogLevel   string
	flagLogFormat  string
	flagPassphrase string
)

func init() {
	def := config.Default()

	RootCmd.PersistentFlags().StringVar(&flagStore, "store", def.StoreRoot, "path to the checkpoint store root")
	RootCmd.PersistentFlags().StringVar(&flagAuthor, "author", def.Author, "checkpoint author name")
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", def.LogLevel, "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", def.LogFormat, "log format: text, json")
	RootCmd.PersistentFlags().StringVar(&flagPassphrase, "passphrase", "", "encryption passphrase (omit for an unencrypted store)")

	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(CheckpointCmd)
	RootCmd.AddCommand(RestoreCmd)
	RootCmd.AddCommand(LogCmd)
	RootCmd.AddCommand(GCCmd)
	RootCmd.AddCommand(ExportCmd)
	RootCmd.AddCommand(ImportCmd)
}

// RootCmd is the main command for the checkpointstore binary.
var RootCmd = &cobra.Command{
	Use:   "checkpointstore",
	Short: "A reverse-delta, content-addressed checkpoint store",
	Long:  "checkpointstore tracks versions of a working directory as reverse patches over content-addressed blobs.",
}
