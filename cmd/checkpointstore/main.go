// Command checkpointstore is the CLI front end for the checkpoint engine:
// init, checkpoint, restore, log, gc, export and import, each a thin cobra
// subcommand wiring the configured adapters into the corresponding
// internal/* use case.
package main

import "os"

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
