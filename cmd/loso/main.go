// Command loso is the segmentation service's command-line surface:
// feed training text, inspect lexicon stats, split sentences, dump
// the database, and run the JSON-over-HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "loso",
		Short: "statistical Chinese/English word segmenter",
	}
	root.AddCommand(
		newInteractCmd(),
		newFeedCmd(),
		newResetCmd(),
		newServeCmd(),
		newDumpCmd(),
		newInfoCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
