package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newResetCmd wipes every category out of the lexicon database.
func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "reset lexicon database",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}
			if err := svc.Reset(context.Background()); err != nil {
				return err
			}
			fmt.Println("Done.")
			return nil
		},
	}
}
