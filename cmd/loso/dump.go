package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aosen/loso/errs"
)

// newDumpCmd dumps a category's lexicon database out as text.
func newDumpCmd() *cobra.Command {
	var file, enc, category string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "dump lexicon database as a text file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("must set text file path to dump")
			}
			if category == "" {
				return fmt.Errorf("must set category to dump")
			}
			svc, err := buildService()
			if err != nil {
				return err
			}
			raw, ok, err := svc.Dump(context.Background(), category)
			if err != nil {
				return err
			}
			if !ok {
				return &errs.NotFound{Category: category}
			}
			if err := writeText(file, enc, string(raw)); err != nil {
				return err
			}
			fmt.Println("Done.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "/path/to/text")
	cmd.Flags().StringVarP(&enc, "encoding", "e", "utf8", "encoding of text file")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	return cmd
}
