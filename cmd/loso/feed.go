package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newFeedCmd loads a whole text file and feeds it into one category.
func newFeedCmd() *cobra.Command {
	var file, enc, category string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "feed text data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("must set text file path to feed")
			}
			if category == "" {
				return fmt.Errorf("must set category to feed")
			}
			text, err := readText(file, enc)
			if err != nil {
				return err
			}
			svc, err := buildService()
			if err != nil {
				return err
			}
			total, err := svc.Feed(context.Background(), category, text)
			if err != nil {
				return err
			}
			fmt.Printf("Fed %d terms into %q.\n", total, category)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "text file to feed")
	cmd.Flags().StringVarP(&enc, "encoding", "e", "utf8", "encoding of text file")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	return cmd
}
