package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newInfoCmd prints per-category gram and n-gram aggregate stats.
func newInfoCmd() *cobra.Command {
	var categoryFlag string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "show lexicon database info",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}
			ctx := context.Background()

			categories := splitCategories(categoryFlag)
			if categories == nil {
				categories, err = svc.CategoryList(ctx)
				if err != nil {
					return err
				}
			}

			for _, category := range categories {
				stats, ok, err := svc.GetStats(ctx, category)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Printf("No such category %s\n", category)
					continue
				}
				fmt.Printf("Category: %s\n", category)
				fmt.Printf("Ngram: %d\n", stats.Gram)
				for n := 1; n <= stats.Gram; n++ {
					fmt.Printf("%d-gram-sum: %d\n", n, stats.Sum[n])
					fmt.Printf("%d-gram-variety: %d\n", n, stats.Variety[n])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "", "comma-separated category names, default all")
	return cmd
}
