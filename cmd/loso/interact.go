package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newInteractCmd runs a REPL: read a line of text, print its
// space-joined split terms, repeat.
func newInteractCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "interact",
		Short: "provide interact interface for testing splitting terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}
			categories := splitCategories(category)
			ctx := context.Background()
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("Text:")
				if !scanner.Scan() {
					return scanner.Err()
				}
				text := strings.TrimSpace(scanner.Text())
				terms, err := svc.SplitTerms(ctx, text, categories)
				if err != nil {
					return err
				}
				fmt.Println(strings.Join(terms, " "))
			}
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name, split by comma")
	return cmd
}
