package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moneylens/moneylens/internal/classify"
	"github.com/moneylens/moneylens/internal/model"
)

func newCategoriesCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List category labels in matching order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, r := range classify.Rules() {
				if verbose {
					fmt.Fprintf(out, "%-22s %s\n", r.Category, strings.Join(r.Keywords, ", "))
				} else {
					fmt.Fprintln(out, r.Category)
				}
			}
			if verbose {
				fmt.Fprintf(out, "%-22s %s\n", model.CategoryOther, "(no keyword matched)")
			} else {
				fmt.Fprintln(out, model.CategoryOther)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the keywords of each category")

	return cmd
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <description>",
		Short: "Show the category and merchant derived from a transaction description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "category: %s\n", classify.Category(desc))
			if kw := classify.MatchedKeyword(desc); kw != "" {
				fmt.Fprintf(out, "keyword:  %s\n", kw)
			}
			fmt.Fprintf(out, "merchant: %s\n", classify.Merchant(desc))
			return nil
		},
	}
}
