package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moneylens/moneylens/internal/model"
	"github.com/moneylens/moneylens/internal/overlay"
	"github.com/moneylens/moneylens/internal/store"
)

func newOverrideCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Correct the category or merchant of imported transactions",
	}

	cmd.AddCommand(newOverrideSetCommand(a))
	cmd.AddCommand(newOverrideListCommand(a))
	cmd.AddCommand(newOverrideClearCommand(a))

	return cmd
}

func newOverrideSetCommand(a *app) *cobra.Command {
	var category, merchant string

	cmd := &cobra.Command{
		Use:   "set <transaction-id>",
		Short: "Set the category and/or merchant of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := overlay.Override{TxnID: args[0], Category: model.Category(category), Merchant: merchant}
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				if err := s.SetOverride(cmd.Context(), o); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Override saved for %s\n", o.TxnID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category label (see `moneylens categories`)")
	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name")

	return cmd
}

func newOverrideListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				overrides, err := s.Overrides(cmd.Context())
				if err != nil {
					return err
				}
				writeOverrides(cmd.OutOrStdout(), overrides)
				return nil
			})
		},
	}
}

func newOverrideClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <transaction-id>",
		Short: "Remove the override of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				if err := s.ClearOverride(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Override cleared for %s\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) withStore(ctx context.Context, fn func(*store.Store) error) error {
	s, err := store.Open(ctx, a.cfg.DBPath(a.dir), a.log)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func writeOverrides(w io.Writer, overrides []overlay.Override) {
	if len(overrides) == 0 {
		fmt.Fprintln(w, "No overrides.")
		return
	}
	for _, o := range overrides {
		category, merchant := string(o.Category), o.Merchant
		if category == "" {
			category = "-"
		}
		if merchant == "" {
			merchant = "-"
		}
		fmt.Fprintf(w, "%s  %-22s %s\n", o.TxnID, category, merchant)
	}
}
