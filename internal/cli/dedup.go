package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDedupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dedup",
		Short: "Remove stored events that duplicate an earlier event's URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.RemoveDuplicates(cmd.Context())
			if err != nil {
				return fmt.Errorf("removing duplicates: %w", err)
			}

			remaining, err := store.CountEvents(cmd.Context())
			if err != nil {
				return fmt.Errorf("counting events: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d duplicate(s), %d event(s) remaining\n", deleted, remaining)
			return nil
		},
	}
}
