package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored events",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()

			count, err := store.CountEvents(cmd.Context())
			if err != nil {
				return fmt.Errorf("counting events: %w", err)
			}
			if count == 0 {
				fmt.Fprintln(out, "Store is already empty.")
				return nil
			}

			if !force {
				fmt.Fprintf(out, "This permanently deletes all %d stored events.\n", count)
				fmt.Fprint(out, "Continue? (yes/no): ")

				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading confirmation: %w", err)
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "yes" && answer != "y" {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			deleted, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clearing events: %w", err)
			}

			fmt.Fprintf(out, "Deleted %d event(s)\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
