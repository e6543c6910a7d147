package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		limit      int
		flagFormat string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored events",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(flagFormat)
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			events, err := store.ListEvents(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			return WriteEvents(cmd.OutOrStdout(), events, format)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of events to print (0 = all)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}
