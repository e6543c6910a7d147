package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/citypulse/eventbrite-etl/internal/etl"
	"github.com/citypulse/eventbrite-etl/internal/scraper"
	"github.com/citypulse/eventbrite-etl/internal/storage"
)

// storeAdapter bridges the concrete SQLite store to the pipeline's Store
// interface.
type storeAdapter struct {
	store *storage.Store
}

func (a storeAdapter) Begin(ctx context.Context) (etl.Tx, error) {
	return a.store.Begin(ctx)
}

func newRunCmd() *cobra.Command {
	var (
		location       string
		maxResults     int
		noDescriptions bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch events for a location and store the new ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			pipe := etl.New(
				scraper.New(logger),
				storeAdapter{store: store},
				etl.NewMetrics(prometheus.DefaultRegisterer),
				logger,
			)

			count, err := pipe.Run(cmd.Context(), location, maxResults, !noDescriptions)
			if err != nil {
				return fmt.Errorf("running pipeline: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d new events\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "portugal--lisbon", "Location slug (format country--city)")
	cmd.Flags().IntVar(&maxResults, "max-results", 50, "Maximum number of events to fetch")
	cmd.Flags().BoolVar(&noDescriptions, "no-descriptions", false, "Skip fetching event descriptions (faster)")

	return cmd
}
