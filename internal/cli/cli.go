package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/citypulse/eventbrite-etl/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDB      string
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventbrite-etl",
		Short: "Scrape Eventbrite events into a local store",
		Long: `Fetches event listings from Eventbrite for a location, deduplicates them
against previously stored events, and keeps the results in a local SQLite
database.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagDB, "db", "data/events.db", "Path to the SQLite event database (env: ETL_DB)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	v := viper.New()
	v.SetEnvPrefix("ETL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlag("db", cmd.PersistentFlags().Lookup("db"))

	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		flagDB = v.GetString("db")
	}

	cmd.AddCommand(newRunCmd(), newListCmd(), newClearCmd(), newDedupCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDB)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", flagDB, err)
	}
	return store, nil
}
