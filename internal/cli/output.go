package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/citypulse/eventbrite-etl/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteEvents writes stored events in the specified format
func WriteEvents(w io.Writer, events []*event.Stored, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, events)
	case FormatText:
		return writeText(w, events)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, events []*event.Stored) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(events)
}

func writeText(w io.Writer, events []*event.Stored) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events stored.")
		return err
	}

	for _, evt := range events {
		fmt.Fprintf(w, "[%d] %s\n", evt.ID, evt.Title)
		if evt.Date != "" || evt.Time != "" {
			fmt.Fprintf(w, "    When:     %s %s\n", evt.Date, evt.Time)
		}
		if evt.Address != "" {
			fmt.Fprintf(w, "    Venue:    %s\n", evt.Address)
		}
		if evt.Category != "" {
			fmt.Fprintf(w, "    Category: %s\n", evt.Category)
		}
		if evt.URL != "" {
			fmt.Fprintf(w, "    URL:      %s\n", evt.URL)
		}
	}

	_, err := fmt.Fprintf(w, "\n%d event(s)\n", len(events))
	return err
}
