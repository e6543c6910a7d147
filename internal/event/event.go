package event

import "time"

// Source identifies the site every scraped record originates from.
const Source = "Eventbrite"

// Record represents a scraped event candidate before persistence.
// Title and Source are the only required fields; everything else is
// best-effort extraction from the listing markup.
type Record struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Address     string `json:"address,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source"`
	Category    string `json:"category,omitempty"`
}

// Stored is a Record that has been committed to the event store.
type Stored struct {
	ID int64 `json:"id"`
	Record
	CreatedAt time.Time `json:"created_at"`
}
