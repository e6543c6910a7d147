package etl

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts pipeline outcomes over the lifetime of a process.
type Metrics struct {
	CandidatesFetched prometheus.Counter
	BatchDuplicates   prometheus.Counter
	StoreDuplicates   prometheus.Counter
	EventsStored      prometheus.Counter
}

// NewMetrics creates the pipeline counters and registers them on reg when
// it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CandidatesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "candidates_fetched_total",
			Help:      "Event candidates parsed from listing pages.",
		}),
		BatchDuplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "batch_duplicates_total",
			Help:      "Candidates skipped because their URL repeated within a run.",
		}),
		StoreDuplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "store_duplicates_total",
			Help:      "Candidates skipped because a matching event was already stored.",
		}),
		EventsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "events_stored_total",
			Help:      "Events committed to the store.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.CandidatesFetched, m.BatchDuplicates, m.StoreDuplicates, m.EventsStored)
	}
	return m
}
