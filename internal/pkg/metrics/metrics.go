// Package metrics exposes Prometheus counters for the document pipeline.
// The CLI has no scrape endpoint; Dump prints the gathered families instead.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsBuilt counts documents successfully built from a tree.
	DocumentsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gpxbide",
		Subsystem: "build",
		Name:      "documents_total",
		Help:      "Total GPX documents successfully built",
	})

	// BuildFailures counts aborted builds by reason.
	BuildFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gpxbide",
		Subsystem: "build",
		Name:      "failures_total",
		Help:      "Total failed document builds",
	}, []string{"reason"})

	// Validations counts model validation walks by outcome.
	Validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gpxbide",
		Subsystem: "validate",
		Name:      "checks_total",
		Help:      "Total model validation walks",
	}, []string{"result"})

	// TreesSerialized counts documents rendered back into generic trees.
	TreesSerialized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gpxbide",
		Subsystem: "serialize",
		Name:      "trees_total",
		Help:      "Total documents serialized back to trees",
	})

	// SummariesRendered counts JSON document summaries produced.
	SummariesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gpxbide",
		Subsystem: "serialize",
		Name:      "summaries_total",
		Help:      "Total JSON summaries rendered",
	})
)

// Dump writes every gathered metric family to w, one sample per line.
func Dump(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s%s %v\n", fam.GetName(), labels, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s%s %v\n", fam.GetName(), labels, m.GetGauge().GetValue())
			}
		}
	}
	return nil
}
