// Package metrics exposes Prometheus instruments for the redirection engine.
//
// Instruments are registered on an injected registry rather than the global
// one, so tests and multiple managers never collide.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every instrument the engine updates.
type Metrics struct {
	// Writes counts successful index rewrites by table and operation.
	Writes *prometheus.CounterVec
	// Failures counts per file failures by table and operation.
	Failures *prometheus.CounterVec
	// Advances counts selection advances by outcome.
	Advances *prometheus.CounterVec
	// CatalogRecords is the number of records with at least one alternate.
	CatalogRecords prometheus.Gauge
	// CatalogAlternates is the total number of discovered alternates.
	CatalogAlternates prometheus.Gauge
	// LoadDuration observes OnDirectoryLoad latency.
	LoadDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers all instruments on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Writes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stage_alts_index_writes_total",
			Help: "Index entries rewritten by table and operation",
		}, []string{"table", "op"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stage_alts_file_failures_total",
			Help: "Files skipped during patch or restore by table and operation",
		}, []string{"table", "op"}),
		Advances: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stage_alts_selection_advances_total",
			Help: "Selection advances by outcome",
		}, []string{"result"}),
		CatalogRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "stage_alts_catalog_records",
			Help: "Records with at least one alternate",
		}),
		CatalogAlternates: f.NewGauge(prometheus.GaugeOpts{
			Name: "stage_alts_catalog_alternates",
			Help: "Alternates discovered across all records",
		}),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "stage_alts_directory_load_seconds",
			Help:    "Time spent handling one directory load",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		gatherer: reg,
	}
}

// NewNop returns instruments bound to a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
