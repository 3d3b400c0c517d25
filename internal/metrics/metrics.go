// Package metrics: Prometheus-метрики сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"partmatch-service/internal/reconcile/model"
)

var (
	ItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partmatch_items_total",
			Help: "Reconciled items by outcome",
		},
		[]string{"outcome"},
	)

	ReconcileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partmatch_reconcile_duration_seconds",
			Help:    "Time spent parsing and matching OCR text",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"source"},
	)

	OCRDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partmatch_ocr_duration_seconds",
			Help:    "Time spent in the OCR engine",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	OCRFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partmatch_ocr_failures_total",
			Help: "OCR calls that returned an error",
		},
	)

	CatalogRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "partmatch_catalog_rows",
			Help: "Reference rows loaded per sheet",
		},
		[]string{"sheet"},
	)
)

// RecordResult: счётчики по исходам одной сверки.
func RecordResult(source string, res model.Result, dur time.Duration) {
	matched, unmatched, parseErrors := res.Counts()
	ItemsTotal.WithLabelValues("matched").Add(float64(matched))
	ItemsTotal.WithLabelValues("unmatched").Add(float64(unmatched))
	ItemsTotal.WithLabelValues("parse_error").Add(float64(parseErrors))
	ReconcileDuration.WithLabelValues(source).Observe(dur.Seconds())
}

func RecordOCR(dur time.Duration, err error) {
	OCRDuration.Observe(dur.Seconds())
	if err != nil {
		OCRFailures.Inc()
	}
}

func RecordCatalog(c model.Catalog) {
	CatalogRows.Reset()
	for _, s := range c {
		CatalogRows.WithLabelValues(s.Name).Set(float64(len(s.Rows)))
	}
}
