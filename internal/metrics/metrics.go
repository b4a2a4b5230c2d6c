package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebridge_lookups_total",
		Help: "Total number of price lookups handled",
	})

	LookupErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricebridge_lookup_errors_total",
		Help: "Total number of failed price lookups by stage",
	}, []string{"stage"})

	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricebridge_lookup_duration_seconds",
		Help:    "End-to-end duration of one lookup including session lifecycle",
		Buckets: prometheus.DefBuckets,
	})
)
