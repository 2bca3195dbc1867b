package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

var (
	// PlanCacheLookups counts NTT plan cache lookups by result (hit, miss).
	PlanCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigntt_plan_cache_lookups_total",
			Help: "The total number of NTT plan cache lookups",
		},
		[]string{"result"},
	)

	// PlanBuildDuration observes the time spent precomputing root tables.
	PlanBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigntt_plan_build_duration_seconds",
			Help:    "The duration of NTT plan construction in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"modulus"},
	)

	// MultiplicationsTotal counts multiplications by modulus and status.
	MultiplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigntt_multiplications_total",
			Help: "The total number of NTT multiplications processed",
		},
		[]string{"modulus", "status"},
	)

	// MultiplicationDuration observes end-to-end multiplication latency.
	MultiplicationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigntt_multiplication_duration_seconds",
			Help:    "The duration of NTT multiplications in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		},
		[]string{"modulus"},
	)

	// TransformSize observes the log2 transform size chosen per multiplication.
	TransformSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bigntt_transform_log_size",
			Help:    "log2 of the transform size chosen for each multiplication",
			Buckets: prometheus.LinearBuckets(0, 2, 16),
		},
	)
)

// WriteText writes every metric of the default registry in the Prometheus
// text exposition format.
func WriteText(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
