// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PoolRecordsValidated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_records_validated_total",
			Help: "Total number of mortgage records that passed validation",
		},
	)

	PoolRecordsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pool_records_rejected_total",
			Help: "Total number of mortgage records rejected by validation",
		},
		[]string{"reason"},
	)

	PoolRecordsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_records_scored_total",
			Help: "Total number of mortgage records scored",
		},
	)

	PoolRecordsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_records_failed_total",
			Help: "Total number of mortgage records that faulted during scoring",
		},
	)

	PoolRunsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pool_runs_completed_total",
			Help: "Total number of completed rating runs by resulting band",
		},
		[]string{"rating"},
	)

	PoolRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "pool_run_duration_seconds",
			Help: "Duration of one full rating run in seconds",
		},
	)

	PoolMeanRiskScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pool_mean_risk_score",
			Help: "Mean risk score of the most recent rated pool",
		},
	)
)
