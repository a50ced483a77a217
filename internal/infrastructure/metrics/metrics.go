// Package metrics exposes the service's business-level Prometheus
// collectors. HTTP series are recorded by the HTTP middleware; everything
// here is incremented from the usecase layer and the scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transfersExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_transfers_executed_total",
		Help: "Total number of money transfers executed",
	})

	exchangesExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_exchanges_executed_total",
		Help: "Total number of currency exchanges executed",
	})

	accountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_accounts_created_total",
		Help: "Total number of accounts created",
	})

	accountsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_accounts_closed_total",
		Help: "Total number of accounts closed",
	})

	activitiesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobank_activities_recorded_total",
			Help: "Total account activities recorded by type",
		},
		[]string{"activity_type"},
	)

	recurringTransfersExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_recurring_transfers_executed_total",
		Help: "Total recurring transfers executed by the scheduler",
	})

	recurringTransferFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_recurring_transfer_failures_total",
		Help: "Total recurring transfers that failed",
	})

	rateLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobank_rate_lookups_total",
			Help: "Total exchange rate provider lookups by outcome",
		},
		[]string{"outcome"},
	)

	rateCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gobank_rate_cache_hits_total",
		Help: "Total exchange rate cache hits",
	})
)

func TransferExecuted() { transfersExecuted.Inc() }

func ExchangeExecuted() { exchangesExecuted.Inc() }

func AccountCreated() { accountsCreated.Inc() }

func AccountClosed() { accountsClosed.Inc() }

func ActivityRecorded(activityType string) {
	activitiesRecorded.WithLabelValues(activityType).Inc()
}

func RecurringTransferExecuted() { recurringTransfersExecuted.Inc() }

func RecurringTransferFailed() { recurringTransferFailures.Inc() }

// RateLookup records a provider round trip; outcome is "ok" or "error".
func RateLookup(outcome string) { rateLookups.WithLabelValues(outcome).Inc() }

func RateCacheHit() { rateCacheHits.Inc() }
