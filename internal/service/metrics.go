package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operational counters for the sync cores. Registered on the default
// registry; embedding applications decide whether and how to expose them.
var (
	migrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_migrations_total",
		Help: "Completed local-to-remote inventory migrations.",
	})

	migrationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_migration_failures_total",
		Help: "Migration batches that failed to commit.",
	})

	writeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_write_failures_total",
		Help: "Item or settings writes rejected by the active backend.",
	})

	backendSwitches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_backend_switches_total",
		Help: "Backend selections, labeled by the state entered.",
	}, []string{"state"})
)
