package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the application collectors on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	LedgerEvents        *prometheus.CounterVec
	GateRequests        *prometheus.CounterVec
	SnapshotImports     *prometheus.CounterVec
	SnapshotExports     prometheus.Counter
	PersistenceFailures prometheus.Counter
	CashOnHand          prometheus.Gauge
	Products            prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		LedgerEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hornet_ledger_events_total",
			Help: "Ledger events recorded, by kind.",
		}, []string{"kind"}),
		GateRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hornet_gate_requests_total",
			Help: "Interaction gate requests, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		SnapshotImports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hornet_snapshot_imports_total",
			Help: "Snapshot imports, by result.",
		}, []string{"result"}),
		SnapshotExports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hornet_snapshot_exports_total",
			Help: "Snapshots exported.",
		}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hornet_persistence_failures_total",
			Help: "Durable writes that failed after an in-memory mutation.",
		}),
		CashOnHand: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hornet_cash_on_hand",
			Help: "Theoretical cash on hand after the last ledger change.",
		}),
		Products: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hornet_catalog_products",
			Help: "Products in the catalog.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LedgerEvents, m.GateRequests, m.SnapshotImports, m.SnapshotExports,
		m.PersistenceFailures, m.CashOnHand, m.Products,
	)
	return m
}
