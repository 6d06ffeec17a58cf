package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scancart"

// CartSyncMetrics counts how client-side cart mutations reconcile with the server.
type CartSyncMetrics struct {
	syncs        *prometheus.CounterVec
	rollbacks    *prometheus.CounterVec
	scanFailures prometheus.Counter
}

// NewCartSyncMetrics registers the client sync metrics on the provided registerer.
func NewCartSyncMetrics(reg prometheus.Registerer) *CartSyncMetrics {
	if reg == nil {
		return &CartSyncMetrics{}
	}
	syncs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_sync_total",
		Help:      "Cart mutations pushed to the server by operation and result.",
	}, []string{"op", "result"})
	rollbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_rollbacks_total",
		Help:      "Local cart snapshots restored after a failed server call.",
	}, []string{"op"})
	scanFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_failures_total",
		Help:      "Scanned codes that could not be resolved to a product.",
	})
	reg.MustRegister(syncs, rollbacks, scanFailures)
	return &CartSyncMetrics{
		syncs:        syncs,
		rollbacks:    rollbacks,
		scanFailures: scanFailures,
	}
}

// IncSync records the outcome of one server call.
func (c *CartSyncMetrics) IncSync(op string, err error) {
	if c == nil || c.syncs == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.syncs.WithLabelValues(normalizeLabel(op), result).Inc()
}

// IncRollback increments the rollback counter for op.
func (c *CartSyncMetrics) IncRollback(op string) {
	if c == nil || c.rollbacks == nil {
		return
	}
	c.rollbacks.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncScanFailure increments the unresolved scan counter.
func (c *CartSyncMetrics) IncScanFailure() {
	if c == nil || c.scanFailures == nil {
		return
	}
	c.scanFailures.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
