package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	ScansProcessed      prometheus.Counter
	ScansRejected       prometheus.Counter
	MovementsCommitted  prometheus.Counter
	MovementsFailed     prometheus.Counter
	PendingConfirmation prometheus.Gauge
	WebhookDelivered    prometheus.Counter
	WebhookFailed       prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	scansProcessed := prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_scans_processed_total"})
	scansRejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_scans_rejected_total"})
	committed := prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_movements_committed_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_movements_failed_total"})
	pending := prometheus.NewGauge(prometheus.GaugeOpts{Name: "stock_pending_confirmations"})
	delivered := prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_webhook_delivered_total"})
	webhookFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "stock_webhook_failed_total"})

	r.MustRegister(scansProcessed, scansRejected, committed, failed, pending, delivered, webhookFailed)
	return &Registry{
		reg:                 r,
		ScansProcessed:      scansProcessed,
		ScansRejected:       scansRejected,
		MovementsCommitted:  committed,
		MovementsFailed:     failed,
		PendingConfirmation: pending,
		WebhookDelivered:    delivered,
		WebhookFailed:       webhookFailed,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
