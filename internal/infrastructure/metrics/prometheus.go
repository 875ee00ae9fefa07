// Package metrics expone contadores Prometheus del libro de inventario y del contabilizador.
package metrics

import (
	"net/http"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ inventory.Recorder = (*Recorder)(nil)

// Recorder implementa inventory.Recorder con un registro propio (sin el global).
type Recorder struct {
	registry       *prometheus.Registry
	batchesApplied *prometheus.CounterVec
	legsApplied    *prometheus.CounterVec
	batchesReject  *prometheus.CounterVec
	postings       *prometheus.CounterVec
	cancellations  *prometheus.CounterVec
}

// NewRecorder registra los contadores bajo el namespace dado (ej. "mrp").
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		batchesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "batches_applied_total",
			Help:      "Lotes confirmados por motivo.",
		}, []string{"reason"}),
		legsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "entries_applied_total",
			Help:      "Tramos confirmados por motivo.",
		}, []string{"reason"}),
		batchesReject: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "batches_rejected_total",
			Help:      "Lotes rechazados por motivo y causa.",
		}, []string{"reason", "cause"}),
		postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "posted_total",
			Help:      "Documentos contabilizados por tipo.",
		}, []string{"type"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "canceled_total",
			Help:      "Documentos anulados por tipo.",
		}, []string{"type"}),
	}
	reg.MustRegister(
		r.batchesApplied, r.legsApplied, r.batchesReject, r.postings, r.cancellations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) BatchApplied(reason string, legs int) {
	r.batchesApplied.WithLabelValues(reason).Inc()
	r.legsApplied.WithLabelValues(reason).Add(float64(legs))
}

func (r *Recorder) BatchRejected(reason, cause string) {
	r.batchesReject.WithLabelValues(reason, cause).Inc()
}

func (r *Recorder) DocumentPosted(docType string) {
	r.postings.WithLabelValues(docType).Inc()
}

func (r *Recorder) DocumentCanceled(docType string) {
	r.cancellations.WithLabelValues(docType).Inc()
}

// Registry registro de los contadores (pruebas).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler endpoint de exposición para /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
