package inventory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El lote y los documentos que lo acompañan se confirman juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
		docRepo repository.DocumentRepository,
		planRepo repository.PlanRepository,
	) error) error
}

// Recorder observa los resultados del libro (métricas). Lo implementa infrastructure/metrics.
type Recorder interface {
	BatchApplied(reason string, legs int)
	BatchRejected(reason, cause string)
	DocumentPosted(docType string)
	DocumentCanceled(docType string)
}

// NopRecorder no registra nada.
type NopRecorder struct{}

func (NopRecorder) BatchApplied(string, int)     {}
func (NopRecorder) BatchRejected(string, string) {}
func (NopRecorder) DocumentPosted(string)        {}
func (NopRecorder) DocumentCanceled(string)      {}
