package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// DocumentRepository persistencia de documentos contabilizados (producción y recepción).
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.ProductionPosting) error
	GetByID(ctx context.Context, id string) (*entity.ProductionPosting, error)
	// GetForUpdate bloquea el documento para serializar anulaciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionPosting, error)
	MarkCanceled(ctx context.Context, id, reversalBatchID string, at time.Time) error
}
