package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// LedgerRepository puerto de persistencia del libro (lotes y tramos, solo inserción).
type LedgerRepository interface {
	CreateBatch(ctx context.Context, batch *entity.LedgerBatch) error
	GetBatch(ctx context.Context, id string) (*entity.LedgerBatch, error)
}
