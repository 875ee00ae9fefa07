package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PlanRepository puerto del plan de producción por (ítem, día).
type PlanRepository interface {
	Get(ctx context.Context, itemID, date string) (*entity.PlannedQuantity, error)
	// GetForUpdate crea la fila en cero si falta y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, itemID, date string) (*entity.PlannedQuantity, error)
	// ListRange devuelve las filas de los ítems entre from y to (inclusive, YYYY-MM-DD).
	ListRange(ctx context.Context, itemIDs []string, from, to string) ([]*entity.PlannedQuantity, error)
	UpsertPlanned(ctx context.Context, itemID, date string, planned decimal.Decimal) error
	// AddProduced suma delta a producedQty (crea la fila si no existe). Solo lo usa el contabilizador.
	AddProduced(ctx context.Context, itemID, date string, delta decimal.Decimal) error
}
