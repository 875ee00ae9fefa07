package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// StockRepository puerto para consultar/actualizar saldos por (ítem, zona).
// Dentro de una transacción las filas quedan bloqueadas hasta el Commit.
type StockRepository interface {
	// Get devuelve el saldo; si no existe fila devuelve un saldo en cero (nunca nil).
	Get(ctx context.Context, itemID, zoneID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea las filas de las llaves (creándolas en cero si faltan) en orden estable.
	GetForUpdate(ctx context.Context, keys []entity.StockKey) (map[entity.StockKey]*entity.StockBalance, error)
	Upsert(ctx context.Context, balance *entity.StockBalance) error
	// ListByZones lectura consistente de todos los saldos de las zonas indicadas.
	ListByZones(ctx context.Context, zoneIDs []string) ([]*entity.StockBalance, error)
}
