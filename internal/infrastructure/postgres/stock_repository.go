package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo de un ítem en una zona; cero si la fila no existe.
func (r *StockRepo) Get(ctx context.Context, itemID, zoneID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_id, zone_id, quantity, updated_at
		FROM stock_balances WHERE item_id = $1 AND zone_id = $2`
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, itemID, zoneID).Scan(&b.ItemID, &b.ZoneID, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ItemID: itemID, ZoneID: zoneID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &b, nil
}

// GetForUpdate crea las filas faltantes en cero y las bloquea (SELECT FOR UPDATE) una a una
// en el orden recibido. El llamador pasa las llaves ordenadas para que dos lotes que
// comparten llaves las bloqueen en el mismo orden.
func (r *StockRepo) GetForUpdate(ctx context.Context, keys []entity.StockKey) (map[entity.StockKey]*entity.StockBalance, error) {
	insert := `
		INSERT INTO stock_balances (item_id, zone_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, zone_id) DO NOTHING`
	lock := `
		SELECT item_id, zone_id, quantity, updated_at
		FROM stock_balances WHERE item_id = $1 AND zone_id = $2
		FOR UPDATE`

	out := make(map[entity.StockKey]*entity.StockBalance, len(keys))
	for _, k := range keys {
		if _, err := r.q.Exec(ctx, insert, k.ItemID, k.ZoneID); err != nil {
			return nil, fmt.Errorf("crear saldo %s@%s: %w", k.ItemID, k.ZoneID, err)
		}
		var b entity.StockBalance
		if err := r.q.QueryRow(ctx, lock, k.ItemID, k.ZoneID).Scan(&b.ItemID, &b.ZoneID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("bloquear saldo %s@%s: %w", k.ItemID, k.ZoneID, err)
		}
		out[k] = &b
	}
	return out, nil
}

// Upsert inserta o actualiza la cantidad (por ítem y zona). El CHECK quantity >= 0 de la
// tabla es la segunda barrera contra saldos negativos.
func (r *StockRepo) Upsert(ctx context.Context, balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (item_id, zone_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, zone_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, balance.ItemID, balance.ZoneID, balance.Quantity, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByZones una sola sentencia: en READ COMMITTED ve una foto consistente.
func (r *StockRepo) ListByZones(ctx context.Context, zoneIDs []string) ([]*entity.StockBalance, error) {
	query := `
		SELECT item_id, zone_id, quantity, updated_at
		FROM stock_balances WHERE zone_id = ANY($1)
		ORDER BY zone_id, item_id`
	rows, err := r.q.Query(ctx, query, zoneIDs)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.ItemID, &b.ZoneID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
