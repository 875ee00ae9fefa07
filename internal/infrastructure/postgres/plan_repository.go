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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo plan de producción (planned_quantities, llave item_id + plan_date).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `item_id, to_char(plan_date, 'YYYY-MM-DD'), planned_qty, produced_qty, updated_at`

// Get obtiene la fila del plan o nil si no existe.
func (r *PlanRepo) Get(ctx context.Context, itemID, date string) (*entity.PlannedQuantity, error) {
	var p entity.PlannedQuantity
	err := r.q.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM planned_quantities WHERE item_id = $1 AND plan_date = $2::date`, itemID, date,
	).Scan(&p.ItemID, &p.Date, &p.PlannedQty, &p.ProducedQty, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// GetForUpdate crea la fila en cero si falta y la bloquea (SELECT FOR UPDATE).
func (r *PlanRepo) GetForUpdate(ctx context.Context, itemID, date string) (*entity.PlannedQuantity, error) {
	if _, err := r.q.Exec(ctx, `
		INSERT INTO planned_quantities (item_id, plan_date, planned_qty, produced_qty, updated_at)
		VALUES ($1, $2::date, 0, 0, now())
		ON CONFLICT (item_id, plan_date) DO NOTHING`, itemID, date); err != nil {
		return nil, fmt.Errorf("crear plan %s@%s: %w", itemID, date, err)
	}
	var p entity.PlannedQuantity
	err := r.q.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM planned_quantities WHERE item_id = $1 AND plan_date = $2::date
		FOR UPDATE`, itemID, date,
	).Scan(&p.ItemID, &p.Date, &p.PlannedQty, &p.ProducedQty, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("bloquear plan %s@%s: %w", itemID, date, err)
	}
	return &p, nil
}

// ListRange filas de los ítems entre from y to inclusive.
func (r *PlanRepo) ListRange(ctx context.Context, itemIDs []string, from, to string) ([]*entity.PlannedQuantity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+planColumns+`
		FROM planned_quantities
		WHERE item_id = ANY($1) AND plan_date BETWEEN $2::date AND $3::date
		ORDER BY item_id, plan_date`, itemIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("list plan: %w", err)
	}
	defer rows.Close()

	var out []*entity.PlannedQuantity
	for rows.Next() {
		var p entity.PlannedQuantity
		if err := rows.Scan(&p.ItemID, &p.Date, &p.PlannedQty, &p.ProducedQty, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// UpsertPlanned fija plannedQty sin tocar producedQty.
func (r *PlanRepo) UpsertPlanned(ctx context.Context, itemID, date string, planned decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO planned_quantities (item_id, plan_date, planned_qty, produced_qty, updated_at)
		VALUES ($1, $2::date, $3, 0, now())
		ON CONFLICT (item_id, plan_date)
		DO UPDATE SET planned_qty = EXCLUDED.planned_qty, updated_at = now()`,
		itemID, date, planned)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}

// AddProduced suma delta a producedQty (sin bajar de cero); crea la fila si no existe.
func (r *PlanRepo) AddProduced(ctx context.Context, itemID, date string, delta decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO planned_quantities (item_id, plan_date, planned_qty, produced_qty, updated_at)
		VALUES ($1, $2::date, 0, GREATEST(0, $3::numeric), now())
		ON CONFLICT (item_id, plan_date)
		DO UPDATE SET produced_qty = GREATEST(0, planned_quantities.produced_qty + $3::numeric), updated_at = now()`,
		itemID, date, delta)
	if err != nil {
		return fmt.Errorf("add produced: %w", err)
	}
	return nil
}
