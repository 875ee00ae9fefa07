package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo historial del libro: ledger_batches + ledger_entries (solo inserción).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CreateBatch persiste el lote y sus tramos en el orden original.
func (r *LedgerRepo) CreateBatch(ctx context.Context, batch *entity.LedgerBatch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_batches (id, reason, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)`,
		batch.ID, batch.Reason, nullIfEmpty(batch.Reference), batch.CreatedAt, nullIfEmpty(batch.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lote %s duplicado: %w", batch.ID, err)
		}
		return fmt.Errorf("create ledger batch: %w", err)
	}

	query := `
		INSERT INTO ledger_entries (batch_id, line_no, item_id, zone_id, delta)
		VALUES ($1, $2, $3, $4, $5)`
	for i, e := range batch.Entries {
		if _, err := r.q.Exec(ctx, query, batch.ID, i+1, e.ItemID, e.ZoneID, e.Delta); err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}
	}
	return nil
}

// GetBatch devuelve el lote con sus tramos o nil si no existe.
func (r *LedgerRepo) GetBatch(ctx context.Context, id string) (*entity.LedgerBatch, error) {
	var (
		b         entity.LedgerBatch
		reference *string
		createdBy *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, reason, reference, created_at, created_by
		FROM ledger_batches WHERE id = $1`, id,
	).Scan(&b.ID, &b.Reason, &reference, &b.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger batch: %w", err)
	}
	b.Reference = derefString(reference)
	b.CreatedBy = derefString(createdBy)

	rows, err := r.q.Query(ctx, `
		SELECT item_id, zone_id, delta
		FROM ledger_entries WHERE batch_id = $1
		ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ItemID, &e.ZoneID, &e.Delta); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		b.Entries = append(b.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}
