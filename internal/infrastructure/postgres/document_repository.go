package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos contabilizados (documents + document_lines para recepciones).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, type, status, item_id, quantity, to_char(doc_date, 'YYYY-MM-DD'),
	physical_zone_id, output_zone_id, materials_zone_id, semis_zone_id,
	ledger_batch_id, reversal_batch_id, created_at, created_by, canceled_at`

// Create persiste el documento y sus líneas.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.ProductionPosting) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO documents (
			id, type, status, item_id, quantity, doc_date,
			physical_zone_id, output_zone_id, materials_zone_id, semis_zone_id,
			ledger_batch_id, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11, $12, $13)`,
		doc.ID, doc.Type, doc.Status, nullIfEmpty(doc.ItemID), doc.Quantity, doc.Date,
		nullIfEmpty(doc.PhysicalZoneID), nullIfEmpty(doc.OutputZoneID),
		nullIfEmpty(doc.MaterialsZoneID), nullIfEmpty(doc.SemisZoneID),
		doc.LedgerBatchID, doc.CreatedAt, nullIfEmpty(doc.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	for i, l := range doc.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_lines (document_id, line_no, item_id, zone_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			doc.ID, i+1, l.ItemID, l.ZoneID, l.Quantity)
		if err != nil {
			return fmt.Errorf("create document line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas o nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.ProductionPosting, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila del documento.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionPosting, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

// MarkCanceled pasa el documento a anulado y guarda el lote de reverso.
func (r *DocumentRepo) MarkCanceled(ctx context.Context, id, reversalBatchID string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE documents
		SET status = $2, reversal_batch_id = $3, canceled_at = $4
		WHERE id = $1 AND status <> $2`,
		id, entity.DocumentStatusCanceled, reversalBatchID, at)
	if err != nil {
		return fmt.Errorf("cancel document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) get(ctx context.Context, query, id string) (*entity.ProductionPosting, error) {
	var (
		d                                     entity.ProductionPosting
		itemID, physical, output, mats, semis *string
		reversal, createdBy                   *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Type, &d.Status, &itemID, &d.Quantity, &d.Date,
		&physical, &output, &mats, &semis,
		&d.LedgerBatchID, &reversal, &d.CreatedAt, &createdBy, &d.CanceledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.ItemID = derefString(itemID)
	d.PhysicalZoneID = derefString(physical)
	d.OutputZoneID = derefString(output)
	d.MaterialsZoneID = derefString(mats)
	d.SemisZoneID = derefString(semis)
	d.ReversalBatchID = derefString(reversal)
	d.CreatedBy = derefString(createdBy)

	rows, err := r.q.Query(ctx, `
		SELECT item_id, zone_id, quantity
		FROM document_lines WHERE document_id = $1
		ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ReceiptLine
		if err := rows.Scan(&l.ItemID, &l.ZoneID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		d.Lines = append(d.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}
