package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura de items y bom_lines (los escribe el sistema de catálogo o la semilla).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetItem obtiene un ítem por ID.
func (r *CatalogRepo) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, `SELECT id, name, kind, uom FROM items WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Kind, &it.UOM)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// ListItemsByKind ítems en orden de catálogo (sort_order); kind vacío lista todos.
func (r *CatalogRepo) ListItemsByKind(ctx context.Context, kind string) ([]*entity.Item, error) {
	query := `
		SELECT id, name, kind, uom FROM items
		WHERE ($1::text = '' OR kind = $1::text)
		ORDER BY sort_order, id`
	rows, err := r.q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Kind, &it.UOM); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// GetBom líneas de la especificación del ítem (vacío si no tiene).
func (r *CatalogRepo) GetBom(ctx context.Context, itemID string) ([]entity.BomLine, error) {
	boms, err := r.GetBoms(ctx, []string{itemID})
	if err != nil {
		return nil, err
	}
	return boms[itemID], nil
}

// GetBoms especificaciones de varios ítems en una consulta.
func (r *CatalogRepo) GetBoms(ctx context.Context, itemIDs []string) (map[string][]entity.BomLine, error) {
	query := `
		SELECT parent_item_id, kind, ref_item_id, qty_per_unit, uom
		FROM bom_lines WHERE parent_item_id = ANY($1)
		ORDER BY parent_item_id, line_no`
	rows, err := r.q.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.BomLine, len(itemIDs))
	for rows.Next() {
		var l entity.BomLine
		if err := rows.Scan(&l.ParentItemID, &l.Kind, &l.RefItemID, &l.QtyPerUnit, &l.UOM); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		out[l.ParentItemID] = append(out[l.ParentItemID], l)
	}
	return out, rows.Err()
}
