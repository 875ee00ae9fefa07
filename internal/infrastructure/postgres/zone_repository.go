package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo jerarquía de zonas (bodegas físicas y sus zonas virtuales).
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador.
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

// GetZone obtiene una zona por ID.
func (r *ZoneRepo) GetZone(ctx context.Context, id string) (*entity.Zone, error) {
	var (
		z        entity.Zone
		parentID *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, name, type, parent_id, created_at
		FROM zones WHERE id = $1`, id,
	).Scan(&z.ID, &z.Name, &z.Type, &parentID, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	z.ParentID = derefString(parentID)
	return &z, nil
}

// ZonesUnder zonas virtuales de una bodega física.
func (r *ZoneRepo) ZonesUnder(ctx context.Context, physicalID string) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, type, parent_id, created_at
		FROM zones WHERE parent_id = $1
		ORDER BY name, id`, physicalID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Zone
	for rows.Next() {
		var (
			z        entity.Zone
			parentID *string
		)
		if err := rows.Scan(&z.ID, &z.Name, &z.Type, &parentID, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		z.ParentID = derefString(parentID)
		out = append(out, &z)
	}
	return out, rows.Err()
}
