package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ZoneRepository lectura de la jerarquía bodega física -> zonas virtuales.
type ZoneRepository interface {
	GetZone(ctx context.Context, id string) (*entity.Zone, error)
	ZonesUnder(ctx context.Context, physicalID string) ([]*entity.Zone, error)
}
