package memory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ZoneRepository jerarquía de zonas cargada con AddZone.
type ZoneRepository struct {
	c *catalog
}

func (r *ZoneRepository) GetZone(_ context.Context, id string) (*entity.Zone, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	z, ok := r.c.zones[id]
	if !ok {
		return nil, nil
	}
	return &z, nil
}

// ZonesUnder zonas virtuales de la bodega en orden de alta.
func (r *ZoneRepository) ZonesUnder(_ context.Context, physicalID string) ([]*entity.Zone, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var out []*entity.Zone
	for _, id := range r.c.zoneOrder {
		z := r.c.zones[id]
		if z.ParentID == physicalID {
			out = append(out, &z)
		}
	}
	return out, nil
}
