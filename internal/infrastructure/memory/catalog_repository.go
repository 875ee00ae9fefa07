package memory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// CatalogRepository ítems y especificaciones cargados con AddItem / SetBom.
type CatalogRepository struct {
	c *catalog
}

func (r *CatalogRepository) GetItem(_ context.Context, id string) (*entity.Item, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	it, ok := r.c.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// ListItemsByKind en orden de catálogo (orden de alta); kind vacío lista todos.
func (r *CatalogRepository) ListItemsByKind(_ context.Context, kind string) ([]*entity.Item, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var out []*entity.Item
	for _, id := range r.c.itemOrder {
		it := r.c.items[id]
		if kind == "" || it.Kind == kind {
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *CatalogRepository) GetBom(_ context.Context, itemID string) ([]entity.BomLine, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return append([]entity.BomLine(nil), r.c.boms[itemID]...), nil
}

func (r *CatalogRepository) GetBoms(_ context.Context, itemIDs []string) (map[string][]entity.BomLine, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	out := make(map[string][]entity.BomLine, len(itemIDs))
	for _, id := range itemIDs {
		if lines, ok := r.c.boms[id]; ok {
			out[id] = append([]entity.BomLine(nil), lines...)
		}
	}
	return out, nil
}
