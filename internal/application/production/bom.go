package production

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/planning"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BomService explosión de especificaciones sobre el catálogo.
type BomService struct {
	catalog repository.CatalogRepository
}

// NewBomService construye el servicio.
func NewBomService(catalog repository.CatalogRepository) *BomService {
	return &BomService{catalog: catalog}
}

// Explode requerimientos de un nivel para producir qty del ítem.
// Un ítem sin especificación devuelve una explosión vacía, no un error: el llamador decide
// que "sin BOM" significa "no producible".
func (s *BomService) Explode(ctx context.Context, itemID string, qty decimal.Decimal) (inventory.Explosion, error) {
	lines, err := s.catalog.GetBom(ctx, itemID)
	if err != nil {
		return inventory.Explosion{}, err
	}
	return inventory.Explode(lines, qty), nil
}

// Requirements demanda bruta multinivel (semielaborados anidados expandidos nivel a nivel).
func (s *BomService) Requirements(ctx context.Context, itemID string, qty decimal.Decimal, maxDepth int) (*planning.Requirements, error) {
	if !qty.IsPositive() {
		return nil, domain.ErrNonPositiveQuantity
	}
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	lookup := func(id string) ([]entity.BomLine, error) {
		return s.catalog.GetBom(ctx, id)
	}
	return planning.MultiLevel(itemID, qty, lookup, maxDepth)
}
