package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// CatalogRepository lectura del catálogo externo: ítems y especificaciones.
// El núcleo nunca escribe datos de catálogo.
type CatalogRepository interface {
	GetItem(ctx context.Context, id string) (*entity.Item, error)
	ListItemsByKind(ctx context.Context, kind string) ([]*entity.Item, error)
	GetBom(ctx context.Context, itemID string) ([]entity.BomLine, error)
	GetBoms(ctx context.Context, itemIDs []string) (map[string][]entity.BomLine, error)
}
