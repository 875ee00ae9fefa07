package inventory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ZoneRoles nombres de las zonas virtuales por rol dentro de una bodega física.
type ZoneRoles struct {
	Materials string
	Semis     string
	Finished  string
}

// ProductionZones zonas que intervienen en una producción.
// Los IDs vacíos se resuelven por nombre de rol bajo PhysicalZoneID.
type ProductionZones struct {
	PhysicalZoneID  string
	OutputZoneID    string
	MaterialsZoneID string
	SemisZoneID     string
}

// ZoneResolver valida y resuelve zonas contra la jerarquía bodega física -> zonas virtuales.
type ZoneResolver struct {
	repo  repository.ZoneRepository
	roles ZoneRoles
}

// NewZoneResolver construye el resolvedor.
func NewZoneResolver(repo repository.ZoneRepository, roles ZoneRoles) *ZoneResolver {
	return &ZoneResolver{repo: repo, roles: roles}
}

// Physical devuelve la bodega física o ErrInvalidZone si no existe o es virtual.
func (r *ZoneResolver) Physical(ctx context.Context, id string) (*entity.Zone, error) {
	if id == "" {
		return nil, domain.ErrInvalidZone
	}
	z, err := r.repo.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}
	if z == nil || z.Type != entity.ZoneTypePhysical {
		return nil, domain.ErrInvalidZone
	}
	return z, nil
}

// Virtual valida que la zona exista, sea virtual y cuelgue de una bodega física: la indicada en
// physicalID o, si viene vacío, la que diga su ParentID.
func (r *ZoneResolver) Virtual(ctx context.Context, id, physicalID string) (*entity.Zone, error) {
	if id == "" {
		return nil, domain.ErrInvalidZone
	}
	z, err := r.repo.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}
	if z == nil || !z.IsVirtual() || z.ParentID == "" {
		return nil, domain.ErrInvalidZone
	}
	if physicalID != "" {
		if !z.BelongsTo(physicalID) {
			return nil, domain.ErrInvalidZone
		}
		return z, nil
	}
	parent, err := r.repo.GetZone(ctx, z.ParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.Type != entity.ZoneTypePhysical {
		return nil, domain.ErrInvalidZone
	}
	return z, nil
}

// ValidateEntries exige que cada tramo apunte a una zona virtual existente.
func (r *ZoneResolver) ValidateEntries(ctx context.Context, entries []entity.LedgerEntry) error {
	checked := make(map[string]bool, len(entries))
	for _, e := range entries {
		if checked[e.ZoneID] {
			continue
		}
		if _, err := r.Virtual(ctx, e.ZoneID, ""); err != nil {
			return err
		}
		checked[e.ZoneID] = true
	}
	return nil
}

// ByRole busca la zona virtual con el nombre del rol bajo la bodega física.
func (r *ZoneResolver) ByRole(ctx context.Context, physicalID, roleName string) (*entity.Zone, error) {
	zones, err := r.repo.ZonesUnder(ctx, physicalID)
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		if z.IsVirtual() && z.Name == roleName {
			return z, nil
		}
	}
	return nil, domain.ErrInvalidZone
}

// ConsumptionZones zonas de materiales y semielaborados de una bodega física.
func (r *ZoneResolver) ConsumptionZones(ctx context.Context, physicalID string) (materials, semis *entity.Zone, err error) {
	if _, err = r.Physical(ctx, physicalID); err != nil {
		return nil, nil, err
	}
	if materials, err = r.ByRole(ctx, physicalID, r.roles.Materials); err != nil {
		return nil, nil, err
	}
	if semis, err = r.ByRole(ctx, physicalID, r.roles.Semis); err != nil {
		return nil, nil, err
	}
	return materials, semis, nil
}

// ResolveProduction completa y valida las zonas de una producción del tipo de ítem indicado:
// producto terminado sale a la zona de terminados, semielaborado a la de semielaborados.
// Las zonas de consumo solo se exigen si la explosión consume materiales o semielaborados.
func (r *ZoneResolver) ResolveProduction(ctx context.Context, in ProductionZones, itemKind string, needMaterials, needSemis bool) (ProductionZones, error) {
	out := in
	if _, err := r.Physical(ctx, in.PhysicalZoneID); err != nil {
		return out, err
	}
	outputRole := r.roles.Finished
	if itemKind == entity.ItemKindSemi {
		outputRole = r.roles.Semis
	}

	resolve := func(id *string, role string) error {
		if *id != "" {
			_, err := r.Virtual(ctx, *id, in.PhysicalZoneID)
			return err
		}
		z, err := r.ByRole(ctx, in.PhysicalZoneID, role)
		if err != nil {
			return err
		}
		*id = z.ID
		return nil
	}
	if err := resolve(&out.OutputZoneID, outputRole); err != nil {
		return out, err
	}
	if needMaterials || out.MaterialsZoneID != "" {
		if err := resolve(&out.MaterialsZoneID, r.roles.Materials); err != nil {
			return out, err
		}
	}
	if needSemis || out.SemisZoneID != "" {
		if err := resolve(&out.SemisZoneID, r.roles.Semis); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ListUnder zonas de una bodega física (valida que sea física).
func (r *ZoneResolver) ListUnder(ctx context.Context, physicalID string) ([]*entity.Zone, error) {
	if _, err := r.Physical(ctx, physicalID); err != nil {
		return nil, err
	}
	return r.repo.ZonesUnder(ctx, physicalID)
}
