package planning

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/planning"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Settings parámetros de la proyección.
type Settings struct {
	HorizonDays      int
	GraceWorkingDays int
	Location         *time.Location
}

// CoverageUseCase arma las entradas de planning.Project desde los repositorios
// (catálogo, plan, saldos) y traduce la proyección a DTO. La proyección en sí es pura.
type CoverageUseCase struct {
	catalog   repository.CatalogRepository
	planRepo  repository.PlanRepository
	stockRepo repository.StockRepository
	zones     *appinventory.ZoneResolver
	settings  Settings
	now       func() time.Time
}

// NewCoverageUseCase construye el caso de uso.
func NewCoverageUseCase(
	catalog repository.CatalogRepository,
	planRepo repository.PlanRepository,
	stockRepo repository.StockRepository,
	zones *appinventory.ZoneResolver,
	settings Settings,
) *CoverageUseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.HorizonDays <= 0 {
		settings.HorizonDays = 14
	}
	return &CoverageUseCase{
		catalog:   catalog,
		planRepo:  planRepo,
		stockRepo: stockRepo,
		zones:     zones,
		settings:  settings,
		now:       time.Now,
	}
}

// CoverageQuery parámetros de la vista: productos terminados o semielaborados de una bodega.
type CoverageQuery struct {
	PhysicalZoneID string
	Kind           string   // product (por defecto) o semi
	From           string   // YYYY-MM-DD, por defecto hoy
	Days           int      // por defecto HorizonDays
	ItemIDs        []string // opcional; el orden define la prioridad de racionamiento
}

// Project calcula la factibilidad por celda y los días de cobertura por componente.
func (uc *CoverageUseCase) Project(ctx context.Context, q CoverageQuery) (*dto.CoverageResponse, error) {
	kind := q.Kind
	if kind == "" {
		kind = entity.ItemKindProduct
	}
	if kind != entity.ItemKindProduct && kind != entity.ItemKindSemi {
		return nil, domain.ErrInvalidInput
	}
	days := q.Days
	if days <= 0 {
		days = uc.settings.HorizonDays
	}
	if days > 366 {
		return nil, domain.ErrInvalidInput
	}

	today := planning.Day(uc.now().In(uc.settings.Location))
	from := today
	if q.From != "" {
		f, err := planning.ParseDate(q.From, uc.settings.Location)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		from = f
	}

	materialsZone, semisZone, err := uc.zones.ConsumptionZones(ctx, q.PhysicalZoneID)
	if err != nil {
		return nil, err
	}

	itemIDs, err := uc.scope(ctx, kind, q.ItemIDs)
	if err != nil {
		return nil, err
	}
	boms, err := uc.catalog.GetBoms(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	dates := planning.DateRange(from, days)
	plans, err := uc.planRepo.ListRange(ctx, itemIDs, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.ListByZones(ctx, []string{materialsZone.ID, semisZone.ID})
	if err != nil {
		return nil, err
	}

	proj := planning.Project(planning.Input{
		From:             from,
		Days:             days,
		Today:            today,
		GraceWorkingDays: uc.settings.GraceWorkingDays,
		Items:            itemIDs,
		Plans:            plans,
		Balances:         componentBalances(boms, stock, materialsZone.ID, semisZone.ID),
		Boms:             boms,
	})
	return toCoverageResponse(q.PhysicalZoneID, kind, planning.FormatDate(today), itemIDs, plans, proj), nil
}

func (uc *CoverageUseCase) scope(ctx context.Context, kind string, ids []string) ([]string, error) {
	if len(ids) > 0 {
		return ids, nil
	}
	items, err := uc.catalog.ListItemsByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out, nil
}

// componentBalances disponible por componente: los materiales se leen de la zona de
// materiales y los semielaborados de la de semielaborados, igual que en el backflush.
// Ítems que no aparecen en ninguna especificación conservan el saldo de ambas zonas.
func componentBalances(boms map[string][]entity.BomLine, stock []*entity.StockBalance, materialsZoneID, semisZoneID string) map[string]decimal.Decimal {
	kinds := make(map[string]string)
	for _, lines := range boms {
		for _, l := range lines {
			kinds[l.RefItemID] = l.Kind
		}
	}
	out := make(map[string]decimal.Decimal, len(stock))
	for _, b := range stock {
		switch kinds[b.ItemID] {
		case entity.BomLineMaterial:
			if b.ZoneID != materialsZoneID {
				continue
			}
		case entity.BomLineSemi:
			if b.ZoneID != semisZoneID {
				continue
			}
		}
		out[b.ItemID] = out[b.ItemID].Add(b.Quantity)
	}
	return out
}

func toCoverageResponse(physicalID, kind, today string, items []string, plans []*entity.PlannedQuantity, p planning.Projection) *dto.CoverageResponse {
	byKey := make(map[planning.CellKey]*entity.PlannedQuantity, len(plans))
	for _, pl := range plans {
		byKey[planning.CellKey{ItemID: pl.ItemID, Date: pl.Date}] = pl
	}

	resp := &dto.CoverageResponse{
		PhysicalZoneID: physicalID,
		Kind:           kind,
		Today:          today,
		Dates:          p.Dates,
		Items:          items,
		Cells:          make([]dto.CoverageCellDTO, 0, len(p.Cells)),
		Coverage:       make([]dto.ComponentCoverageDTO, 0, len(p.Coverage)),
		Demand:         make([]dto.DailyDemandDTO, 0, len(p.Dates)),
	}
	for _, date := range p.Dates {
		for _, id := range items {
			key := planning.CellKey{ItemID: id, Date: date}
			cell, ok := p.Cells[key]
			if !ok {
				continue
			}
			pl := byKey[key]
			resp.Cells = append(resp.Cells, dto.CoverageCellDTO{
				ItemID:       id,
				Date:         date,
				PlannedQty:   pl.PlannedQty,
				ProducedQty:  pl.ProducedQty,
				Outstanding:  cell.Outstanding,
				OK:           cell.OK,
				MaxBuildable: cell.MaxBuildable,
				Reason:       cell.Reason,
			})
		}
		resp.Demand = append(resp.Demand, dto.DailyDemandDTO{
			Date:      date,
			Materials: p.DailyMaterialDemand[date],
			Semis:     p.DailySemiDemand[date],
		})
	}

	ids := make([]string, 0, len(p.Coverage))
	for id := range p.Coverage {
		ids = append(ids, id)
	}
	// Menor cobertura primero: los faltantes próximos arriba
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.Coverage[ids[i]], p.Coverage[ids[j]]
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		resp.Coverage = append(resp.Coverage, dto.ComponentCoverageDTO{
			ItemID: id,
			OnHand: p.OnHand[id],
			Days:   p.Coverage[id],
		})
	}
	return resp
}
