package planning

import (
	"context"
	"time"

	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/planning"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PlanUseCase edición del plan de producción. El libro es la única fuente de verdad de lo
// producido: producedQty nunca se escribe directamente.
type PlanUseCase struct {
	txRunner appinventory.TxRunner
	catalog  repository.CatalogRepository
	poster   *production.PosterUseCase
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(txRunner appinventory.TxRunner, catalog repository.CatalogRepository, poster *production.PosterUseCase) *PlanUseCase {
	return &PlanUseCase{txRunner: txRunner, catalog: catalog, poster: poster}
}

// PlanUpdateInput cambios sobre una celda del plan. Nil = sin cambio.
type PlanUpdateInput struct {
	ItemID         string
	Date           string
	PlannedQty     *decimal.Decimal
	ProducedQty    *decimal.Decimal
	PhysicalZoneID string
	UserID         string
}

// PlanUpdateResult fila resultante y, si hubo, la producción contabilizada.
type PlanUpdateResult struct {
	Plan    *entity.PlannedQuantity
	Posting *production.PostingResult
}

// UpdatePlan actualiza plannedQty; un producedQty mayor al actual se contabiliza como
// producción de la diferencia (con backflush) y uno menor devuelve domain.ErrProducedDecrease.
func (uc *PlanUseCase) UpdatePlan(ctx context.Context, in PlanUpdateInput) (*PlanUpdateResult, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := planning.ParseDate(in.Date, time.UTC); err != nil {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.catalog.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.PlannedQty != nil && in.PlannedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// La fila del plan queda bloqueada desde la comparación hasta el Commit
	res := &PlanUpdateResult{}
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
		docRepo repository.DocumentRepository,
		planRepo repository.PlanRepository,
	) error {
		current, err := planRepo.GetForUpdate(ctx, in.ItemID, in.Date)
		if err != nil {
			return err
		}
		if in.ProducedQty != nil {
			if in.ProducedQty.LessThan(current.ProducedQty) {
				return domain.ErrProducedDecrease
			}
			if delta := in.ProducedQty.Sub(current.ProducedQty); delta.IsPositive() {
				posted, err := uc.poster.PostProductionInTx(ctx, stockRepo, ledgerRepo, docRepo, planRepo, production.ProductionInput{
					ItemID:   in.ItemID,
					Quantity: delta,
					Date:     in.Date,
					Zones:    appinventory.ProductionZones{PhysicalZoneID: in.PhysicalZoneID},
					UserID:   in.UserID,
				})
				if err != nil {
					return err
				}
				res.Posting = posted
			}
		}
		if in.PlannedQty != nil {
			if err := planRepo.UpsertPlanned(ctx, in.ItemID, in.Date, *in.PlannedQty); err != nil {
				return err
			}
		}
		plan, err := planRepo.Get(ctx, in.ItemID, in.Date)
		if err != nil {
			return err
		}
		res.Plan = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Posting != nil {
		uc.poster.ProductionCommitted(res.Posting)
	}
	return res, nil
}
