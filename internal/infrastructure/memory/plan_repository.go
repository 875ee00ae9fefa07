package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PlanRepository plan de producción por (ítem, día).
type PlanRepository struct {
	acc *access
}

func (r *PlanRepository) Get(_ context.Context, itemID, date string) (*entity.PlannedQuantity, error) {
	var out *entity.PlannedQuantity
	r.acc.read(func(st *state) {
		if p, ok := st.plans[planKey{itemID, date}]; ok {
			cp := p
			out = &cp
		}
	})
	return out, nil
}

// GetForUpdate crea la fila en cero si falta. Dentro de Run el candado del almacén ya
// serializa la transacción completa.
func (r *PlanRepository) GetForUpdate(_ context.Context, itemID, date string) (*entity.PlannedQuantity, error) {
	var out entity.PlannedQuantity
	r.acc.write(func(st *state) {
		k := planKey{itemID, date}
		p, ok := st.plans[k]
		if !ok {
			p = entity.PlannedQuantity{ItemID: itemID, Date: date, PlannedQty: decimal.Zero, ProducedQty: decimal.Zero, UpdatedAt: r.acc.now()}
			st.plans[k] = p
		}
		out = p
	})
	return &out, nil
}

// ListRange filas de los ítems entre from y to inclusive, ordenadas por ítem y fecha.
// Las fechas YYYY-MM-DD se comparan como texto.
func (r *PlanRepository) ListRange(_ context.Context, itemIDs []string, from, to string) ([]*entity.PlannedQuantity, error) {
	want := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	var out []*entity.PlannedQuantity
	r.acc.read(func(st *state) {
		for k, p := range st.plans {
			if want[k.itemID] && k.date >= from && k.date <= to {
				cp := p
				out = append(out, &cp)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (r *PlanRepository) UpsertPlanned(_ context.Context, itemID, date string, planned decimal.Decimal) error {
	r.acc.write(func(st *state) {
		k := planKey{itemID, date}
		p, ok := st.plans[k]
		if !ok {
			p = entity.PlannedQuantity{ItemID: itemID, Date: date, ProducedQty: decimal.Zero}
		}
		p.PlannedQty = planned
		p.UpdatedAt = r.acc.now()
		st.plans[k] = p
	})
	return nil
}

// AddProduced suma delta a producedQty sin bajar de cero.
func (r *PlanRepository) AddProduced(_ context.Context, itemID, date string, delta decimal.Decimal) error {
	r.acc.write(func(st *state) {
		k := planKey{itemID, date}
		p, ok := st.plans[k]
		if !ok {
			p = entity.PlannedQuantity{ItemID: itemID, Date: date, PlannedQty: decimal.Zero}
		}
		p.ProducedQty = decimal.Max(decimal.Zero, p.ProducedQty.Add(delta))
		p.UpdatedAt = r.acc.now()
		st.plans[k] = p
	})
	return nil
}
