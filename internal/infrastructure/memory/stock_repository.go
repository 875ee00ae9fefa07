package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository saldos por (ítem, zona).
type StockRepository struct {
	acc *access
}

// Get devuelve el saldo o uno en cero si la llave nunca tuvo movimientos.
func (r *StockRepository) Get(_ context.Context, itemID, zoneID string) (*entity.StockBalance, error) {
	var out entity.StockBalance
	r.acc.read(func(st *state) {
		k := entity.StockKey{ItemID: itemID, ZoneID: zoneID}
		b, ok := st.balances[k]
		if !ok {
			b = entity.StockBalance{ItemID: itemID, ZoneID: zoneID, Quantity: decimal.Zero}
		}
		out = b
	})
	return &out, nil
}

// GetForUpdate crea en cero las llaves faltantes y devuelve copias. Dentro de Run el
// candado del almacén ya serializa las transacciones.
func (r *StockRepository) GetForUpdate(_ context.Context, keys []entity.StockKey) (map[entity.StockKey]*entity.StockBalance, error) {
	out := make(map[entity.StockKey]*entity.StockBalance, len(keys))
	r.acc.write(func(st *state) {
		for _, k := range keys {
			b, ok := st.balances[k]
			if !ok {
				b = entity.StockBalance{ItemID: k.ItemID, ZoneID: k.ZoneID, Quantity: decimal.Zero, UpdatedAt: r.acc.now()}
				st.balances[k] = b
			}
			cp := b
			out[k] = &cp
		}
	})
	return out, nil
}

// Upsert guarda el saldo.
func (r *StockRepository) Upsert(_ context.Context, balance *entity.StockBalance) error {
	r.acc.write(func(st *state) {
		st.balances[balance.Key()] = *balance
	})
	return nil
}

// ListByZones saldos de las zonas indicadas ordenados por (zona, ítem).
func (r *StockRepository) ListByZones(_ context.Context, zoneIDs []string) ([]*entity.StockBalance, error) {
	want := make(map[string]bool, len(zoneIDs))
	for _, z := range zoneIDs {
		want[z] = true
	}
	var out []*entity.StockBalance
	r.acc.read(func(st *state) {
		for k, b := range st.balances {
			if want[k.ZoneID] {
				cp := b
				out = append(out, &cp)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })
	return out, nil
}
