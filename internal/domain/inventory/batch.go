package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SortedKeys llaves únicas de los tramos en orden estable (zona, ítem).
// Los repositorios bloquean las filas en este orden.
func SortedKeys(entries []entity.LedgerEntry) []entity.StockKey {
	seen := make(map[entity.StockKey]struct{}, len(entries))
	keys := make([]entity.StockKey, 0, len(entries))
	for _, e := range entries {
		k := e.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// ApplyDeltas calcula los saldos resultantes del lote sobre los saldos actuales.
// Si algún saldo quedaría negativo devuelve *domain.InsufficientStockError con todos los
// faltantes y no toca current. En éxito devuelve los saldos nuevos con UpdatedAt = now.
func ApplyDeltas(
	current map[entity.StockKey]*entity.StockBalance,
	entries []entity.LedgerEntry,
	now time.Time,
) ([]*entity.StockBalance, error) {
	net := entity.NetDeltas(entries)
	keys := SortedKeys(entries)

	var shortages []domain.Shortage
	updated := make([]*entity.StockBalance, 0, len(keys))
	for _, k := range keys {
		have := decimal.Zero
		if b, ok := current[k]; ok && b != nil {
			have = b.Quantity
		}
		newQty := have.Add(net[k])
		if newQty.IsNegative() {
			shortages = append(shortages, domain.Shortage{
				ItemID:    k.ItemID,
				ZoneID:    k.ZoneID,
				Needed:    net[k].Neg(),
				Available: have,
			})
			continue
		}
		updated = append(updated, &entity.StockBalance{
			ItemID:    k.ItemID,
			ZoneID:    k.ZoneID,
			Quantity:  newQty,
			UpdatedAt: now,
		})
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}
	return updated, nil
}

// ValidateEntries exige al menos un tramo con ítem, zona y delta distinto de cero.
func ValidateEntries(entries []entity.LedgerEntry) error {
	if len(entries) == 0 {
		return domain.ErrInvalidInput
	}
	for _, e := range entries {
		if e.ItemID == "" || e.ZoneID == "" || e.Delta.IsZero() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
