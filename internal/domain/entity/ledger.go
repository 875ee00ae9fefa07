package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de un lote del libro de inventario.
const (
	BatchReasonProduction = "production"
	BatchReasonReceipt    = "receipt"
	BatchReasonReversal   = "reversal"
	BatchReasonAdjustment = "adjustment"
)

// LedgerEntry tramo de un lote: delta positivo = entrada/producción, negativo = consumo.
// Nunca existe aislado; siempre viaja dentro de un LedgerBatch.
type LedgerEntry struct {
	ItemID string
	ZoneID string
	Delta  decimal.Decimal
}

// Key devuelve la llave (ítem, zona) del tramo.
func (e LedgerEntry) Key() StockKey {
	return StockKey{ItemID: e.ItemID, ZoneID: e.ZoneID}
}

// LedgerBatch lista ordenada de tramos aplicada todo-o-nada.
type LedgerBatch struct {
	ID        string
	Reason    string
	Reference string // documento que originó el lote (producción, recepción, reverso)
	Entries   []LedgerEntry
	CreatedAt time.Time
	CreatedBy string
}

// Inverse devuelve los tramos con el signo invertido, en el mismo orden.
func Inverse(entries []LedgerEntry) []LedgerEntry {
	out := make([]LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntry{ItemID: e.ItemID, ZoneID: e.ZoneID, Delta: e.Delta.Neg()}
	}
	return out
}

// NetDeltas suma los deltas por llave (un lote puede tocar la misma llave varias veces).
func NetDeltas(entries []LedgerEntry) map[StockKey]decimal.Decimal {
	net := make(map[StockKey]decimal.Decimal, len(entries))
	for _, e := range entries {
		k := e.Key()
		net[k] = net[k].Add(e.Delta)
	}
	return net
}
