package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance saldo actual de un ítem en una zona virtual (tabla materializada del libro).
// Se crea al primer movimiento y nunca se borra; un saldo en cero es un estado válido.
type StockBalance struct {
	ItemID    string
	ZoneID    string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// StockKey identifica un saldo (ítem, zona).
type StockKey struct {
	ItemID string
	ZoneID string
}

// Key devuelve la llave del saldo.
func (b *StockBalance) Key() StockKey {
	return StockKey{ItemID: b.ItemID, ZoneID: b.ZoneID}
}

// Less orden total de llaves; se usa para bloquear filas siempre en el mismo orden.
func (k StockKey) Less(o StockKey) bool {
	if k.ZoneID != o.ZoneID {
		return k.ZoneID < o.ZoneID
	}
	return k.ItemID < o.ItemID
}
