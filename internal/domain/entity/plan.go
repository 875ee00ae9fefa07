package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato ISO de las fechas del plan (día calendario, sin hora).
const DateLayout = "2006-01-02"

// PlannedQuantity cantidad planeada y producida de un ítem en un día.
// ProducedQty solo aumenta por producción contabilizada.
type PlannedQuantity struct {
	ItemID      string
	Date        string // YYYY-MM-DD
	PlannedQty  decimal.Decimal
	ProducedQty decimal.Decimal
	UpdatedAt   time.Time
}

// Outstanding devuelve lo que falta por producir (nunca negativo).
func (p *PlannedQuantity) Outstanding() decimal.Decimal {
	rest := p.PlannedQty.Sub(p.ProducedQty)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
