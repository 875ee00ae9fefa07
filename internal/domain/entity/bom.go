package entity

import "github.com/shopspring/decimal"

// Tipos de componente en una línea de especificación.
const (
	BomLineMaterial = "material"
	BomLineSemi     = "semi"
)

// BomLine línea de la especificación (BOM) de un producto o semielaborado.
// QtyPerUnit siempre > 0. Un ítem tiene cero o una especificación activa (su conjunto de líneas).
type BomLine struct {
	ParentItemID string
	Kind         string
	RefItemID    string
	QtyPerUnit   decimal.Decimal
	UOM          string
}

// Valid verifica la forma mínima de la línea.
func (l *BomLine) Valid() bool {
	if l.ParentItemID == "" || l.RefItemID == "" || l.ParentItemID == l.RefItemID {
		return false
	}
	if l.Kind != BomLineMaterial && l.Kind != BomLineSemi {
		return false
	}
	return l.QtyPerUnit.GreaterThan(decimal.Zero)
}
