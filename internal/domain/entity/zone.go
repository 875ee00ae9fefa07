package entity

import "time"

// Tipos de zona.
const (
	ZoneTypePhysical = "physical" // bodega física
	ZoneTypeVirtual  = "virtual"  // zona lógica dentro de una bodega (Materiales, Producto terminado...)
)

// Zone nodo de la jerarquía de dos niveles: bodegas físicas con zonas virtuales.
// Una zona virtual siempre tiene ParentID apuntando a una física; las físicas no tienen padre.
type Zone struct {
	ID        string
	Name      string
	Type      string
	ParentID  string
	CreatedAt time.Time
}

// IsVirtual indica si la zona puede recibir movimientos de stock.
func (z *Zone) IsVirtual() bool {
	return z.Type == ZoneTypeVirtual
}

// BelongsTo indica si la zona virtual cuelga de la bodega física indicada.
func (z *Zone) BelongsTo(physicalID string) bool {
	return z.IsVirtual() && z.ParentID != "" && z.ParentID == physicalID
}
