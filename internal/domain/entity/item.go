package entity

// Tipos de ítem del catálogo.
const (
	ItemKindMaterial = "material" // materia prima
	ItemKindSemi     = "semi"     // semielaborado
	ItemKindProduct  = "product"  // producto terminado
)

// Item identidad de catálogo (solo lectura para el núcleo). Kind no cambia después de creado.
type Item struct {
	ID   string
	Name string
	Kind string
	UOM  string // unidad de medida
}

// IsProducible indica si el ítem puede tener especificación propia.
func (i *Item) IsProducible() bool {
	return i.Kind == ItemKindSemi || i.Kind == ItemKindProduct
}

// ValidItemKind valida el tipo de ítem.
func ValidItemKind(kind string) bool {
	switch kind {
	case ItemKindMaterial, ItemKindSemi, ItemKindProduct:
		return true
	}
	return false
}
