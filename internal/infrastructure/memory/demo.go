package memory

import (
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DemoZoneNames nombres de rol de las zonas que crea SeedDemo.
type DemoZoneNames struct {
	Materials string
	Semis     string
	Finished  string
}

// SeedDemo carga una bodega con sus tres zonas virtuales y un catálogo mínimo:
// P1 = 2 x M1 + 1 x S1, S1 = 3 x M1. Sirve para levantar la API con DB_DRIVER=memory.
func SeedDemo(s *Store, names DemoZoneNames) {
	s.AddZone(entity.Zone{ID: "W1", Name: "Planta principal", Type: entity.ZoneTypePhysical})
	s.AddZone(entity.Zone{ID: "W1-MAT", Name: names.Materials, Type: entity.ZoneTypeVirtual, ParentID: "W1"})
	s.AddZone(entity.Zone{ID: "W1-SEMI", Name: names.Semis, Type: entity.ZoneTypeVirtual, ParentID: "W1"})
	s.AddZone(entity.Zone{ID: "W1-PT", Name: names.Finished, Type: entity.ZoneTypeVirtual, ParentID: "W1"})

	s.AddItem(entity.Item{ID: "M1", Name: "Materia prima 1", Kind: entity.ItemKindMaterial, UOM: "kg"})
	s.AddItem(entity.Item{ID: "S1", Name: "Semielaborado 1", Kind: entity.ItemKindSemi, UOM: "und"})
	s.AddItem(entity.Item{ID: "P1", Name: "Producto 1", Kind: entity.ItemKindProduct, UOM: "und"})

	s.SetBom("S1", []entity.BomLine{
		{Kind: entity.BomLineMaterial, RefItemID: "M1", QtyPerUnit: decimal.NewFromInt(3), UOM: "kg"},
	})
	s.SetBom("P1", []entity.BomLine{
		{Kind: entity.BomLineMaterial, RefItemID: "M1", QtyPerUnit: decimal.NewFromInt(2), UOM: "kg"},
		{Kind: entity.BomLineSemi, RefItemID: "S1", QtyPerUnit: decimal.NewFromInt(1), UOM: "und"},
	})

	s.SetBalance("M1", "W1-MAT", decimal.NewFromInt(10))
	s.SetBalance("S1", "W1-SEMI", decimal.NewFromInt(3))
}
