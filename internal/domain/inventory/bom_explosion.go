package inventory

import (
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Explosion requerimientos de un nivel: materiales y semielaborados por ID de ítem.
type Explosion struct {
	Materials map[string]decimal.Decimal
	Semis     map[string]decimal.Decimal
}

// IsEmpty indica que no hubo líneas válidas (ítem sin especificación).
func (e Explosion) IsEmpty() bool {
	return len(e.Materials) == 0 && len(e.Semis) == 0
}

// Explode calcula qtyPerUnit × qty por línea y agrega por RefItemID.
// Un solo nivel: los semielaborados se devuelven como demanda
// sobre el semi, no se expanden a sus propias materias primas.
// Las líneas inválidas se ignoran; sin líneas válidas el resultado es vacío (no error).
func Explode(lines []entity.BomLine, qty decimal.Decimal) Explosion {
	out := Explosion{
		Materials: make(map[string]decimal.Decimal),
		Semis:     make(map[string]decimal.Decimal),
	}
	for i := range lines {
		l := &lines[i]
		if !l.Valid() {
			continue
		}
		req := l.QtyPerUnit.Mul(qty)
		switch l.Kind {
		case entity.BomLineMaterial:
			out.Materials[l.RefItemID] = out.Materials[l.RefItemID].Add(req)
		case entity.BomLineSemi:
			out.Semis[l.RefItemID] = out.Semis[l.RefItemID].Add(req)
		}
	}
	return out
}

// Requirement componente con su consumo por unidad producida (ya agregado).
type Requirement struct {
	ItemID     string
	Kind       string
	QtyPerUnit decimal.Decimal
}

// PerUnit devuelve las líneas agregadas por componente en orden estable (materiales primero).
func PerUnit(lines []entity.BomLine) []Requirement {
	exp := Explode(lines, decimal.NewFromInt(1))
	reqs := make([]Requirement, 0, len(exp.Materials)+len(exp.Semis))
	for _, id := range sortedKeys(exp.Materials) {
		reqs = append(reqs, Requirement{ItemID: id, Kind: entity.BomLineMaterial, QtyPerUnit: exp.Materials[id]})
	}
	for _, id := range sortedKeys(exp.Semis) {
		reqs = append(reqs, Requirement{ItemID: id, Kind: entity.BomLineSemi, QtyPerUnit: exp.Semis[id]})
	}
	return reqs
}

// MaxBuildable floor(min(disponible / qtyPerUnit)) sobre todos los componentes.
// Disponibles negativos cuentan como cero. Sin requerimientos devuelve cero.
func MaxBuildable(reqs []Requirement, available func(itemID string) decimal.Decimal) decimal.Decimal {
	if len(reqs) == 0 {
		return decimal.Zero
	}
	var best decimal.Decimal
	for i, r := range reqs {
		have := available(r.ItemID)
		if have.IsNegative() {
			have = decimal.Zero
		}
		n := have.Div(r.QtyPerUnit).Floor()
		if i == 0 || n.LessThan(best) {
			best = n
		}
	}
	return best
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
