package planning

import (
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// DefaultMaxDepth niveles de anidación de semielaborados que se recorren.
const DefaultMaxDepth = 8

// BomLookup devuelve la especificación de un ítem.
type BomLookup func(itemID string) ([]entity.BomLine, error)

// Requirements demanda bruta multinivel de una orden.
type Requirements struct {
	Levels    []inventory.Explosion      // un elemento por nivel (0 = especificación del ítem pedido)
	Materials map[string]decimal.Decimal // total de materias primas en todos los niveles
	Semis     map[string]decimal.Decimal // total de semielaborados consumidos en todos los niveles
}

// MultiLevel expande nivel por nivel usando inventory.Explode (que es de un solo nivel).
// Un semielaborado que reaparece en su propia cadena devuelve domain.ErrBomCycle.
func MultiLevel(itemID string, qty decimal.Decimal, lookup BomLookup, maxDepth int) (*Requirements, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	req := &Requirements{
		Materials: make(map[string]decimal.Decimal),
		Semis:     make(map[string]decimal.Decimal),
	}
	path := map[string]bool{}
	if err := req.walk(itemID, qty, 0, maxDepth, lookup, path); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Requirements) walk(itemID string, qty decimal.Decimal, depth, maxDepth int, lookup BomLookup, path map[string]bool) error {
	if path[itemID] {
		return fmt.Errorf("%w: %s", domain.ErrBomCycle, itemID)
	}
	lines, err := lookup(itemID)
	if err != nil {
		return err
	}
	exp := inventory.Explode(lines, qty)
	if exp.IsEmpty() {
		return nil
	}
	if depth >= maxDepth {
		return fmt.Errorf("%w: profundidad máxima %d alcanzada en %s", domain.ErrBomCycle, maxDepth, itemID)
	}
	for len(r.Levels) <= depth {
		r.Levels = append(r.Levels, inventory.Explosion{
			Materials: make(map[string]decimal.Decimal),
			Semis:     make(map[string]decimal.Decimal),
		})
	}
	lvl := r.Levels[depth]
	for id, q := range exp.Materials {
		lvl.Materials[id] = lvl.Materials[id].Add(q)
		r.Materials[id] = r.Materials[id].Add(q)
	}
	path[itemID] = true
	defer delete(path, itemID)
	for _, id := range sortedIDs(exp.Semis) {
		q := exp.Semis[id]
		lvl.Semis[id] = lvl.Semis[id].Add(q)
		r.Semis[id] = r.Semis[id].Add(q)
		if err := r.walk(id, q, depth+1, maxDepth, lookup, path); err != nil {
			return err
		}
	}
	return nil
}
