package planning

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InfiniteCoverage centinela: el stock alcanza más allá de la ventana proyectada.
const InfiniteCoverage = 999

// Motivos de una celda no disponible (o disponible por estar ya producida).
const (
	ReasonInsufficientStock   = "insufficient_stock"
	ReasonNoSpecification     = "no_specification"
	ReasonReservationReleased = "reservation_released"
	ReasonProduced            = "produced"
)

// CellKey identifica una celda (ítem, día) de la grilla de planeación.
type CellKey struct {
	ItemID string
	Date   string
}

// CellResult resultado de factibilidad de una celda.
type CellResult struct {
	OK           bool
	MaxBuildable int64
	Outstanding  decimal.Decimal
	Reason       string
}

// Input datos explícitos de la proyección. Items define el orden de fila: con material
// escaso, el ítem evaluado primero en un día se queda con el stock (racionamiento FIFO).
type Input struct {
	From             time.Time
	Days             int
	Today            time.Time
	GraceWorkingDays int
	Items            []string
	Plans            []*entity.PlannedQuantity
	Balances         map[string]decimal.Decimal // disponible por componente (material o semi)
	Boms             map[string][]entity.BomLine
}

// Projection salida de Project.
type Projection struct {
	Dates               []string
	Cells               map[CellKey]CellResult
	Coverage            map[string]int // días de cobertura por material/semi
	OnHand              map[string]decimal.Decimal
	DailyMaterialDemand map[string]map[string]decimal.Decimal
	DailySemiDemand     map[string]map[string]decimal.Decimal
}

// Project función pura: no lee repositorios ni estado global.
func Project(in Input) Projection {
	dates := DateRange(in.From, in.Days)
	today := FormatDate(Day(in.Today))
	cutoff := FormatDate(GraceCutoff(in.Today, in.GraceWorkingDays))

	plans := make(map[CellKey]*entity.PlannedQuantity, len(in.Plans))
	for _, p := range in.Plans {
		plans[CellKey{ItemID: p.ItemID, Date: p.Date}] = p
	}
	perUnit := make(map[string][]inventory.Requirement, len(in.Items))
	for _, id := range in.Items {
		perUnit[id] = inventory.PerUnit(in.Boms[id])
	}
	overdue := func(p *entity.PlannedQuantity) bool {
		return p.Date < cutoff && p.ProducedQty.IsZero()
	}

	out := Projection{
		Dates:               dates,
		Cells:               make(map[CellKey]CellResult),
		Coverage:            make(map[string]int),
		OnHand:              make(map[string]decimal.Decimal),
		DailyMaterialDemand: make(map[string]map[string]decimal.Decimal, len(dates)),
		DailySemiDemand:     make(map[string]map[string]decimal.Decimal, len(dates)),
	}

	// 1. Demanda agregada por día.
	for _, date := range dates {
		mats := make(map[string]decimal.Decimal)
		semis := make(map[string]decimal.Decimal)
		for _, id := range in.Items {
			p := plans[CellKey{ItemID: id, Date: date}]
			if p == nil || overdue(p) {
				continue
			}
			rest := p.Outstanding()
			if !rest.IsPositive() {
				continue
			}
			exp := inventory.Explode(in.Boms[id], rest)
			for k, v := range exp.Materials {
				mats[k] = mats[k].Add(v)
			}
			for k, v := range exp.Semis {
				semis[k] = semis[k].Add(v)
			}
		}
		out.DailyMaterialDemand[date] = mats
		out.DailySemiDemand[date] = semis
	}

	// 2. Días de cobertura desde hoy, contando lo reservado en la gracia.
	components := make(map[string]struct{}, len(in.Balances))
	for id := range in.Balances {
		components[id] = struct{}{}
	}
	for _, date := range dates {
		for id := range out.DailyMaterialDemand[date] {
			components[id] = struct{}{}
		}
		for id := range out.DailySemiDemand[date] {
			components[id] = struct{}{}
		}
	}
	for id := range components {
		out.OnHand[id] = in.Balances[id]
		out.Coverage[id] = daysOfCoverage(id, in.Balances[id], dates, today, out)
	}

	// 3-5. Simulación de agotamiento día a día con buffers compartidos.
	buffers := make(map[string]decimal.Decimal, len(in.Balances))
	for id, qty := range in.Balances {
		buffers[id] = qty
	}
	available := func(id string) decimal.Decimal { return buffers[id] }

	for _, date := range dates {
		for _, id := range in.Items {
			key := CellKey{ItemID: id, Date: date}
			p := plans[key]
			if p == nil || !p.PlannedQty.IsPositive() {
				continue
			}
			rest := p.Outstanding()
			if overdue(p) {
				out.Cells[key] = CellResult{OK: false, Outstanding: rest, Reason: ReasonReservationReleased}
				continue
			}
			reqs := perUnit[id]
			if len(reqs) == 0 {
				out.Cells[key] = CellResult{OK: false, Outstanding: rest, Reason: ReasonNoSpecification}
				continue
			}
			maxQty := inventory.MaxBuildable(reqs, available)
			if rest.IsZero() {
				out.Cells[key] = CellResult{OK: true, MaxBuildable: maxQty.IntPart(), Reason: ReasonProduced}
				continue
			}
			res := CellResult{OK: rest.LessThanOrEqual(maxQty), MaxBuildable: maxQty.IntPart(), Outstanding: rest}
			if !res.OK {
				res.Reason = ReasonInsufficientStock
			}
			out.Cells[key] = res

			built := decimal.Min(rest, maxQty)
			if built.IsPositive() {
				for _, r := range reqs {
					buffers[r.ItemID] = buffers[r.ItemID].Sub(r.QtyPerUnit.Mul(built))
				}
			}
		}
	}
	return out
}

// daysOfCoverage índice del primer día (desde hoy) en que el consumo acumulado supera el
// disponible; InfiniteCoverage si la ventana termina antes. Disponible <= 0 da 0.
// La demanda de días anteriores a hoy que siguen reservados (dentro de la gracia) se
// descuenta primero, igual que en la simulación de celdas.
func daysOfCoverage(id string, onHand decimal.Decimal, dates []string, today string, p Projection) int {
	if !onHand.IsPositive() {
		return 0
	}
	consumed := decimal.Zero
	idx := 0
	for _, date := range dates {
		consumed = consumed.Add(p.DailyMaterialDemand[date][id]).Add(p.DailySemiDemand[date][id])
		if date < today {
			continue
		}
		if consumed.GreaterThan(onHand) {
			return idx
		}
		idx++
	}
	if consumed.GreaterThan(onHand) {
		return 0
	}
	return InfiniteCoverage
}
