package planning

import (
	"testing"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func line(parent, kind, ref string, qty int64) entity.BomLine {
	return entity.BomLine{ParentItemID: parent, Kind: kind, RefItemID: ref, QtyPerUnit: q(qty)}
}

func plan(item, date string, planned, produced int64) *entity.PlannedQuantity {
	return &entity.PlannedQuantity{ItemID: item, Date: date, PlannedQty: q(planned), ProducedQty: q(produced)}
}

// P1 = 2×M1 + 1×S1 con M1=10, S1=3; hoy lunes 2024-05-06.
func baseInput() Input {
	monday := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	return Input{
		From:             monday,
		Days:             3,
		Today:            monday,
		GraceWorkingDays: 1,
		Items:            []string{"P1"},
		Balances:         map[string]decimal.Decimal{"M1": q(10), "S1": q(3)},
		Boms: map[string][]entity.BomLine{
			"P1": {line("P1", entity.BomLineMaterial, "M1", 2), line("P1", entity.BomLineSemi, "S1", 1)},
		},
	}
}

func TestProject_AgotamientoDiaADia(t *testing.T) {
	in := baseInput()
	in.Plans = []*entity.PlannedQuantity{plan("P1", "2024-05-06", 2, 0), plan("P1", "2024-05-07", 2, 0)}

	out := Project(in)

	first := out.Cells[CellKey{ItemID: "P1", Date: "2024-05-06"}]
	assert.True(t, first.OK)
	assert.Equal(t, int64(3), first.MaxBuildable)
	assert.Empty(t, first.Reason)

	second := out.Cells[CellKey{ItemID: "P1", Date: "2024-05-07"}]
	assert.False(t, second.OK)
	assert.Equal(t, int64(1), second.MaxBuildable)
	assert.Equal(t, ReasonInsufficientStock, second.Reason)

	assert.Equal(t, 1, out.Coverage["S1"])
	assert.Equal(t, InfiniteCoverage, out.Coverage["M1"])
	assert.True(t, out.DailyMaterialDemand["2024-05-06"]["M1"].Equal(q(4)))
	assert.True(t, out.DailySemiDemand["2024-05-07"]["S1"].Equal(q(2)))
	assert.Equal(t, []string{"2024-05-06", "2024-05-07", "2024-05-08"}, out.Dates)
}

func TestProject_RacionamientoPorOrdenDeFila(t *testing.T) {
	in := baseInput()
	in.Items = []string{"A", "B"}
	in.Balances = map[string]decimal.Decimal{"M1": q(1)}
	in.Boms = map[string][]entity.BomLine{
		"A": {line("A", entity.BomLineMaterial, "M1", 1)},
		"B": {line("B", entity.BomLineMaterial, "M1", 1)},
	}
	in.Plans = []*entity.PlannedQuantity{plan("A", "2024-05-06", 1, 0), plan("B", "2024-05-06", 1, 0)}

	out := Project(in)
	assert.True(t, out.Cells[CellKey{ItemID: "A", Date: "2024-05-06"}].OK)
	assert.False(t, out.Cells[CellKey{ItemID: "B", Date: "2024-05-06"}].OK)

	in.Items = []string{"B", "A"}
	out = Project(in)
	assert.True(t, out.Cells[CellKey{ItemID: "B", Date: "2024-05-06"}].OK)
	assert.False(t, out.Cells[CellKey{ItemID: "A", Date: "2024-05-06"}].OK)
}

func TestProject_VencidasSiempreNoDisponibles(t *testing.T) {
	in := baseInput()
	in.From = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	in.Days = 6
	in.Items = []string{"P1", "P2"}
	in.Balances = map[string]decimal.Decimal{"M1": q(1000), "S1": q(1000)}
	in.Boms["P2"] = in.Boms["P1"]
	in.Plans = []*entity.PlannedQuantity{
		plan("P1", "2024-05-02", 5, 0), // antes del corte (viernes 03), sin producir
		plan("P2", "2024-05-02", 5, 1), // parcialmente producida: no vence
		plan("P1", "2024-05-03", 1, 0), // dentro de la gracia
	}

	out := Project(in)

	overdue := out.Cells[CellKey{ItemID: "P1", Date: "2024-05-02"}]
	assert.False(t, overdue.OK)
	assert.Equal(t, ReasonReservationReleased, overdue.Reason)
	assert.True(t, overdue.Outstanding.Equal(q(5)))

	assert.True(t, out.Cells[CellKey{ItemID: "P2", Date: "2024-05-02"}].OK)
	assert.True(t, out.Cells[CellKey{ItemID: "P1", Date: "2024-05-03"}].OK)

	// la demanda vencida no consume material
	assert.True(t, out.DailyMaterialDemand["2024-05-02"]["M1"].Equal(q(8)), "solo P2: 4 × 2")
}

func TestProject_SinEspecificacionYProducida(t *testing.T) {
	in := baseInput()
	in.Items = []string{"X", "P1"}
	in.Plans = []*entity.PlannedQuantity{
		plan("X", "2024-05-06", 3, 0),
		plan("P1", "2024-05-06", 2, 2),
		plan("P1", "2024-05-07", 0, 0),
	}

	out := Project(in)

	noSpec := out.Cells[CellKey{ItemID: "X", Date: "2024-05-06"}]
	assert.False(t, noSpec.OK)
	assert.Equal(t, ReasonNoSpecification, noSpec.Reason)

	done := out.Cells[CellKey{ItemID: "P1", Date: "2024-05-06"}]
	assert.True(t, done.OK)
	assert.Equal(t, ReasonProduced, done.Reason)
	assert.Equal(t, int64(3), done.MaxBuildable)

	_, ok := out.Cells[CellKey{ItemID: "P1", Date: "2024-05-07"}]
	assert.False(t, ok, "celdas sin cantidad planeada no se evalúan")
}

func TestProject_CoberturaDesdeHoy(t *testing.T) {
	in := baseInput()
	in.From = time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC) // viernes, dentro de la gracia
	in.Days = 6
	in.Plans = []*entity.PlannedQuantity{
		plan("P1", "2024-05-03", 1, 0),
		plan("P1", "2024-05-06", 1, 0),
		plan("P1", "2024-05-07", 1, 0),
		plan("P1", "2024-05-08", 1, 0),
	}

	out := Project(in)
	// el índice cuenta desde hoy, pero el viernes reservado ya gastó una unidad de S1
	assert.Equal(t, 2, out.Coverage["S1"])
	assert.Equal(t, InfiniteCoverage, out.Coverage["M1"])

	// la simulación de celdas coincide: el miércoles (índice 2) es el primero sin stock
	assert.True(t, out.Cells[CellKey{ItemID: "P1", Date: "2024-05-03"}].OK)
	assert.True(t, out.Cells[CellKey{ItemID: "P1", Date: "2024-05-07"}].OK)
	wed := out.Cells[CellKey{ItemID: "P1", Date: "2024-05-08"}]
	assert.False(t, wed.OK)
	assert.Equal(t, int64(0), wed.MaxBuildable)
}

func TestProject_ReservaEnGraciaAgotaAntesDeHoy(t *testing.T) {
	in := baseInput()
	in.From = time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	in.Days = 4
	in.Plans = []*entity.PlannedQuantity{plan("P1", "2024-05-03", 4, 0)}

	out := Project(in)
	assert.Equal(t, 0, out.Coverage["S1"], "4 reservadas contra 3 disponibles")
	assert.Equal(t, InfiniteCoverage, out.Coverage["M1"])
	assert.False(t, out.Cells[CellKey{ItemID: "P1", Date: "2024-05-03"}].OK)
}

func TestProject_SinDisponibleCoberturaCero(t *testing.T) {
	in := baseInput()
	in.Balances = map[string]decimal.Decimal{"M1": q(10)}
	in.Plans = []*entity.PlannedQuantity{plan("P1", "2024-05-07", 1, 0)}

	out := Project(in)
	assert.Equal(t, 0, out.Coverage["S1"])
	assert.True(t, out.OnHand["S1"].IsZero())
	assert.Equal(t, InfiniteCoverage, out.Coverage["M1"])
}

func TestProject_Monotonia(t *testing.T) {
	coverage := func(m1, s1 int64, planned int64) (int, int) {
		in := baseInput()
		in.Days = 10
		in.Balances = map[string]decimal.Decimal{"M1": q(m1), "S1": q(s1)}
		for _, d := range DateRange(in.From, in.Days) {
			in.Plans = append(in.Plans, plan("P1", d, planned, 0))
		}
		out := Project(in)
		return out.Coverage["M1"], out.Coverage["S1"]
	}

	prevM, prevS := coverage(0, 0, 2)
	for stock := int64(1); stock <= 40; stock += 3 {
		m, s := coverage(stock, stock, 2)
		assert.GreaterOrEqual(t, m, prevM, "más stock no baja la cobertura de M1")
		assert.GreaterOrEqual(t, s, prevS, "más stock no baja la cobertura de S1")
		prevM, prevS = m, s
	}

	prevM, prevS = coverage(20, 20, 0)
	for demand := int64(1); demand <= 6; demand++ {
		m, s := coverage(20, 20, demand)
		assert.LessOrEqual(t, m, prevM, "más demanda no sube la cobertura de M1")
		assert.LessOrEqual(t, s, prevS, "más demanda no sube la cobertura de S1")
		prevM, prevS = m, s
	}
}

func TestProject_EsPura(t *testing.T) {
	in := baseInput()
	in.Plans = []*entity.PlannedQuantity{plan("P1", "2024-05-06", 3, 0)}

	a := Project(in)
	b := Project(in)
	require.Equal(t, a.Cells, b.Cells)
	assert.True(t, in.Balances["M1"].Equal(q(10)), "los saldos de entrada no se modifican")
}
