package planning

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
	domplanning "github.com/jhoicas/Produccion-api/internal/domain/planning"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Produccion-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roles = appinventory.ZoneRoles{
	Materials: "Materiales",
	Semis:     "Semielaborados",
	Finished:  "Producto terminado",
}

// lunes
var monday = time.Date(2024, 5, 6, 8, 30, 0, 0, time.UTC)

type testEnv struct {
	store    *memory.Store
	ledger   *appinventory.LedgerUseCase
	plans    *PlanUseCase
	coverage *CoverageUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, memory.DemoZoneNames(roles))
	log := logger.Nop()
	zones := appinventory.NewZoneResolver(store.Zones(), roles)
	ledger := appinventory.NewLedgerUseCase(store, store.Stock(), zones, nil, log)
	bom := production.NewBomService(store.Catalog())
	poster := production.NewPosterUseCase(store, ledger, zones, bom, store.Catalog(), store.Documents(), nil, log)
	cov := NewCoverageUseCase(store.Catalog(), store.Plans(), store.Stock(), zones, Settings{
		HorizonDays:      3,
		GraceWorkingDays: 1,
		Location:         time.UTC,
	})
	cov.now = func() time.Time { return monday }
	return &testEnv{
		store:    store,
		ledger:   ledger,
		plans:    NewPlanUseCase(store, store.Catalog(), poster),
		coverage: cov,
	}
}

func n(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func (e *testEnv) qty(t *testing.T, item, zone string) string {
	t.Helper()
	q, err := e.ledger.GetBalance(context.Background(), item, zone)
	require.NoError(t, err)
	return q.String()
}

func TestUpdatePlan_SoloPlaneado(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.plans.UpdatePlan(context.Background(), PlanUpdateInput{
		ItemID:     "P1",
		Date:       "2024-05-06",
		PlannedQty: ptr(n(5)),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Posting)
	assert.Equal(t, "5", res.Plan.PlannedQty.String())
	assert.True(t, res.Plan.ProducedQty.IsZero())
	assert.Equal(t, "10", env.qty(t, "M1", "W1-MAT"))
}

func TestUpdatePlan_ProducidoMayorContabiliza(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.plans.UpdatePlan(ctx, PlanUpdateInput{
		ItemID:         "P1",
		Date:           "2024-05-06",
		PlannedQty:     ptr(n(5)),
		ProducedQty:    ptr(n(2)),
		PhysicalZoneID: "W1",
		UserID:         "u1",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Posting)
	assert.Equal(t, "2", res.Posting.Posting.Quantity.String())
	assert.Equal(t, "5", res.Plan.PlannedQty.String())
	assert.Equal(t, "2", res.Plan.ProducedQty.String())
	assert.Equal(t, "6", env.qty(t, "M1", "W1-MAT"))
	assert.Equal(t, "1", env.qty(t, "S1", "W1-SEMI"))

	// solo se contabiliza la diferencia
	res, err = env.plans.UpdatePlan(ctx, PlanUpdateInput{
		ItemID:         "P1",
		Date:           "2024-05-06",
		ProducedQty:    ptr(n(3)),
		PhysicalZoneID: "W1",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", res.Posting.Posting.Quantity.String())
	assert.Equal(t, "3", res.Plan.ProducedQty.String())
	assert.Equal(t, "5", res.Plan.PlannedQty.String())
}

func TestUpdatePlan_ProducidoMenorRechazado(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetPlan("P1", "2024-05-06", n(5), n(3))

	_, err := env.plans.UpdatePlan(context.Background(), PlanUpdateInput{
		ItemID:      "P1",
		Date:        "2024-05-06",
		PlannedQty:  ptr(n(8)),
		ProducedQty: ptr(n(1)),
	})
	require.ErrorIs(t, err, domain.ErrProducedDecrease)

	p, err := env.store.Plans().Get(context.Background(), "P1", "2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, "5", p.PlannedQty.String(), "nada se escribe si se rechaza")
	assert.Equal(t, "3", p.ProducedQty.String())
}

func TestUpdatePlan_SinStockNoEscribePlaneado(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetPlan("P1", "2024-05-06", n(1), n(0))

	_, err := env.plans.UpdatePlan(context.Background(), PlanUpdateInput{
		ItemID:         "P1",
		Date:           "2024-05-06",
		PlannedQty:     ptr(n(9)),
		ProducedQty:    ptr(n(4)),
		PhysicalZoneID: "W1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := env.store.Plans().Get(context.Background(), "P1", "2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, "1", p.PlannedQty.String())
}

func TestUpdatePlan_ProducidoConcurrente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var posted int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := env.plans.UpdatePlan(ctx, PlanUpdateInput{
				ItemID:         "P1",
				Date:           "2024-05-06",
				ProducedQty:    ptr(n(1)),
				PhysicalZoneID: "W1",
			})
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, "1", res.Plan.ProducedQty.String())
			if res.Posting != nil {
				atomic.AddInt64(&posted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), posted, "el valor absoluto se contabiliza una sola vez")
	p, err := env.store.Plans().Get(ctx, "P1", "2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ProducedQty.String())
	assert.Equal(t, "8", env.qty(t, "M1", "W1-MAT"))
	assert.Equal(t, "2", env.qty(t, "S1", "W1-SEMI"))
	assert.Equal(t, "1", env.qty(t, "P1", "W1-PT"))
}

func TestUpdatePlan_Validaciones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.plans.UpdatePlan(ctx, PlanUpdateInput{Date: "2024-05-06"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.plans.UpdatePlan(ctx, PlanUpdateInput{ItemID: "P1", Date: "mañana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.plans.UpdatePlan(ctx, PlanUpdateInput{ItemID: "X", Date: "2024-05-06"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.plans.UpdatePlan(ctx, PlanUpdateInput{ItemID: "P1", Date: "2024-05-06", PlannedQty: ptr(n(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCoverage_Productos(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetPlan("P1", "2024-05-06", n(2), n(0))
	env.store.SetPlan("P1", "2024-05-07", n(2), n(0))

	resp, err := env.coverage.Project(context.Background(), CoverageQuery{PhysicalZoneID: "W1"})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-06", resp.Today)
	assert.Equal(t, []string{"2024-05-06", "2024-05-07", "2024-05-08"}, resp.Dates)
	assert.Equal(t, []string{"P1"}, resp.Items)
	require.Len(t, resp.Cells, 2)
	assert.True(t, resp.Cells[0].OK)
	assert.Equal(t, int64(3), resp.Cells[0].MaxBuildable)
	assert.False(t, resp.Cells[1].OK)
	assert.Equal(t, domplanning.ReasonInsufficientStock, resp.Cells[1].Reason)
	assert.Equal(t, int64(1), resp.Cells[1].MaxBuildable)

	require.Len(t, resp.Coverage, 2)
	assert.Equal(t, "S1", resp.Coverage[0].ItemID, "menor cobertura primero")
	assert.Equal(t, 1, resp.Coverage[0].Days)
	assert.Equal(t, "3", resp.Coverage[0].OnHand.String())
	assert.Equal(t, domplanning.InfiniteCoverage, resp.Coverage[1].Days)
	assert.Len(t, resp.Demand, 3)
}

func TestCoverage_Semielaborados(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetPlan("S1", "2024-05-07", n(4), n(0))

	resp, err := env.coverage.Project(context.Background(), CoverageQuery{PhysicalZoneID: "W1", Kind: "semi"})
	require.NoError(t, err)
	require.Len(t, resp.Cells, 1)
	cell := resp.Cells[0]
	assert.Equal(t, "S1", cell.ItemID)
	assert.False(t, cell.OK)
	assert.Equal(t, int64(3), cell.MaxBuildable)
}

func TestCoverage_VencidaLiberaReserva(t *testing.T) {
	env := newTestEnv(t)
	env.store.SetPlan("P1", "2024-05-02", n(1), n(0))

	resp, err := env.coverage.Project(context.Background(), CoverageQuery{
		PhysicalZoneID: "W1",
		From:           "2024-05-01",
		Days:           7,
	})
	require.NoError(t, err)
	require.Len(t, resp.Cells, 1)
	assert.False(t, resp.Cells[0].OK)
	assert.Equal(t, domplanning.ReasonReservationReleased, resp.Cells[0].Reason)
}

func TestCoverage_Validaciones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.coverage.Project(ctx, CoverageQuery{PhysicalZoneID: "W1", Kind: "material"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.coverage.Project(ctx, CoverageQuery{PhysicalZoneID: "W1", From: "05/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.coverage.Project(ctx, CoverageQuery{PhysicalZoneID: "W1-MAT"})
	assert.ErrorIs(t, err, domain.ErrInvalidZone)
}
