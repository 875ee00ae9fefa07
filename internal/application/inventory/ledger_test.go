package inventory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
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

type countingRecorder struct {
	mu       sync.Mutex
	applied  map[string]int
	rejected map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{applied: map[string]int{}, rejected: map[string]int{}}
}

func (r *countingRecorder) BatchApplied(reason string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[reason]++
}

func (r *countingRecorder) BatchRejected(reason, cause string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[reason+"/"+cause]++
}

func (r *countingRecorder) DocumentPosted(string)   {}
func (r *countingRecorder) DocumentCanceled(string) {}

func n(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func setup(t *testing.T) (*memory.Store, *appinventory.LedgerUseCase, *countingRecorder) {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, memory.DemoZoneNames(roles))
	rec := newCountingRecorder()
	zones := appinventory.NewZoneResolver(store.Zones(), roles)
	return store, appinventory.NewLedgerUseCase(store, store.Stock(), zones, rec, logger.Nop()), rec
}

func balance(t *testing.T, uc *appinventory.LedgerUseCase, item, zone string) decimal.Decimal {
	t.Helper()
	q, err := uc.GetBalance(context.Background(), item, zone)
	require.NoError(t, err)
	return q
}

func TestLedger_GetBalanceSinFilaEsCero(t *testing.T) {
	_, uc, _ := setup(t)
	assert.True(t, balance(t, uc, "P1", "W1-PT").IsZero())

	_, err := uc.GetBalance(context.Background(), "", "W1-PT")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_ApplyBatch_TodoONada(t *testing.T) {
	_, uc, rec := setup(t)
	ctx := context.Background()

	_, err := uc.ApplyBatch(ctx, appinventory.BatchInput{Entries: []entity.LedgerEntry{
		{ItemID: "P1", ZoneID: "W1-PT", Delta: n(1)},
		{ItemID: "M1", ZoneID: "W1-MAT", Delta: n(-11)},
	}})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, balance(t, uc, "P1", "W1-PT").IsZero(), "el tramo positivo no se aplicó")
	assert.True(t, balance(t, uc, "M1", "W1-MAT").Equal(n(10)))
	assert.Equal(t, 1, rec.rejected[entity.BatchReasonAdjustment+"/insufficient_stock"])
	assert.Zero(t, rec.applied[entity.BatchReasonAdjustment])
}

func TestLedger_ApplyBatch_Exito(t *testing.T) {
	store, uc, rec := setup(t)
	ctx := context.Background()

	batch, err := uc.ApplyBatch(ctx, appinventory.BatchInput{
		Reference: "conteo-1",
		UserID:    "u1",
		Entries: []entity.LedgerEntry{
			{ItemID: "M1", ZoneID: "W1-MAT", Delta: n(-10)},
			{ItemID: "M1", ZoneID: "W1-SEMI", Delta: n(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchReasonAdjustment, batch.Reason)
	assert.True(t, balance(t, uc, "M1", "W1-MAT").IsZero())
	assert.True(t, balance(t, uc, "M1", "W1-SEMI").Equal(n(4)))
	assert.Equal(t, 1, rec.applied[entity.BatchReasonAdjustment])

	stored, err := store.Ledger().GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "conteo-1", stored.Reference)
	assert.Len(t, stored.Entries, 2)
}

func TestLedger_RevertBatchEsInversoExacto(t *testing.T) {
	store, uc, _ := setup(t)
	ctx := context.Background()
	before, err := store.Stock().ListByZones(ctx, []string{"W1-MAT", "W1-SEMI", "W1-PT"})
	require.NoError(t, err)

	entries := []entity.LedgerEntry{
		{ItemID: "P1", ZoneID: "W1-PT", Delta: n(2)},
		{ItemID: "M1", ZoneID: "W1-MAT", Delta: n(-4)},
		{ItemID: "S1", ZoneID: "W1-SEMI", Delta: n(-2)},
	}
	_, err = uc.ApplyBatch(ctx, appinventory.BatchInput{Entries: entries})
	require.NoError(t, err)

	rev, err := uc.RevertBatch(ctx, entries, "ajuste", "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchReasonReversal, rev.Reason)

	after, err := store.Stock().ListByZones(ctx, []string{"W1-MAT", "W1-SEMI", "W1-PT"})
	require.NoError(t, err)
	want := map[entity.StockKey]string{}
	for _, b := range before {
		want[b.Key()] = b.Quantity.String()
	}
	for _, b := range after {
		if b.Quantity.IsZero() {
			continue
		}
		assert.Equal(t, want[b.Key()], b.Quantity.String(), "%v", b.Key())
	}
	assert.True(t, balance(t, uc, "P1", "W1-PT").IsZero())
}

func TestLedger_RechazaZonaNoVirtual(t *testing.T) {
	_, uc, rec := setup(t)
	ctx := context.Background()

	_, err := uc.ApplyBatch(ctx, appinventory.BatchInput{Entries: []entity.LedgerEntry{
		{ItemID: "M1", ZoneID: "W1", Delta: n(1)},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidZone)

	_, err = uc.ApplyBatch(ctx, appinventory.BatchInput{Entries: []entity.LedgerEntry{
		{ItemID: "M1", ZoneID: "NO-EXISTE", Delta: n(1)},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidZone)
	assert.Equal(t, 2, rec.rejected[entity.BatchReasonAdjustment+"/invalid_zone"])
}

func TestLedger_RechazaLoteVacioODeltaCero(t *testing.T) {
	_, uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.ApplyBatch(ctx, appinventory.BatchInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ApplyBatch(ctx, appinventory.BatchInput{Entries: []entity.LedgerEntry{
		{ItemID: "M1", ZoneID: "W1-MAT", Delta: decimal.Zero},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListBalances(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_ConcurrenciaNuncaNegativo(t *testing.T) {
	_, uc, _ := setup(t)
	ctx := context.Background()

	var ok, rejected int64
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ApplyBatch(ctx, appinventory.BatchInput{Entries: []entity.LedgerEntry{
				{ItemID: "M1", ZoneID: "W1-MAT", Delta: n(-1)},
			}})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				atomic.AddInt64(&rejected, 1)
				return
			}
			atomic.AddInt64(&ok, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), ok)
	assert.Equal(t, int64(15), rejected)
	assert.True(t, balance(t, uc, "M1", "W1-MAT").IsZero())
}

func TestLedger_ListBalances(t *testing.T) {
	_, uc, _ := setup(t)
	got, err := uc.ListBalances(context.Background(), []string{"W1-SEMI", "W1-MAT"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "W1-MAT", got[0].ZoneID)
	assert.Equal(t, "W1-SEMI", got[1].ZoneID)
}
