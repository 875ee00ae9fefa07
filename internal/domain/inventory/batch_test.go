package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balances(pairs ...any) map[entity.StockKey]*entity.StockBalance {
	out := make(map[entity.StockKey]*entity.StockBalance)
	for i := 0; i < len(pairs); i += 3 {
		k := entity.StockKey{ItemID: pairs[i].(string), ZoneID: pairs[i+1].(string)}
		out[k] = &entity.StockBalance{ItemID: k.ItemID, ZoneID: k.ZoneID, Quantity: d(pairs[i+2].(string))}
	}
	return out
}

func TestSortedKeys_UnicasYOrdenadas(t *testing.T) {
	keys := SortedKeys([]entity.LedgerEntry{
		{ItemID: "B", ZoneID: "Z2", Delta: d("1")},
		{ItemID: "A", ZoneID: "Z2", Delta: d("1")},
		{ItemID: "C", ZoneID: "Z1", Delta: d("1")},
		{ItemID: "B", ZoneID: "Z2", Delta: d("-1")},
	})
	assert.Equal(t, []entity.StockKey{
		{ItemID: "C", ZoneID: "Z1"},
		{ItemID: "A", ZoneID: "Z2"},
		{ItemID: "B", ZoneID: "Z2"},
	}, keys)
}

func TestApplyDeltas_Exito(t *testing.T) {
	now := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	current := balances("M1", "ZM", "10", "S1", "ZS", "3")

	updated, err := ApplyDeltas(current, []entity.LedgerEntry{
		{ItemID: "P1", ZoneID: "ZP", Delta: d("3")},
		{ItemID: "M1", ZoneID: "ZM", Delta: d("-6")},
		{ItemID: "S1", ZoneID: "ZS", Delta: d("-3")},
	}, now)
	require.NoError(t, err)

	got := map[string]string{}
	for _, b := range updated {
		got[b.ItemID] = b.Quantity.String()
		assert.Equal(t, now, b.UpdatedAt)
	}
	assert.Equal(t, map[string]string{"P1": "3", "M1": "4", "S1": "0"}, got)
}

func TestApplyDeltas_RechazaTodoYReportaCadaFaltante(t *testing.T) {
	current := balances("M1", "ZM", "10", "S1", "ZS", "3")

	updated, err := ApplyDeltas(current, []entity.LedgerEntry{
		{ItemID: "P1", ZoneID: "ZP", Delta: d("4")},
		{ItemID: "M1", ZoneID: "ZM", Delta: d("-8")},
		{ItemID: "S1", ZoneID: "ZS", Delta: d("-4")},
		{ItemID: "X", ZoneID: "ZM", Delta: d("-1")},
	}, time.Now())

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	require.Len(t, short.Shortages, 2)
	assert.Equal(t, "X", short.Shortages[0].ItemID)
	assert.True(t, short.Shortages[0].Available.IsZero())
	assert.Equal(t, "S1", short.Shortages[1].ItemID)
	assert.True(t, short.Shortages[1].Needed.Equal(d("4")))
	assert.True(t, short.Shortages[1].Missing().Equal(d("1")))

	// los saldos de entrada no se tocan
	assert.True(t, current[entity.StockKey{ItemID: "M1", ZoneID: "ZM"}].Quantity.Equal(d("10")))
}

func TestApplyDeltas_NetoPorLlave(t *testing.T) {
	current := balances("M1", "ZM", "1")
	// -3 y +2 sobre la misma llave: neto -1, deja el saldo en cero
	updated, err := ApplyDeltas(current, []entity.LedgerEntry{
		{ItemID: "M1", ZoneID: "ZM", Delta: d("-3")},
		{ItemID: "M1", ZoneID: "ZM", Delta: d("2")},
	}, time.Now())
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.True(t, updated[0].Quantity.IsZero())
}

func TestValidateEntries(t *testing.T) {
	assert.ErrorIs(t, ValidateEntries(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateEntries([]entity.LedgerEntry{{ItemID: "A", ZoneID: "Z", Delta: d("0")}}), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateEntries([]entity.LedgerEntry{{ZoneID: "Z", Delta: d("1")}}), domain.ErrInvalidInput)
	assert.NoError(t, ValidateEntries([]entity.LedgerEntry{{ItemID: "A", ZoneID: "Z", Delta: d("-1")}}))
}
