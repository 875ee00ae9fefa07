package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{DocumentStatusDraft, DocumentStatusPosted, true},
		{DocumentStatusPosted, DocumentStatusCanceled, true},
		{DocumentStatusDraft, DocumentStatusCanceled, false},
		{DocumentStatusCanceled, DocumentStatusPosted, false},
		{DocumentStatusCanceled, DocumentStatusCanceled, false},
		{DocumentStatusPosted, DocumentStatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInverse_MismoOrdenSignoContrario(t *testing.T) {
	in := []LedgerEntry{
		{ItemID: "P1", ZoneID: "ZP", Delta: decimal.NewFromInt(3)},
		{ItemID: "M1", ZoneID: "ZM", Delta: decimal.NewFromInt(-6)},
	}
	out := Inverse(in)
	assert.Equal(t, "P1", out[0].ItemID)
	assert.True(t, out[0].Delta.Equal(decimal.NewFromInt(-3)))
	assert.True(t, out[1].Delta.Equal(decimal.NewFromInt(6)))

	for k, v := range NetDeltas(append(in, out...)) {
		assert.True(t, v.IsZero(), "llave %v", k)
	}
}

func TestOutstanding(t *testing.T) {
	p := &PlannedQuantity{PlannedQty: decimal.NewFromInt(5), ProducedQty: decimal.NewFromInt(2)}
	assert.True(t, p.Outstanding().Equal(decimal.NewFromInt(3)))

	p.ProducedQty = decimal.NewFromInt(7)
	assert.True(t, p.Outstanding().IsZero())
}

func TestZoneBelongsTo(t *testing.T) {
	v := &Zone{ID: "W1-MAT", Type: ZoneTypeVirtual, ParentID: "W1"}
	assert.True(t, v.IsVirtual())
	assert.True(t, v.BelongsTo("W1"))
	assert.False(t, v.BelongsTo("W2"))

	p := &Zone{ID: "W1", Type: ZoneTypePhysical}
	assert.False(t, p.BelongsTo("W1"))
}
