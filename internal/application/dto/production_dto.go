package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostProductionRequest body para POST /api/production/postings.
// Las zonas vacías se resuelven por nombre de rol bajo physical_zone_id.
type PostProductionRequest struct {
	ItemID          string          `json:"item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Date            string          `json:"date"`
	PhysicalZoneID  string          `json:"physical_zone_id"`
	OutputZoneID    string          `json:"output_zone_id,omitempty"`
	MaterialsZoneID string          `json:"materials_zone_id,omitempty"`
	SemisZoneID     string          `json:"semis_zone_id,omitempty"`
}

// ReceiptLineDTO línea de recepción.
type ReceiptLineDTO struct {
	ItemID   string          `json:"item_id"`
	ZoneID   string          `json:"zone_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PostReceiptRequest body para POST /api/receipts.
type PostReceiptRequest struct {
	Date  string           `json:"date,omitempty"`
	Lines []ReceiptLineDTO `json:"lines"`
}

// PostingResponse documento contabilizado (producción o recepción).
type PostingResponse struct {
	ID              string               `json:"id"`
	Type            string               `json:"type"`
	Status          string               `json:"status"`
	ItemID          string               `json:"item_id,omitempty"`
	Quantity        decimal.Decimal      `json:"quantity"`
	Date            string               `json:"date"`
	PhysicalZoneID  string               `json:"physical_zone_id,omitempty"`
	OutputZoneID    string               `json:"output_zone_id,omitempty"`
	MaterialsZoneID string               `json:"materials_zone_id,omitempty"`
	SemisZoneID     string               `json:"semis_zone_id,omitempty"`
	Lines           []ReceiptLineDTO     `json:"lines,omitempty"`
	LedgerBatchID   string               `json:"ledger_batch_id"`
	ReversalBatchID string               `json:"reversal_batch_id,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	CanceledAt      *time.Time           `json:"canceled_at,omitempty"`
	Batch           *LedgerBatchResponse `json:"batch,omitempty"`
}
