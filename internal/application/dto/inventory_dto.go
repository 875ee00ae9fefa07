package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryDTO tramo de un lote (delta positivo = entrada, negativo = consumo).
type LedgerEntryDTO struct {
	ItemID string          `json:"item_id"`
	ZoneID string          `json:"zone_id"`
	Delta  decimal.Decimal `json:"delta"`
}

// ApplyBatchRequest body para POST /api/stock/batches (ajustes de conteo).
type ApplyBatchRequest struct {
	Reference string           `json:"reference"`
	Entries   []LedgerEntryDTO `json:"entries"`
}

// LedgerBatchResponse lote aplicado.
type LedgerBatchResponse struct {
	ID        string           `json:"id"`
	Reason    string           `json:"reason"`
	Reference string           `json:"reference,omitempty"`
	Entries   []LedgerEntryDTO `json:"entries"`
	CreatedAt time.Time        `json:"created_at"`
}

// BalanceResponse saldo de un ítem en una zona.
type BalanceResponse struct {
	ItemID    string          `json:"item_id"`
	ZoneID    string          `json:"zone_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// BalanceListResponse saldos de una o varias zonas.
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
	Total int               `json:"total"`
}

// ShortageDTO faltante de un tramo (stock insuficiente).
type ShortageDTO struct {
	ItemID    string          `json:"item_id"`
	ZoneID    string          `json:"zone_id"`
	Needed    decimal.Decimal `json:"needed"`
	Available decimal.Decimal `json:"available"`
	Missing   decimal.Decimal `json:"missing"`
}

// InsufficientStockResponse cuerpo 409 con el detalle por ítem y zona.
type InsufficientStockResponse struct {
	Code      string        `json:"code"`
	Message   string        `json:"message"`
	Shortages []ShortageDTO `json:"shortages"`
}
