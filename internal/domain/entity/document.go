package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento contabilizado.
const (
	DocumentTypeProduction = "production"
	DocumentTypeReceipt    = "receipt"
)

// Estados del documento: draft -> posted -> canceled (terminal).
const (
	DocumentStatusDraft    = "draft"
	DocumentStatusPosted   = "posted"
	DocumentStatusCanceled = "canceled"
)

// CanTransition indica si el cambio de estado está permitido.
func CanTransition(from, to string) bool {
	switch from {
	case DocumentStatusDraft:
		return to == DocumentStatusPosted
	case DocumentStatusPosted:
		return to == DocumentStatusCanceled
	}
	return false
}

// ReceiptLine línea de una recepción: cantidad positiva en una zona virtual.
type ReceiptLine struct {
	ItemID   string
	ZoneID   string
	Quantity decimal.Decimal
}

// ProductionPosting registro inmutable de un evento contabilizado (producción o recepción).
// Anularlo exige un lote inverso nuevo; el lote original nunca se modifica.
type ProductionPosting struct {
	ID              string
	Type            string
	Status          string
	ItemID          string // solo producción
	Quantity        decimal.Decimal
	Date            string // YYYY-MM-DD
	PhysicalZoneID  string
	OutputZoneID    string
	MaterialsZoneID string
	SemisZoneID     string
	Lines           []ReceiptLine // solo recepción
	LedgerBatchID   string
	ReversalBatchID string
	CreatedAt       time.Time
	CreatedBy       string
	CanceledAt      *time.Time
}

// IsCanceled indica si el documento ya fue anulado.
func (p *ProductionPosting) IsCanceled() bool {
	return p.Status == DocumentStatusCanceled
}
