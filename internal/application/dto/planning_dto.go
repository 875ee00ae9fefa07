package dto

import "github.com/shopspring/decimal"

// CoverageCellDTO factibilidad de una celda (ítem, día) con cantidad planeada.
type CoverageCellDTO struct {
	ItemID       string          `json:"item_id"`
	Date         string          `json:"date"`
	PlannedQty   decimal.Decimal `json:"planned_qty"`
	ProducedQty  decimal.Decimal `json:"produced_qty"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	OK           bool            `json:"ok"`
	MaxBuildable int64           `json:"max_buildable"`
	Reason       string          `json:"reason,omitempty"`
}

// ComponentCoverageDTO días de cobertura de un material o semielaborado.
type ComponentCoverageDTO struct {
	ItemID string          `json:"item_id"`
	OnHand decimal.Decimal `json:"on_hand"`
	Days   int             `json:"days"`
}

// DailyDemandDTO demanda agregada de un componente en un día.
type DailyDemandDTO struct {
	Date      string                     `json:"date"`
	Materials map[string]decimal.Decimal `json:"materials"`
	Semis     map[string]decimal.Decimal `json:"semis"`
}

// CoverageResponse proyección de cobertura para una bodega física.
type CoverageResponse struct {
	PhysicalZoneID string                 `json:"physical_zone_id"`
	Kind           string                 `json:"kind"`
	Today          string                 `json:"today"`
	Dates          []string               `json:"dates"`
	Items          []string               `json:"items"`
	Cells          []CoverageCellDTO      `json:"cells"`
	Coverage       []ComponentCoverageDTO `json:"coverage"`
	Demand         []DailyDemandDTO       `json:"demand"`
}

// UpdatePlanRequest body para PUT /api/planning/plan.
// produced_qty mayor al registrado se contabiliza como producción de la diferencia;
// menor se rechaza (hay que anular el documento de producción).
type UpdatePlanRequest struct {
	ItemID         string           `json:"item_id"`
	Date           string           `json:"date"`
	PlannedQty     *decimal.Decimal `json:"planned_qty,omitempty"`
	ProducedQty    *decimal.Decimal `json:"produced_qty,omitempty"`
	PhysicalZoneID string           `json:"physical_zone_id,omitempty"`
}

// PlanResponse fila del plan después de la actualización.
type PlanResponse struct {
	ItemID      string           `json:"item_id"`
	Date        string           `json:"date"`
	PlannedQty  decimal.Decimal  `json:"planned_qty"`
	ProducedQty decimal.Decimal  `json:"produced_qty"`
	Posting     *PostingResponse `json:"posting,omitempty"`
}

// RequirementLevelDTO requerimientos de un nivel de la explosión multinivel.
type RequirementLevelDTO struct {
	Level     int                        `json:"level"`
	Materials map[string]decimal.Decimal `json:"materials"`
	Semis     map[string]decimal.Decimal `json:"semis"`
}

// RequirementsResponse demanda bruta multinivel de una orden.
type RequirementsResponse struct {
	ItemID    string                     `json:"item_id"`
	Quantity  decimal.Decimal            `json:"quantity"`
	Levels    []RequirementLevelDTO      `json:"levels"`
	Materials map[string]decimal.Decimal `json:"materials"`
	Semis     map[string]decimal.Decimal `json:"semis"`
}
