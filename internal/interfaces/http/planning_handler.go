package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/planning"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/shopspring/decimal"
)

// PlanningHandler proyección de cobertura, edición del plan y requerimientos.
type PlanningHandler struct {
	coverage *planning.CoverageUseCase
	plans    *planning.PlanUseCase
	bom      *production.BomService
}

// NewPlanningHandler construye el handler.
func NewPlanningHandler(coverage *planning.CoverageUseCase, plans *planning.PlanUseCase, bom *production.BomService) *PlanningHandler {
	return &PlanningHandler{coverage: coverage, plans: plans, bom: bom}
}

// GetCoverage godoc
// @Summary      Proyección de cobertura
// @Description  Factibilidad por (ítem, día) y días de cobertura por material o semielaborado.
//
//	El orden de item_ids define la prioridad cuando el material no alcanza.
//
// @Tags         planning
// @Produce      json
// @Param        physical_zone_id  query  string  true   "Bodega física"
// @Param        kind              query  string  false  "product (por defecto) o semi"
// @Param        from              query  string  false  "YYYY-MM-DD, por defecto hoy"
// @Param        days              query  int     false  "Días de la ventana"
// @Param        item_ids          query  string  false  "IDs separados por coma"
// @Success      200  {object}  dto.CoverageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/planning/coverage [get]
func (h *PlanningHandler) GetCoverage(c *fiber.Ctx) error {
	physical := c.Query("physical_zone_id")
	if physical == "" {
		return validation(c, "physical_zone_id es requerido")
	}
	var ids []string
	for _, id := range strings.Split(c.Query("item_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	out, err := h.coverage.Project(c.Context(), planning.CoverageQuery{
		PhysicalZoneID: physical,
		Kind:           c.Query("kind"),
		From:           c.Query("from"),
		Days:           c.QueryInt("days", 0),
		ItemIDs:        ids,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePlan godoc
// @Summary      Actualizar plan del día
// @Description  planned_qty se guarda tal cual. Un produced_qty mayor se contabiliza como
//
//	producción de la diferencia; uno menor responde 409 PRODUCED_DECREASE.
//
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Usuario"
// @Param        body  body  dto.UpdatePlanRequest  true  "Ítem, fecha y cantidades"
// @Success      200   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/planning/plan [put]
func (h *PlanningHandler) UpdatePlan(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ItemID == "" || in.Date == "" {
		return validation(c, "item_id y date son requeridos")
	}
	if in.PlannedQty == nil && in.ProducedQty == nil {
		return validation(c, "planned_qty o produced_qty es requerido")
	}
	res, err := h.plans.UpdatePlan(c.Context(), planning.PlanUpdateInput{
		ItemID:         in.ItemID,
		Date:           in.Date,
		PlannedQty:     in.PlannedQty,
		ProducedQty:    in.ProducedQty,
		PhysicalZoneID: in.PhysicalZoneID,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	out := dto.PlanResponse{
		ItemID:      res.Plan.ItemID,
		Date:        res.Plan.Date,
		PlannedQty:  res.Plan.PlannedQty,
		ProducedQty: res.Plan.ProducedQty,
	}
	if res.Posting != nil {
		p := toPostingResponse(res.Posting.Posting, res.Posting.Batch)
		out.Posting = &p
	}
	return c.JSON(out)
}

// GetRequirements godoc
// @Summary      Requerimientos multinivel
// @Tags         planning
// @Produce      json
// @Param        item_id    query  string  true   "Ítem a producir"
// @Param        qty        query  string  true   "Cantidad"
// @Param        max_depth  query  int     false  "Niveles máximos"
// @Success      200  {object}  dto.RequirementsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/planning/requirements [get]
func (h *PlanningHandler) GetRequirements(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	qty, err := decimal.NewFromString(c.Query("qty"))
	if itemID == "" || err != nil {
		return validation(c, "item_id y qty son requeridos")
	}
	req, err := h.bom.Requirements(c.Context(), itemID, qty, c.QueryInt("max_depth", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toRequirementsResponse(itemID, qty, req))
}
