package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionHandler contabilización de producción y recepciones, y anulaciones.
type ProductionHandler struct {
	poster *production.PosterUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(poster *production.PosterUseCase) *ProductionHandler {
	return &ProductionHandler{poster: poster}
}

// PostProduction godoc
// @Summary      Contabilizar producción
// @Description  Suma la cantidad en la zona de salida y descuenta (backflush) los materiales y
//
//	semielaborados de la especificación. Incrementa producedQty del plan del día.
//
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Usuario que contabiliza"
// @Param        body  body  dto.PostProductionRequest  true  "Ítem, cantidad, fecha y zonas"
// @Success      201   {object}  dto.PostingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production/postings [post]
func (h *ProductionHandler) PostProduction(c *fiber.Ctx) error {
	var in dto.PostProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ItemID == "" || in.Date == "" || in.PhysicalZoneID == "" {
		return validation(c, "item_id, date y physical_zone_id son requeridos")
	}
	res, err := h.poster.PostProduction(c.Context(), production.ProductionInput{
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
		Date:     in.Date,
		Zones: inventory.ProductionZones{
			PhysicalZoneID:  in.PhysicalZoneID,
			OutputZoneID:    in.OutputZoneID,
			MaterialsZoneID: in.MaterialsZoneID,
			SemisZoneID:     in.SemisZoneID,
		},
		UserID: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostingResponse(res.Posting, res.Batch))
}

// PostReceipt godoc
// @Summary      Contabilizar recepción
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Usuario que contabiliza"
// @Param        body  body  dto.PostReceiptRequest  true  "Líneas de la recepción"
// @Success      201   {object}  dto.PostingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ProductionHandler) PostReceipt(c *fiber.Ctx) error {
	var in dto.PostReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Lines) == 0 {
		return validation(c, "lines es requerido")
	}
	lines := make([]entity.ReceiptLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.ReceiptLine{ItemID: l.ItemID, ZoneID: l.ZoneID, Quantity: l.Quantity})
	}
	res, err := h.poster.PostReceipt(c.Context(), production.ReceiptInput{
		Date:   in.Date,
		Lines:  lines,
		UserID: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostingResponse(res.Posting, res.Batch))
}

// GetPosting godoc
// @Summary      Obtener documento contabilizado
// @Tags         production
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.PostingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/postings/{id} [get]
func (h *ProductionHandler) GetPosting(c *fiber.Ctx) error {
	doc, err := h.poster.GetPosting(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPostingResponse(doc, nil))
}

// CancelPosting godoc
// @Summary      Anular documento
// @Description  Aplica el lote inverso exacto. Una segunda anulación responde 409 ALREADY_CANCELED.
// @Tags         production
// @Produce      json
// @Param        X-User-ID  header  string  false  "Usuario que anula"
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.PostingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/postings/{id}/cancel [post]
func (h *ProductionHandler) CancelPosting(c *fiber.Ctx) error {
	res, err := h.poster.CancelPosting(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPostingResponse(res.Posting, res.Batch))
}
