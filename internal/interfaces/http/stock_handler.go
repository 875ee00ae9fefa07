package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// StockHandler saldos y lotes del libro de inventario.
type StockHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// GetBalance godoc
// @Summary      Saldo de un ítem en una zona
// @Tags         stock
// @Produce      json
// @Param        item_id  query  string  true  "ID del ítem"
// @Param        zone_id  query  string  true  "ID de la zona virtual"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	itemID, zoneID := c.Query("item_id"), c.Query("zone_id")
	if itemID == "" || zoneID == "" {
		return validation(c, "item_id y zone_id son requeridos")
	}
	qty, err := h.ledger.GetBalance(c.Context(), itemID, zoneID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ItemID: itemID, ZoneID: zoneID, Quantity: qty})
}

// ListBalances godoc
// @Summary      Saldos de una o varias zonas
// @Description  Lectura consistente: nunca refleja un lote aplicado a medias.
// @Tags         stock
// @Produce      json
// @Param        zone_id  query  string  true  "IDs de zona separados por coma"
// @Success      200  {object}  dto.BalanceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balances [get]
func (h *StockHandler) ListBalances(c *fiber.Ctx) error {
	var zoneIDs []string
	for _, z := range strings.Split(c.Query("zone_id"), ",") {
		if z = strings.TrimSpace(z); z != "" {
			zoneIDs = append(zoneIDs, z)
		}
	}
	if len(zoneIDs) == 0 {
		return validation(c, "zone_id es requerido")
	}
	list, err := h.ledger.ListBalances(c.Context(), zoneIDs)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.BalanceListResponse{Items: make([]dto.BalanceResponse, 0, len(list)), Total: len(list)}
	for _, b := range list {
		out.Items = append(out.Items, toBalanceResponse(b))
	}
	return c.JSON(out)
}

// ApplyBatch godoc
// @Summary      Aplicar un lote de ajuste
// @Description  Tramos con signo (ajustes de conteo). Todo o nada: si algún saldo quedaría
//
//	negativo responde 409 con el faltante por ítem y zona y nada cambia.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyBatchRequest  true  "Tramos del lote"
// @Success      201   {object}  dto.LedgerBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/batches [post]
func (h *StockHandler) ApplyBatch(c *fiber.Ctx) error {
	var in dto.ApplyBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Entries) == 0 {
		return validation(c, "entries es requerido")
	}
	batch, err := h.ledger.ApplyBatch(c.Context(), inventory.BatchInput{
		Reason:    entity.BatchReasonAdjustment,
		Reference: in.Reference,
		UserID:    GetUserID(c),
		Entries:   toEntries(in.Entries),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}
