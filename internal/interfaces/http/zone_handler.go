package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
)

// ZoneHandler consulta de la jerarquía de zonas.
type ZoneHandler struct {
	zones *inventory.ZoneResolver
}

// NewZoneHandler construye el handler.
func NewZoneHandler(zones *inventory.ZoneResolver) *ZoneHandler {
	return &ZoneHandler{zones: zones}
}

// ListUnder godoc
// @Summary      Zonas virtuales de una bodega física
// @Tags         zones
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega física"
// @Success      200  {object}  dto.ZoneListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/zones/{id}/zones [get]
func (h *ZoneHandler) ListUnder(c *fiber.Ctx) error {
	list, err := h.zones.ListUnder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ZoneListResponse{Items: make([]dto.ZoneResponse, 0, len(list))}
	for _, z := range list {
		out.Items = append(out.Items, toZoneResponse(z))
	}
	return c.JSON(out)
}
