package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/inventory"
)

// InventoryHandler ajustes de stock y libro de movimientos.
type InventoryHandler struct {
	uc  *inventory.StockUseCase
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Description  quantity es el stock final (no un delta). Se registra un movimiento con la diferencia.
// @Tags         stock
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity, movement_type (BUY|SELL|ADJUST), reason"
// @Success      200   {object}  dto.ActionResult{data=dto.StockAdjustmentResponse}
// @Failure      400   {object}  dto.ActionResult
// @Failure      404   {object}  dto.ActionResult
// @Router       /api/products/{id}/stock [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err, map[string]string{
			"quantity":      in.Quantity.String(),
			"movement_type": in.MovementType,
			"reason":        in.Reason,
		})
	}
	return c.JSON(dto.OK(out))
}

// ProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ActionResult{data=[]dto.StockMovementResponse}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ProductMovements(c *fiber.Ctx) error {
	out, err := h.uc.ProductMovements(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}

// Movements godoc
// @Summary      Movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        type      query  string  false  "BUY | SELL | ADJUST"
// @Param        page      query  int     false  "Página"           default(1)
// @Param        per_page  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.ActionResult{data=dto.MovementListResponse}
// @Router       /api/stock/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.UserContext(), dto.MovementFilter{
		Type:        c.Query("type"),
		PageRequest: pageRequest(c),
	})
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}

// Overview godoc
// @Summary      Resumen de inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=dto.StockOverviewResponse}
// @Router       /api/stock/overview [get]
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}

// Reconciliation godoc
// @Summary      Conciliación stock / libro de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionResult{data=dto.ReconciliationResponse}
// @Router       /api/stock/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	out, err := h.uc.Reconciliation(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}
