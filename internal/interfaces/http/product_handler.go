package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/usecase"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
)

// ProductHandler catálogo de productos (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log zerolog.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// pageRequest lee page y per_page; Normalize se aplica en el caso de uso.
func pageRequest(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 1), PerPage: c.QueryInt("per_page", dto.DefaultPerPage)}
}

// List godoc
// @Summary      Listar productos
// @Description  Búsqueda en nombre y descripción (sin distinguir mayúsculas), filtro de stock y paginación.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Texto a buscar"
// @Param        stock     query  string  false  "in_stock | low_stock | out_of_stock"
// @Param        page      query  int     false  "Página"          default(1)
// @Param        per_page  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.ActionResult{data=dto.ProductListResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out := h.uc.List(c.UserContext(), dto.ProductFilter{
		Search:      c.Query("search"),
		Stock:       c.Query("stock"),
		PageRequest: pageRequest(c),
	})
	return c.JSON(dto.OK(out))
}

// Stats godoc
// @Summary      Estadísticas del catálogo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto a buscar"
// @Param        stock   query  string  false  "in_stock | low_stock | out_of_stock"
// @Success      200  {object}  dto.ActionResult{data=dto.ProductStatsResponse}
// @Router       /api/products/stats [get]
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.OK(h.uc.Stats(c.UserContext(), c.Query("search"), c.Query("stock"))))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (incluido)"  default(10)
// @Success      200  {object}  dto.ActionResult{data=[]dto.ProductResponse}
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", inventory.LowStockThreshold)
	return c.JSON(dto.OK(h.uc.LowStock(c.UserContext(), threshold)))
}

// Export godoc
// @Summary      Exportar productos a PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        search  query  string  false  "Texto a buscar"
// @Param        stock   query  string  false  "in_stock | low_stock | out_of_stock"
// @Success      200  {file}  binary
// @Router       /api/products/export.pdf [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.UserContext(), GetActor(c), c.Query("search"), c.Query("stock"))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(out.FileName)
	return c.Send(out.Content)
}

// Get godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ActionResult{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ActionResult
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, h.log, err, nil)
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Crear producto
// @Description  Acepta JSON o formulario. Si stock_qty > 0 registra el movimiento ADJUST de apertura.
// @Tags         products
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.ProductForm  true  "name, description, buy_price, stock_qty"
// @Success      201   {object}  dto.ActionResult{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ActionResult
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return fail(c, h.log, err, in.Values())
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path  string          true  "ID del producto"
// @Param        body  body  dto.ProductForm  true  "name, description, buy_price, stock_qty"
// @Success      200   {object}  dto.ActionResult{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ActionResult
// @Failure      404   {object}  dto.ActionResult
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err, in.Values())
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Falla con 409 si el producto figura en alguna venta.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ActionResult
// @Failure      404  {object}  dto.ActionResult
// @Failure      409  {object}  dto.ActionResult
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return fail(c, h.log, err, nil)
	}
	res := dto.RedirectTo("/products")
	res.Message = "producto eliminado"
	return c.JSON(res)
}
