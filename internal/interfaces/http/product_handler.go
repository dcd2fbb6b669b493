package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
)

// ProductHandler maneja catálogo y métricas derivadas de productos.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	invUC *inventory.InventoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, invUC *inventory.InventoryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, invUC: invUC}
}

// Create godoc
// @Summary      Crear producto con receta
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Producto y receta"
// @Success      201   {object}  dto.ProductDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.Type == "" || len(in.Recipe) == 0 {
		return badRequest(c, "VALIDATION", "name, type y recipe son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite (sin límite si se omite)"
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}   dto.ProductSummary
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calories godoc
// @Summary      Calorías totales de una unidad
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.CaloriesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/calories [get]
func (h *ProductHandler) Calories(c *fiber.Ctx) error {
	id := c.Params("id")
	total, err := h.invUC.Calories(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CaloriesResponse{ID: id, TotalCalories: total})
}

// Profitability godoc
// @Summary      Rentabilidad del producto (estrategia configurada)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProfitabilityResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/profitability [get]
func (h *ProductHandler) Profitability(c *fiber.Ctx) error {
	id := c.Params("id")
	value, err := h.invUC.Profitability(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProfitabilityResponse{ID: id, Profitability: value, Strategy: h.invUC.StrategyName()})
}
