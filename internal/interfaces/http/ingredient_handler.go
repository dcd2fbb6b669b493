package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
)

// IngredientHandler administra el pool de ingredientes (solo admin).
type IngredientHandler struct {
	uc *usecase.IngredientUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *usecase.IngredientUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ingrediente
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Ingrediente"
// @Success      201   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ingredientes con stock
// @Tags         ingredients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.IngredientResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
