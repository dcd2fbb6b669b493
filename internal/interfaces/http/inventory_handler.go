package http

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain"
)

// InventoryHandler expone venta, reabastecimiento, renovación y el libro de movimientos.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Sell godoc
// @Summary      Vender una unidad
// @Description  Descuenta la receta completa o nada. Falta de stock → 400 con los ingredientes insuficientes.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sell [post]
func (h *InventoryHandler) Sell(c *fiber.Ctx) error {
	out, err := h.uc.Sell(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOperationResponse(out))
}

// Restock godoc
// @Summary      Reabastecer ingredientes de la receta
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "ID del producto"
// @Param        body  body  dto.StockAdjustmentRequest  false  "quantity (entero > 0, por defecto 5)"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	return h.adjust(c, h.uc.DefaultRestockQuantity(), h.uc.Restock)
}

// Renew godoc
// @Summary      Fijar el stock de los ingredientes de la receta
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "ID del producto"
// @Param        body  body  dto.StockAdjustmentRequest  false  "quantity (entero > 0, por defecto 10)"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/renew [post]
func (h *InventoryHandler) Renew(c *fiber.Ctx) error {
	return h.adjust(c, h.uc.DefaultRenewQuantity(), h.uc.Renew)
}

type adjustFunc func(ctx context.Context, productID string, quantity decimal.Decimal, actor string) (*inventory.OperationOutput, error)

func (h *InventoryHandler) adjust(c *fiber.Ctx, def decimal.Decimal, op adjustFunc) error {
	ctx := c.UserContext()
	id := c.Params("id")
	quantity, qErr := parseQuantity(c.Body(), def)
	if qErr != nil {
		// 404 tiene prioridad sobre 400.
		if _, err := h.uc.Product(ctx, id); err != nil {
			return respondError(c, err)
		}
		return respondError(c, qErr)
	}
	out, err := op(ctx, id, quantity, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOperationResponse(out))
}

// Movements godoc
// @Summary      Libro de movimientos del producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.Movements(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			IngredientID:  m.IngredientID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			StockAfter:    m.StockAfter,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// pageParams pagina el historial de movimientos: limit 20 por defecto, máximo 100.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseQuantity lee {"quantity": n} del body. Body vacío, sin quantity o con null → def.
// Solo se acepta un entero JSON positivo: strings, booleanos y fracciones son ErrInvalidQuantity.
func parseQuantity(body []byte, def decimal.Decimal) (decimal.Decimal, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return def, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	raw, ok := fields["quantity"]
	if !ok {
		return def, nil
	}
	raw = bytes.TrimSpace(raw)
	if string(raw) == "null" {
		return def, nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || n <= 0 {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return decimal.NewFromInt(n), nil
}

func toOperationResponse(out *inventory.OperationOutput) dto.OperationResponse {
	resp := dto.OperationResponse{Message: out.Message, ProductID: out.Product.ID}
	for _, ch := range out.Result.Changes {
		resp.Changes = append(resp.Changes, dto.StockChangeDTO{
			IngredientID: ch.IngredientID,
			Before:       ch.Before,
			After:        ch.After,
		})
	}
	return resp
}
