package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: el primer sentinel que coincida decide el status.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidRecipe, fiber.StatusBadRequest, "INVALID_RECIPE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{context.DeadlineExceeded, fiber.StatusServiceUnavailable, "TIMEOUT"},
	{context.Canceled, fiber.StatusServiceUnavailable, "TIMEOUT"},
}

// respondError traduce errores de dominio a dto.ErrorResponse. Lo no reconocido es 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := err.Error()
			if m.status == fiber.StatusUnauthorized {
				msg = "credenciales inválidas"
			}
			if m.status == fiber.StatusServiceUnavailable {
				msg = "la operación no se completó a tiempo"
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
