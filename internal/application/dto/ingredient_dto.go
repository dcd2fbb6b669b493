package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Stock           decimal.Decimal `json:"stock"`
	CaloriesPerUnit decimal.Decimal `json:"calories_per_unit"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
}

// IngredientResponse salida de un ingrediente.
type IngredientResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Stock           decimal.Decimal `json:"stock"`
	CaloriesPerUnit decimal.Decimal `json:"calories_per_unit"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
