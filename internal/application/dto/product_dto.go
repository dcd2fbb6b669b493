package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummary forma pública de un producto en listados y detalle.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Type  string          `json:"type"`
}

// RecipeLineRequest línea de receta al crear un producto.
type RecipeLineRequest struct {
	IngredientID     string          `json:"ingredient_id"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name   string              `json:"name" validate:"required,max=200"`
	Price  decimal.Decimal     `json:"price"`
	Type   string              `json:"type" validate:"required"`
	Recipe []RecipeLineRequest `json:"recipe" validate:"required,min=1"`
}

// RecipeLineResponse línea de receta con datos del ingrediente.
type RecipeLineResponse struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

// ProductDetailResponse salida de la creación de un producto (incluye receta).
type ProductDetailResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Price     decimal.Decimal      `json:"price"`
	Type      string               `json:"type"`
	Recipe    []RecipeLineResponse `json:"recipe"`
	CreatedAt time.Time            `json:"created_at"`
}

// CaloriesResponse salida de GET /api/products/:id/calories.
type CaloriesResponse struct {
	ID            string          `json:"id"`
	TotalCalories decimal.Decimal `json:"total_calories"`
}

// ProfitabilityResponse salida de GET /api/products/:id/profitability.
type ProfitabilityResponse struct {
	ID            string          `json:"id"`
	Profitability decimal.Decimal `json:"profitability"`
	Strategy      string          `json:"strategy"`
}
