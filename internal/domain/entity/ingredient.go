package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient es una materia prima con stock compartido entre todos los productos que la usan.
// Stock nunca queda negativo después de un commit.
type Ingredient struct {
	ID              string
	Name            string
	Stock           decimal.Decimal
	CaloriesPerUnit decimal.Decimal
	CostPerUnit     decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
