package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockChange es el antes/después de un ingrediente dentro de un StockEvent.
type StockChange struct {
	IngredientID string          `json:"ingredient_id"`
	Previous     decimal.Decimal `json:"previous"`
	Current      decimal.Decimal `json:"current"`
}

// StockEvent se publica después de confirmar una operación de inventario.
type StockEvent struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Changes     []StockChange `json:"changes"`
	OccurredAt  time.Time     `json:"occurred_at"`
	Actor       string        `json:"actor,omitempty"`
}
