package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustmentRequest body opcional de restock/renew. Sin quantity se usa el valor por defecto.
type StockAdjustmentRequest struct {
	Quantity *int64 `json:"quantity,omitempty" example:"5"`
}

// OperationResponse salida de sell/restock/renew.
type OperationResponse struct {
	Message   string           `json:"message"`
	ProductID string           `json:"product_id"`
	Changes   []StockChangeDTO `json:"changes,omitempty"`
}

// StockChangeDTO antes/después del stock de un ingrediente.
type StockChangeDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Before       decimal.Decimal `json:"before"`
	After        decimal.Decimal `json:"after"`
}

// MovementResponse fila del libro de movimientos.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	IngredientID  string          `json:"ingredient_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// MovementListResponse página de movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockReportRow fila del reporte de stock.
type StockReportRow struct {
	IngredientID    string
	Name            string
	Stock           decimal.Decimal
	CostPerUnit     decimal.Decimal
	CaloriesPerUnit decimal.Decimal
	StockValue      decimal.Decimal // Stock * CostPerUnit
}

// StockReport reporte completo de inventario.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Rows        []StockReportRow
	TotalValue  decimal.Decimal
}
