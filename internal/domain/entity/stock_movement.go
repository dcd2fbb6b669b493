package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSale    = "SALE"    // venta: descuenta la receta completa
	MovementTypeRestock = "RESTOCK" // reabastecimiento: suma
	MovementTypeRenew   = "RENEW"   // renovación: fija el valor absoluto
)

// StockMovement registra el cambio de stock de un ingrediente causado por una operación sobre un producto.
// Todos los movimientos de una misma operación comparten TransactionID.
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	IngredientID  string
	Type          string
	Quantity      decimal.Decimal // delta aplicado (negativo en ventas)
	StockAfter    decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}
