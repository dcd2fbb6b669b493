package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
)

// Shortage describe un ingrediente que no alcanza para la venta.
type Shortage struct {
	IngredientID   string
	IngredientName string
	Available      decimal.Decimal
	Required       decimal.Decimal
}

// InsufficientStockError lista todos los faltantes de una venta, ordenados por ID de ingrediente.
// errors.Is(err, domain.ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Shortages   []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.IngredientName
		if name == "" {
			name = s.IngredientID
		}
		parts = append(parts, fmt.Sprintf("%s (disponible %s, requerido %s)", name, s.Available.String(), s.Required.String()))
	}
	return fmt.Sprintf("stock insuficiente para %s: %s", e.ProductName, strings.Join(parts, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }
