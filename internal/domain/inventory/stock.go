package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// StockStore es el inventario compartido indexado por ID de ingrediente.
// Se pasa explícitamente a cada operación del motor; el motor no guarda estado propio.
type StockStore interface {
	Stock(ingredientID string) (decimal.Decimal, error)
	SetStock(ingredientID string, quantity decimal.Decimal) error
}

// Pool es un StockStore en memoria, armado con las filas de ingredientes bloqueadas
// dentro de la transacción del llamador. Vive lo que dura una operación.
type Pool struct {
	stock map[string]decimal.Decimal
}

// NewPool construye el pool con el stock actual de cada ingrediente.
func NewPool(ingredients ...*entity.Ingredient) *Pool {
	p := &Pool{stock: make(map[string]decimal.Decimal, len(ingredients))}
	for _, ing := range ingredients {
		if ing == nil {
			continue
		}
		p.stock[ing.ID] = ing.Stock
	}
	return p
}

// Stock devuelve el stock del ingrediente. Un ID ausente es una receta mal formada.
func (p *Pool) Stock(ingredientID string) (decimal.Decimal, error) {
	q, ok := p.stock[ingredientID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: el ingrediente %s no está en el inventario", domain.ErrInvalidRecipe, ingredientID)
	}
	return q, nil
}

// SetStock fija el stock del ingrediente. Nunca acepta valores negativos.
func (p *Pool) SetStock(ingredientID string, quantity decimal.Decimal) error {
	if _, ok := p.stock[ingredientID]; !ok {
		return fmt.Errorf("%w: el ingrediente %s no está en el inventario", domain.ErrInvalidRecipe, ingredientID)
	}
	if quantity.IsNegative() {
		return fmt.Errorf("%w: %s quedaría en %s", domain.ErrInsufficientStock, ingredientID, quantity.String())
	}
	p.stock[ingredientID] = quantity
	return nil
}
