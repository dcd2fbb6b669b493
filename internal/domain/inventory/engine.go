// Package inventory es el motor de operaciones de inventario: venta, reabastecimiento,
// renovación y métricas derivadas de la receta. Opera solo sobre estado en memoria;
// cargar, bloquear y persistir es trabajo del llamador.
package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// Change es el antes/después del stock de un ingrediente.
type Change struct {
	IngredientID string
	Before       decimal.Decimal
	After        decimal.Decimal
}

// Delta devuelve After - Before.
func (c Change) Delta() decimal.Decimal { return c.After.Sub(c.Before) }

// Result describe una operación aplicada. Changes va ordenado por ID de ingrediente.
type Result struct {
	ProductID string
	Operation string // entity.MovementType*
	Quantity  decimal.Decimal
	Changes   []Change
}

// Sell verifica que toda la receta tenga stock y solo entonces descuenta cada línea.
// Si falta cualquier ingrediente no se toca ninguno.
func Sell(store StockStore, product *entity.Product) (*Result, error) {
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := ValidateRecipe(product.Recipe); err != nil {
		return nil, err
	}

	// Primera pasada: verificar todo y planificar.
	planned := make([]Change, 0, len(product.Recipe))
	var shortages []Shortage
	for _, line := range product.Recipe {
		current, err := store.Stock(line.IngredientID)
		if err != nil {
			return nil, err
		}
		if current.LessThan(line.QuantityRequired) {
			shortages = append(shortages, Shortage{
				IngredientID:   line.IngredientID,
				IngredientName: ingredientName(line),
				Available:      current,
				Required:       line.QuantityRequired,
			})
			continue
		}
		planned = append(planned, Change{
			IngredientID: line.IngredientID,
			Before:       current,
			After:        current.Sub(line.QuantityRequired),
		})
	}
	if len(shortages) > 0 {
		sort.Slice(shortages, func(i, j int) bool { return shortages[i].IngredientID < shortages[j].IngredientID })
		return nil, &InsufficientStockError{ProductID: product.ID, ProductName: product.Name, Shortages: shortages}
	}

	// Segunda pasada: aplicar.
	if err := apply(store, planned); err != nil {
		return nil, err
	}
	return newResult(product.ID, entity.MovementTypeSale, decimal.NewFromInt(1), planned), nil
}

// Restock suma quantity al stock de cada ingrediente distinto de la receta.
// Suma quantity por ingrediente, no quantity unidades del producto.
func Restock(store StockStore, product *entity.Product, quantity decimal.Decimal) (*Result, error) {
	return adjust(store, product, quantity, entity.MovementTypeRestock, func(before decimal.Decimal) decimal.Decimal {
		return before.Add(quantity)
	})
}

// Renew fija el stock de cada ingrediente de la receta en quantity.
// Puede bajar stock que otros productos comparten.
func Renew(store StockStore, product *entity.Product, quantity decimal.Decimal) (*Result, error) {
	return adjust(store, product, quantity, entity.MovementTypeRenew, func(decimal.Decimal) decimal.Decimal {
		return quantity
	})
}

func adjust(store StockStore, product *entity.Product, quantity decimal.Decimal, op string, next func(decimal.Decimal) decimal.Decimal) (*Result, error) {
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := ValidateRecipe(product.Recipe); err != nil {
		return nil, err
	}
	planned := make([]Change, 0, len(product.Recipe))
	for _, line := range product.Recipe {
		current, err := store.Stock(line.IngredientID)
		if err != nil {
			return nil, err
		}
		after := next(current)
		if !InRange(after) {
			return nil, fmt.Errorf("%w: el stock de %s superaría %s", domain.ErrInvalidQuantity, line.IngredientID, MaxAmount.String())
		}
		planned = append(planned, Change{IngredientID: line.IngredientID, Before: current, After: after})
	}
	if err := apply(store, planned); err != nil {
		return nil, err
	}
	return newResult(product.ID, op, quantity, planned), nil
}

// apply escribe los cambios planificados; si uno falla restaura los ya escritos.
func apply(store StockStore, planned []Change) error {
	for i, c := range planned {
		if err := store.SetStock(c.IngredientID, c.After); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = store.SetStock(planned[j].IngredientID, planned[j].Before)
			}
			return err
		}
	}
	return nil
}

func newResult(productID, op string, quantity decimal.Decimal, changes []Change) *Result {
	sorted := make([]Change, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].IngredientID < sorted[j].IngredientID })
	return &Result{ProductID: productID, Operation: op, Quantity: quantity, Changes: sorted}
}

func ingredientName(line entity.RecipeLine) string {
	if line.Ingredient != nil {
		return line.Ingredient.Name
	}
	return ""
}
