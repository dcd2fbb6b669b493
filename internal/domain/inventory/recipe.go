package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// MaxAmount es el mayor valor que se guarda en stock, costos, precios y cantidades
// (NUMERIC(18,4) en PostgreSQL).
var MaxAmount = decimal.New(1, 14).Sub(decimal.New(1, -4))

// InRange indica si v cabe en las columnas numéricas del inventario.
func InRange(v decimal.Decimal) bool { return !v.GreaterThan(MaxAmount) }

// ValidateRecipe rechaza recetas mal formadas: ingrediente vacío o repetido, cantidad <= 0.
// La receta ya se valida al armarse; aquí se vuelve a revisar para no corromper stock.
func ValidateRecipe(lines []entity.RecipeLine) error {
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if l.IngredientID == "" {
			return fmt.Errorf("%w: línea %d sin ingrediente", domain.ErrInvalidRecipe, i+1)
		}
		if _, dup := seen[l.IngredientID]; dup {
			return fmt.Errorf("%w: ingrediente %s repetido", domain.ErrInvalidRecipe, l.IngredientID)
		}
		seen[l.IngredientID] = struct{}{}
		if !l.QuantityRequired.IsPositive() {
			return fmt.Errorf("%w: cantidad requerida de %s debe ser mayor que cero", domain.ErrInvalidRecipe, l.IngredientID)
		}
		if !InRange(l.QuantityRequired) {
			return fmt.Errorf("%w: cantidad requerida de %s fuera de rango", domain.ErrInvalidRecipe, l.IngredientID)
		}
	}
	return nil
}

// ValidateQuantity exige un entero positivo no mayor que MaxAmount (Restock y Renew).
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() || !q.IsInteger() {
		return domain.ErrInvalidQuantity
	}
	if !InRange(q) {
		return fmt.Errorf("%w: máximo %s", domain.ErrInvalidQuantity, MaxAmount.String())
	}
	return nil
}
