package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine relaciona un producto con un ingrediente y la cantidad consumida por unidad vendida.
// Ingredient es la copia cargada junto con el producto (para métricas derivadas).
type RecipeLine struct {
	IngredientID     string
	QuantityRequired decimal.Decimal
	Ingredient       *Ingredient
}

// Product representa un producto vendible compuesto por ingredientes.
// Calorías y rentabilidad se derivan de la receta, no se almacenan.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // precio de venta
	Type      string          // categoría
	Recipe    []RecipeLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Lines devuelve una copia de las líneas de receta.
func (p *Product) Lines() []RecipeLine {
	out := make([]RecipeLine, len(p.Recipe))
	copy(out, p.Recipe)
	return out
}

// IngredientIDs devuelve los IDs de ingrediente referenciados por la receta, sin repetir.
func (p *Product) IngredientIDs() []string {
	seen := make(map[string]struct{}, len(p.Recipe))
	ids := make([]string, 0, len(p.Recipe))
	for _, l := range p.Recipe {
		if _, ok := seen[l.IngredientID]; ok {
			continue
		}
		seen[l.IngredientID] = struct{}{}
		ids = append(ids, l.IngredientID)
	}
	return ids
}
