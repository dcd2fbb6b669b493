package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// TotalCalories suma caloriesPerUnit * quantityRequired de cada línea.
// Líneas sin ingrediente cargado no aportan.
func TotalCalories(p *entity.Product) decimal.Decimal {
	total := decimal.Zero
	if p == nil {
		return total
	}
	for _, l := range p.Recipe {
		if l.Ingredient == nil {
			continue
		}
		total = total.Add(l.Ingredient.CaloriesPerUnit.Mul(l.QuantityRequired))
	}
	return total
}

// TotalCost suma costPerUnit * quantityRequired de cada línea.
func TotalCost(p *entity.Product) decimal.Decimal {
	total := decimal.Zero
	if p == nil {
		return total
	}
	for _, l := range p.Recipe {
		if l.Ingredient == nil {
			continue
		}
		total = total.Add(l.Ingredient.CostPerUnit.Mul(l.QuantityRequired))
	}
	return total
}

// ProfitabilityStrategy calcula la rentabilidad a partir del precio y el costo total de la receta.
type ProfitabilityStrategy interface {
	Name() string
	Compute(price, totalCost decimal.Decimal) decimal.Decimal
}

// MarginStrategy: precio - costo. Es la estrategia por defecto.
type MarginStrategy struct{}

func (MarginStrategy) Name() string { return "margin" }

func (MarginStrategy) Compute(price, totalCost decimal.Decimal) decimal.Decimal {
	return price.Sub(totalCost)
}

// MarginRatioStrategy: (precio - costo) / precio, redondeado a 4 decimales. 0 si el precio es 0.
type MarginRatioStrategy struct{}

func (MarginRatioStrategy) Name() string { return "margin_ratio" }

func (MarginRatioStrategy) Compute(price, totalCost decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return price.Sub(totalCost).Div(price).Round(4)
}

// DefaultProfitability es la estrategia usada cuando no se configura otra.
var DefaultProfitability ProfitabilityStrategy = MarginStrategy{}

// Profitability aplica la estrategia (o la por defecto si es nil) al producto.
func Profitability(p *entity.Product, s ProfitabilityStrategy) decimal.Decimal {
	if s == nil {
		s = DefaultProfitability
	}
	if p == nil {
		return decimal.Zero
	}
	return s.Compute(p.Price, TotalCost(p))
}

// StrategyByName resuelve la estrategia configurada ("" o "margin", "margin_ratio").
func StrategyByName(name string) (ProfitabilityStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "margin":
		return MarginStrategy{}, nil
	case "margin_ratio":
		return MarginRatioStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: estrategia de rentabilidad desconocida %q", domain.ErrInvalidInput, name)
	}
}
