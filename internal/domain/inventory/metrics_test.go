package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/inventory"
)

func TestTotalCalories(t *testing.T) {
	bun := &entity.Ingredient{ID: "bun", CaloriesPerUnit: d(150), CostPerUnit: decimal.RequireFromString("0.8")}
	patty := &entity.Ingredient{ID: "patty", CaloriesPerUnit: d(250), CostPerUnit: decimal.RequireFromString("2.5")}
	p := burger(bun, patty)

	assert.True(t, inventory.TotalCalories(p).Equal(d(550)))
	assert.True(t, inventory.TotalCost(p).Equal(decimal.RequireFromString("4.1")))
	assert.True(t, inventory.TotalCalories(nil).IsZero())
}

func TestTotalCalories_EsLineal(t *testing.T) {
	a := &entity.Ingredient{ID: "a", CaloriesPerUnit: decimal.RequireFromString("33.3")}
	b := &entity.Ingredient{ID: "b", CaloriesPerUnit: d(7)}
	p := &entity.Product{Recipe: []entity.RecipeLine{
		{IngredientID: "a", QuantityRequired: decimal.RequireFromString("1.5"), Ingredient: a},
		{IngredientID: "b", QuantityRequired: d(4), Ingredient: b},
	}}
	doubled := &entity.Product{Recipe: p.Lines()}
	for i := range doubled.Recipe {
		doubled.Recipe[i].QuantityRequired = doubled.Recipe[i].QuantityRequired.Mul(d(2))
	}
	assert.True(t, inventory.TotalCalories(doubled).Equal(inventory.TotalCalories(p).Mul(d(2))))
	assert.True(t, p.Recipe[0].QuantityRequired.Equal(decimal.RequireFromString("1.5")), "Lines devuelve copia")
}

func TestProfitability_Estrategias(t *testing.T) {
	bun := &entity.Ingredient{ID: "bun", CostPerUnit: d(1)}
	patty := &entity.Ingredient{ID: "patty", CostPerUnit: d(3)}
	p := burger(bun, patty) // precio 12, costo 5

	assert.True(t, inventory.Profitability(p, nil).Equal(d(7)), "por defecto precio - costo")
	assert.True(t, inventory.Profitability(p, inventory.MarginStrategy{}).Equal(d(7)))
	assert.True(t, inventory.Profitability(p, inventory.MarginRatioStrategy{}).Equal(decimal.RequireFromString("0.5833")))

	free := &entity.Product{Price: decimal.Zero, Recipe: p.Recipe}
	assert.True(t, inventory.Profitability(free, inventory.MarginRatioStrategy{}).IsZero())
	assert.True(t, inventory.Profitability(free, nil).Equal(d(-5)))
}

func TestStrategyByName(t *testing.T) {
	s, err := inventory.StrategyByName("")
	require.NoError(t, err)
	assert.Equal(t, "margin", s.Name())

	s, err = inventory.StrategyByName(" Margin_Ratio ")
	require.NoError(t, err)
	assert.Equal(t, "margin_ratio", s.Name())

	_, err = inventory.StrategyByName("roi")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_IngredientIDsSinRepetir(t *testing.T) {
	p := &entity.Product{Recipe: []entity.RecipeLine{
		{IngredientID: "a"}, {IngredientID: "b"}, {IngredientID: "a"},
	}}
	assert.Equal(t, []string{"a", "b"}, p.IngredientIDs())
}
