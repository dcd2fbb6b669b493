package inventory_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func stockOf(t *testing.T, s inventory.StockStore, id string) decimal.Decimal {
	t.Helper()
	q, err := s.Stock(id)
	require.NoError(t, err)
	return q
}

// burger: 2 Bun + 1 Patty.
func burger(bun, patty *entity.Ingredient) *entity.Product {
	return &entity.Product{
		ID: "burger", Name: "Burger", Price: d(12), Type: "comida",
		Recipe: []entity.RecipeLine{
			{IngredientID: bun.ID, QuantityRequired: d(2), Ingredient: bun},
			{IngredientID: patty.ID, QuantityRequired: d(1), Ingredient: patty},
		},
	}
}

func TestEscenarioBurger(t *testing.T) {
	bun := &entity.Ingredient{ID: "bun", Name: "Bun", Stock: d(5)}
	patty := &entity.Ingredient{ID: "patty", Name: "Patty", Stock: d(0)}
	p := burger(bun, patty)
	pool := inventory.NewPool(bun, patty)

	// Sin Patty la venta falla y nada cambia.
	_, err := inventory.Sell(pool, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *inventory.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	require.Len(t, stockErr.Shortages, 1)
	assert.Equal(t, "patty", stockErr.Shortages[0].IngredientID)
	assert.Contains(t, err.Error(), "Patty")
	assert.True(t, stockOf(t, pool, "bun").Equal(d(5)))
	assert.True(t, stockOf(t, pool, "patty").Equal(d(0)))

	// Renew(3) deja ambos en 3.
	res, err := inventory.Renew(pool, p, d(3))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeRenew, res.Operation)
	assert.True(t, stockOf(t, pool, "bun").Equal(d(3)))
	assert.True(t, stockOf(t, pool, "patty").Equal(d(3)))

	// La venta ahora pasa: Bun 1, Patty 2.
	res, err = inventory.Sell(pool, p)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeSale, res.Operation)
	assert.True(t, stockOf(t, pool, "bun").Equal(d(1)))
	assert.True(t, stockOf(t, pool, "patty").Equal(d(2)))
	require.Len(t, res.Changes, 2)
	assert.Equal(t, "bun", res.Changes[0].IngredientID)
	assert.True(t, res.Changes[0].Delta().Equal(d(-2)))

	// Restock(5): Bun 6, Patty 7.
	_, err = inventory.Restock(pool, p, d(5))
	require.NoError(t, err)
	assert.True(t, stockOf(t, pool, "bun").Equal(d(6)))
	assert.True(t, stockOf(t, pool, "patty").Equal(d(7)))
}

func TestSell_ReportaTodosLosFaltantesOrdenados(t *testing.T) {
	a := &entity.Ingredient{ID: "c-queso", Name: "Queso", Stock: d(0)}
	b := &entity.Ingredient{ID: "a-pan", Name: "Pan", Stock: d(1)}
	c := &entity.Ingredient{ID: "b-tomate", Name: "Tomate", Stock: d(10)}
	p := &entity.Product{ID: "p", Name: "Sandwich", Recipe: []entity.RecipeLine{
		{IngredientID: a.ID, QuantityRequired: d(1), Ingredient: a},
		{IngredientID: b.ID, QuantityRequired: d(2), Ingredient: b},
		{IngredientID: c.ID, QuantityRequired: d(1), Ingredient: c},
	}}
	pool := inventory.NewPool(a, b, c)

	_, err := inventory.Sell(pool, p)
	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortages, 2)
	assert.Equal(t, "a-pan", stockErr.Shortages[0].IngredientID)
	assert.Equal(t, "c-queso", stockErr.Shortages[1].IngredientID)
	assert.True(t, stockOf(t, pool, "b-tomate").Equal(d(10)), "el ingrediente suficiente no se descuenta")
}

func TestSell_NoEsIdempotente(t *testing.T) {
	ing := &entity.Ingredient{ID: "cafe", Name: "Café", Stock: d(1)}
	p := &entity.Product{ID: "tinto", Name: "Tinto", Recipe: []entity.RecipeLine{
		{IngredientID: ing.ID, QuantityRequired: d(1), Ingredient: ing},
	}}
	pool := inventory.NewPool(ing)

	_, err := inventory.Sell(pool, p)
	require.NoError(t, err)
	_, err = inventory.Sell(pool, p)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, stockOf(t, pool, "cafe").IsZero())
}

func TestSell_CantidadesFraccionarias(t *testing.T) {
	leche := &entity.Ingredient{ID: "leche", Name: "Leche", Stock: decimal.RequireFromString("0.5")}
	p := &entity.Product{ID: "latte", Name: "Latte", Recipe: []entity.RecipeLine{
		{IngredientID: leche.ID, QuantityRequired: decimal.RequireFromString("0.25"), Ingredient: leche},
	}}
	pool := inventory.NewPool(leche)
	for i := 0; i < 2; i++ {
		_, err := inventory.Sell(pool, p)
		require.NoError(t, err)
	}
	assert.True(t, stockOf(t, pool, "leche").IsZero())
	_, err := inventory.Sell(pool, p)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestOperaciones_RecetaMalFormada(t *testing.T) {
	ing := &entity.Ingredient{ID: "x", Name: "X", Stock: d(10)}
	tests := []struct {
		name   string
		recipe []entity.RecipeLine
	}{
		{"ingrediente repetido", []entity.RecipeLine{
			{IngredientID: "x", QuantityRequired: d(1)},
			{IngredientID: "x", QuantityRequired: d(2)},
		}},
		{"cantidad cero", []entity.RecipeLine{{IngredientID: "x", QuantityRequired: d(0)}}},
		{"cantidad negativa", []entity.RecipeLine{{IngredientID: "x", QuantityRequired: d(-1)}}},
		{"ingrediente vacío", []entity.RecipeLine{{IngredientID: "", QuantityRequired: d(1)}}},
		{"ingrediente fuera del inventario", []entity.RecipeLine{{IngredientID: "fantasma", QuantityRequired: d(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := inventory.NewPool(ing)
			p := &entity.Product{ID: "p", Name: "P", Recipe: tt.recipe}

			_, err := inventory.Sell(pool, p)
			assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
			_, err = inventory.Restock(pool, p, d(1))
			assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
			_, err = inventory.Renew(pool, p, d(1))
			assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
			assert.True(t, stockOf(t, pool, "x").Equal(d(10)), "el stock no debe cambiar")
		})
	}
}

func TestRestockRenew_CantidadInvalida(t *testing.T) {
	ing := &entity.Ingredient{ID: "x", Name: "X", Stock: d(4)}
	p := &entity.Product{ID: "p", Name: "P", Recipe: []entity.RecipeLine{
		{IngredientID: "x", QuantityRequired: d(1), Ingredient: ing},
	}}
	for _, q := range []string{"0", "-3", "2.5", "0.1"} {
		t.Run(q, func(t *testing.T) {
			pool := inventory.NewPool(ing)
			_, err := inventory.Restock(pool, p, decimal.RequireFromString(q))
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			_, err = inventory.Renew(pool, p, decimal.RequireFromString(q))
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			assert.True(t, stockOf(t, pool, "x").Equal(d(4)))
		})
	}
}

func TestRestockRenew_CantidadFueraDeRango(t *testing.T) {
	ing := &entity.Ingredient{ID: "x", Name: "X", Stock: d(4)}
	p := &entity.Product{ID: "p", Name: "P", Recipe: []entity.RecipeLine{
		{IngredientID: "x", QuantityRequired: d(1), Ingredient: ing},
	}}
	pool := inventory.NewPool(ing)

	_, err := inventory.Renew(pool, p, decimal.New(1, 14))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = inventory.Restock(pool, p, decimal.New(1, 14))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// La cantidad cabe pero la suma no.
	_, err = inventory.Restock(pool, p, inventory.MaxAmount.Truncate(0))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, stockOf(t, pool, "x").Equal(d(4)))

	_, err = inventory.Renew(pool, p, inventory.MaxAmount.Truncate(0))
	require.NoError(t, err)
	assert.True(t, stockOf(t, pool, "x").Equal(inventory.MaxAmount.Truncate(0)))
}

func TestRenew_AfectaIngredienteCompartido(t *testing.T) {
	pan := &entity.Ingredient{ID: "pan", Name: "Pan", Stock: d(50)}
	carne := &entity.Ingredient{ID: "carne", Name: "Carne", Stock: d(20)}
	hotdog := &entity.Product{ID: "hotdog", Name: "Hotdog", Recipe: []entity.RecipeLine{
		{IngredientID: "pan", QuantityRequired: d(1), Ingredient: pan},
	}}
	hamburguesa := &entity.Product{ID: "hamb", Name: "Hamburguesa", Recipe: []entity.RecipeLine{
		{IngredientID: "pan", QuantityRequired: d(2), Ingredient: pan},
		{IngredientID: "carne", QuantityRequired: d(1), Ingredient: carne},
	}}
	pool := inventory.NewPool(pan, carne)

	_, err := inventory.Renew(pool, hotdog, d(3))
	require.NoError(t, err)
	assert.True(t, stockOf(t, pool, "pan").Equal(d(3)), "renew baja el stock compartido")

	_, err = inventory.Sell(pool, hamburguesa)
	require.NoError(t, err)
	_, err = inventory.Sell(pool, hamburguesa)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPool_InvariantesDeStock(t *testing.T) {
	pool := inventory.NewPool(&entity.Ingredient{ID: "x", Stock: d(1)}, nil)
	assert.ErrorIs(t, pool.SetStock("x", d(-1)), domain.ErrInsufficientStock)
	assert.ErrorIs(t, pool.SetStock("y", d(1)), domain.ErrInvalidRecipe)
	_, err := pool.Stock("y")
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
	assert.True(t, stockOf(t, pool, "x").Equal(d(1)))
}

func TestSell_ProductoNil(t *testing.T) {
	_, err := inventory.Sell(inventory.NewPool(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// randomCase arma un producto de 1 a 5 ingredientes con stock y cantidades aleatorias.
func randomCase(r *rand.Rand) (*entity.Product, []*entity.Ingredient) {
	n := 1 + r.Intn(5)
	ings := make([]*entity.Ingredient, 0, n)
	lines := make([]entity.RecipeLine, 0, n)
	for i := 0; i < n; i++ {
		ing := &entity.Ingredient{
			ID:              fmt.Sprintf("ing-%d", i),
			Name:            fmt.Sprintf("Ingrediente %d", i),
			Stock:           d(int64(r.Intn(20))),
			CaloriesPerUnit: d(int64(r.Intn(300))),
			CostPerUnit:     d(int64(r.Intn(50))),
		}
		ings = append(ings, ing)
		lines = append(lines, entity.RecipeLine{IngredientID: ing.ID, QuantityRequired: d(int64(1 + r.Intn(6))), Ingredient: ing})
	}
	r.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })
	return &entity.Product{ID: "p", Name: "P", Price: d(int64(r.Intn(500))), Recipe: lines}, ings
}

func TestPropiedades_SellTodoONada(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p, ings := randomCase(r)
		pool := inventory.NewPool(ings...)
		before := map[string]decimal.Decimal{}
		enough := true
		for _, l := range p.Recipe {
			before[l.IngredientID] = l.Ingredient.Stock
			if l.Ingredient.Stock.LessThan(l.QuantityRequired) {
				enough = false
			}
		}
		caloriesBefore := inventory.TotalCalories(p)
		profitBefore := inventory.Profitability(p, nil)

		_, err := inventory.Sell(pool, p)
		for _, l := range p.Recipe {
			got := stockOf(t, pool, l.IngredientID)
			assert.False(t, got.IsNegative())
			if enough {
				require.NoError(t, err)
				assert.True(t, got.Equal(before[l.IngredientID].Sub(l.QuantityRequired)))
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
				assert.True(t, got.Equal(before[l.IngredientID]), "sin deducción parcial")
			}
		}
		assert.True(t, caloriesBefore.Equal(inventory.TotalCalories(p)))
		assert.True(t, profitBefore.Equal(inventory.Profitability(p, nil)))
	}
}

func TestPropiedades_RestockRenew(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		p, ings := randomCase(r)
		q := d(int64(1 + r.Intn(100)))

		pool := inventory.NewPool(ings...)
		_, err := inventory.Restock(pool, p, q)
		require.NoError(t, err)
		for _, ing := range ings {
			assert.True(t, stockOf(t, pool, ing.ID).Equal(ing.Stock.Add(q)))
		}

		pool = inventory.NewPool(ings...)
		_, err = inventory.Renew(pool, p, q)
		require.NoError(t, err)
		for _, ing := range ings {
			assert.True(t, stockOf(t, pool, ing.ID).Equal(q))
		}
	}
}
