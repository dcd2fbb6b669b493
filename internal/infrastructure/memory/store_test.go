package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Ingredients().Create(ctx, &entity.Ingredient{ID: "bun", Name: "Bun", Stock: decimal.NewFromInt(5), CaloriesPerUnit: decimal.NewFromInt(150)}))
	require.NoError(t, s.Ingredients().Create(ctx, &entity.Ingredient{ID: "patty", Name: "Patty", Stock: decimal.NewFromInt(2), CaloriesPerUnit: decimal.NewFromInt(250)}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "burger", Name: "Burger", Price: decimal.NewFromInt(12), Type: "comida",
		Recipe: []entity.RecipeLine{
			{IngredientID: "bun", QuantityRequired: decimal.NewFromInt(2)},
			{IngredientID: "patty", QuantityRequired: decimal.NewFromInt(1)},
		},
	}))
}

func TestRun_CommitAplicaCambios(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(_ repository.ProductRepository, ing repository.IngredientRepository, mov repository.StockMovementRepository) error {
		if err := ing.UpdateStock(ctx, "bun", decimal.NewFromInt(1)); err != nil {
			return err
		}
		return mov.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "burger", IngredientID: "bun"})
	})
	require.NoError(t, err)

	bun, err := s.Ingredients().GetByID(ctx, "bun")
	require.NoError(t, err)
	assert.True(t, bun.Stock.Equal(decimal.NewFromInt(1)))
	movs, err := s.Movements().ListByProduct(ctx, "burger", nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(_ repository.ProductRepository, ing repository.IngredientRepository, _ repository.StockMovementRepository) error {
		require.NoError(t, ing.UpdateStock(ctx, "bun", decimal.NewFromInt(0)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	bun, _ := s.Ingredients().GetByID(ctx, "bun")
	assert.True(t, bun.Stock.Equal(decimal.NewFromInt(5)))
}

func TestRun_ContextoCanceladoDescartaCambios(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Run(ctx, func(_ repository.ProductRepository, ing repository.IngredientRepository, _ repository.StockMovementRepository) error {
		require.NoError(t, ing.UpdateStock(ctx, "bun", decimal.NewFromInt(0)))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	bun, _ := s.Ingredients().GetByID(context.Background(), "bun")
	assert.True(t, bun.Stock.Equal(decimal.NewFromInt(5)))
}

func TestProducts_GetByIDCargaIngredientes(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)

	p, err := s.Products().GetByID(context.Background(), "burger")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Len(t, p.Recipe, 2)
	require.NotNil(t, p.Recipe[0].Ingredient)
	assert.Equal(t, "Bun", p.Recipe[0].Ingredient.Name)

	missing, err := s.Products().GetByID(context.Background(), "nada")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProducts_CreateRechazaIngredienteInexistente(t *testing.T) {
	s := memory.NewStore()
	err := s.Products().Create(context.Background(), &entity.Product{
		ID: "p", Name: "P",
		Recipe: []entity.RecipeLine{{IngredientID: "fantasma", QuantityRequired: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
}

func TestIngredients_NombreUnicoYStockNoNegativo(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	ctx := context.Background()

	err := s.Ingredients().Create(ctx, &entity.Ingredient{ID: "otro", Name: "Bun"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.ErrorIs(t, s.Ingredients().UpdateStock(ctx, "bun", decimal.NewFromInt(-1)), domain.ErrInsufficientStock)
	assert.ErrorIs(t, s.Ingredients().UpdateStock(ctx, "nada", decimal.NewFromInt(1)), domain.ErrNotFound)

	locked, err := s.Ingredients().GetForUpdate(ctx, []string{"patty", "nada", "bun", "patty"})
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, "bun", locked[0].ID)
	assert.Equal(t, "patty", locked[1].ID)
}

func TestUsers_EmailUnico(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "ana@pos.co"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{ID: "u2", Email: "ANA@pos.co"}), domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "ana@pos.co")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}
