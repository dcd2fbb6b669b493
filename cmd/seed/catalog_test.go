package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/internal/application/auth"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/memory"
)

func newMemorySeeder(s *memory.Store) *seeder {
	return &seeder{
		ingredients: usecase.NewIngredientUseCase(s.Ingredients()),
		products:    usecase.NewProductUseCase(s, s.Products()),
		auth:        auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "seed"}),
	}
}

func TestCatalogoEjemplo_EsIdempotente(t *testing.T) {
	f, err := os.Open("catalog.example.yaml")
	require.NoError(t, err)
	defer f.Close()
	cat, err := parseCatalog(f)
	require.NoError(t, err)

	s := memory.NewStore()
	sd := newMemorySeeder(s)
	ctx := context.Background()

	res, err := sd.apply(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, 5, res.IngredientsCreated)
	assert.Equal(t, 3, res.ProductsCreated)
	assert.Equal(t, 2, res.UsersCreated)

	res, err = sd.apply(ctx, cat)
	require.NoError(t, err)
	assert.Zero(t, res.IngredientsCreated)
	assert.Zero(t, res.ProductsCreated)
	assert.Zero(t, res.UsersCreated)
	assert.Equal(t, 5, res.IngredientsSkipped)
	assert.Equal(t, 3, res.ProductsSkipped)
	assert.Equal(t, 2, res.UsersSkipped)

	products, err := s.Products().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		if p.Name == "Hamburguesa picante" {
			assert.Len(t, p.Recipe, 4)
		}
	}
}

func TestParseCatalog_CampoDesconocido(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("ingredients:\n  - name: Pan\n    precio: 3\n"))
	assert.Error(t, err)
}

func TestApply_RecetaConIngredienteDesconocido(t *testing.T) {
	cat, err := parseCatalog(strings.NewReader(`
products:
  - name: Sopa
    price: "3"
    type: comida
    recipe:
      - ingredient: Fideo
        quantity: "1"
`))
	require.NoError(t, err)
	_, err = newMemorySeeder(memory.NewStore()).apply(context.Background(), cat)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Fideo")
}

func TestApply_NumeroInvalido(t *testing.T) {
	cat, err := parseCatalog(strings.NewReader(`
ingredients:
  - name: Pan
    stock: "muchos"
`))
	require.NoError(t, err)
	_, err = newMemorySeeder(memory.NewStore()).apply(context.Background(), cat)
	assert.ErrorContains(t, err, "Pan.stock")
}
