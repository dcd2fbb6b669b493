package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// IngredientRepository define el puerto para el pool compartido de ingredientes.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	GetByName(ctx context.Context, name string) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
	// GetForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de ID.
	// IDs inexistentes simplemente no aparecen en el resultado.
	GetForUpdate(ctx context.Context, ids []string) ([]*entity.Ingredient, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
}
