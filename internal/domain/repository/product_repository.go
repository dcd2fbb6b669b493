package repository

import (
	"context"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve el producto con su receta y la copia de cada ingrediente.
// List con limit <= 0 devuelve el catálogo completo.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
