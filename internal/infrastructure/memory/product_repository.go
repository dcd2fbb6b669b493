package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	do access
}

// Create guarda el producto; cada línea debe referenciar un ingrediente existente.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		lines := make([]entity.RecipeLine, 0, len(product.Recipe))
		for _, l := range product.Recipe {
			if _, ok := st.ingredients[l.IngredientID]; !ok {
				return domain.ErrInvalidRecipe
			}
			lines = append(lines, entity.RecipeLine{IngredientID: l.IngredientID, QuantityRequired: l.QuantityRequired})
		}
		cp := *product
		cp.Recipe = lines
		st.products[cp.ID] = &cp
		return nil
	})
}

// GetByID devuelve el producto con la copia actual de cada ingrediente, o (nil, nil).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return nil
		}
		out = hydrate(st, p)
		return nil
	})
	return out, err
}

// List devuelve los productos ordenados por nombre. limit <= 0 devuelve todos.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, p)
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].Name == all[j].Name {
				return all[i].ID < all[j].ID
			}
			return all[i].Name < all[j].Name
		})
		for _, p := range page(all, limit, offset) {
			out = append(out, hydrate(st, p))
		}
		return nil
	})
	return out, err
}

func hydrate(st *state, p *entity.Product) *entity.Product {
	cp := *p
	cp.Recipe = make([]entity.RecipeLine, len(p.Recipe))
	for i, l := range p.Recipe {
		cp.Recipe[i] = entity.RecipeLine{IngredientID: l.IngredientID, QuantityRequired: l.QuantityRequired}
		if ing, ok := st.ingredients[l.IngredientID]; ok {
			snap := *ing
			cp.Recipe[i].Ingredient = &snap
		}
	}
	return &cp
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
