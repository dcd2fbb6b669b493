package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación en memoria de IngredientRepository.
type IngredientRepo struct {
	do access
}

// Create guarda el ingrediente. El nombre es único.
func (r *IngredientRepo) Create(_ context.Context, ingredient *entity.Ingredient) error {
	return r.do(func(st *state) error {
		if _, ok := st.ingredients[ingredient.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, ing := range st.ingredients {
			if ing.Name == ingredient.Name {
				return domain.ErrDuplicate
			}
		}
		cp := *ingredient
		st.ingredients[cp.ID] = &cp
		return nil
	})
}

// GetByID devuelve el ingrediente o (nil, nil).
func (r *IngredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	err := r.do(func(st *state) error {
		if ing, ok := st.ingredients[id]; ok {
			cp := *ing
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetByName devuelve el ingrediente con ese nombre exacto o (nil, nil).
func (r *IngredientRepo) GetByName(_ context.Context, name string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	err := r.do(func(st *state) error {
		for _, ing := range st.ingredients {
			if ing.Name == name {
				cp := *ing
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List devuelve todos los ingredientes ordenados por nombre.
func (r *IngredientRepo) List(_ context.Context) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	err := r.do(func(st *state) error {
		out = make([]*entity.Ingredient, 0, len(st.ingredients))
		for _, ing := range st.ingredients {
			cp := *ing
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// GetForUpdate devuelve los ingredientes pedidos en orden de ID. Dentro de Run el lock
// del Store ya está tomado.
func (r *IngredientRepo) GetForUpdate(_ context.Context, ids []string) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	err := r.do(func(st *state) error {
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		seen := make(map[string]struct{}, len(sorted))
		for _, id := range sorted {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if ing, ok := st.ingredients[id]; ok {
				cp := *ing
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

// UpdateStock fija el stock. Rechaza negativos igual que el CHECK de la tabla.
func (r *IngredientRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	return r.do(func(st *state) error {
		ing, ok := st.ingredients[id]
		if !ok {
			return domain.ErrNotFound
		}
		if stock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		ing.Stock = stock
		return nil
	})
}
