package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y sus líneas de receta. Debe ir dentro de una tx.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, price, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Type, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) || isNumericOverflow(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	for i, l := range product.Recipe {
		_, err := r.q.Exec(ctx, `
			INSERT INTO product_recipe (product_id, ingredient_id, quantity_required, position)
			VALUES ($1, $2, $3, $4)`,
			product.ID, l.IngredientID, l.QuantityRequired, i,
		)
		if err != nil {
			switch {
			case isForeignKeyViolation(err), isUniqueViolation(err), isCheckViolation(err), isNumericOverflow(err):
				return fmt.Errorf("%w: línea %d", domain.ErrInvalidRecipe, i+1)
			}
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un producto con su receta y la copia actual de cada ingrediente.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, price, type, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Type, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	recipes, err := r.loadRecipes(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Recipe = recipes[p.ID]
	return &p, nil
}

// List lista productos ordenados por nombre. limit <= 0 devuelve todos.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, price, type, created_at, updated_at
		FROM products ORDER BY name, id LIMIT $1::bigint OFFSET $2`
	var lim *int64
	if limit > 0 {
		n := int64(limit)
		lim = &n
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.q.Query(ctx, query, lim, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	var ids []string
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Type, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	recipes, err := r.loadRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Recipe = recipes[p.ID]
	}
	return list, nil
}

func (r *ProductRepo) loadRecipes(ctx context.Context, productIDs []string) (map[string][]entity.RecipeLine, error) {
	query := `
		SELECT pr.product_id, pr.ingredient_id, pr.quantity_required,
		       i.name, i.stock, i.calories_per_unit, i.cost_per_unit, i.created_at, i.updated_at
		FROM product_recipe pr
		JOIN ingredients i ON i.id = pr.ingredient_id
		WHERE pr.product_id = ANY($1)
		ORDER BY pr.product_id, pr.position`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.RecipeLine, len(productIDs))
	for rows.Next() {
		var (
			productID string
			line      entity.RecipeLine
			ing       entity.Ingredient
		)
		if err := rows.Scan(
			&productID, &line.IngredientID, &line.QuantityRequired,
			&ing.Name, &ing.Stock, &ing.CaloriesPerUnit, &ing.CostPerUnit, &ing.CreatedAt, &ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ing.ID = line.IngredientID
		line.Ingredient = &ing
		out[productID] = append(out[productID], line)
	}
	return out, rows.Err()
}
