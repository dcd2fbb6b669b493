package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientColumns = `id, name, stock, calories_per_unit, cost_per_unit, created_at, updated_at`

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un ingrediente. Nombre duplicado → domain.ErrDuplicate.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, stock, calories_per_unit, cost_per_unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, ing.Stock, ing.CaloriesPerUnit, ing.CostPerUnit, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) || isNumericOverflow(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.getOne(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id)
}

// GetByName obtiene un ingrediente por nombre exacto.
func (r *IngredientRepo) GetByName(ctx context.Context, name string) (*entity.Ingredient, error) {
	return r.getOne(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE name = $1`, name)
}

func (r *IngredientRepo) getOne(ctx context.Context, query string, arg string) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// List lista todos los ingredientes ordenados por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	return r.query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name`)
}

// GetForUpdate obtiene los ingredientes y bloquea sus filas (SELECT FOR UPDATE) en orden de ID,
// de modo que dos transacciones sobre recetas que se solapan no se bloqueen mutuamente.
func (r *IngredientRepo) GetForUpdate(ctx context.Context, ids []string) ([]*entity.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
}

// UpdateStock fija el stock. El CHECK (stock >= 0) se traduce a domain.ErrInsufficientStock
// y el desborde de la columna a domain.ErrInvalidQuantity.
func (r *IngredientRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE ingredients SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		if isNumericOverflow(err) {
			return fmt.Errorf("%w: stock fuera de rango", domain.ErrInvalidQuantity)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IngredientRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	if err := row.Scan(
		&ing.ID, &ing.Name, &ing.Stock, &ing.CaloriesPerUnit, &ing.CostPerUnit, &ing.CreatedAt, &ing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ing, nil
}
