package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, transaction_id, product_id, ingredient_id, type, quantity, stock_after, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ProductID, m.IngredientID, m.Type, m.Quantity, m.StockAfter, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isNumericOverflow(err) {
			return fmt.Errorf("%w: movimiento fuera de rango", domain.ErrInvalidQuantity)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos del producto, más recientes primero, con rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, ingredient_id, type, quantity, stock_after, created_at, created_by
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.ProductID, &m.IngredientID, &m.Type, &m.Quantity, &m.StockAfter, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
