package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de movimientos (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos más recientes primero.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
