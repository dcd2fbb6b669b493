package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de StockMovementRepository.
type MovementRepo struct {
	do access
}

// Create agrega el movimiento al libro.
func (r *MovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.do(func(st *state) error {
		cp := *movement
		st.movements = append(st.movements, &cp)
		return nil
	})
}

// ListByProduct devuelve los movimientos del producto, más recientes primero.
func (r *MovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(func(st *state) error {
		var matched []*entity.StockMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ProductID != productID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			cp := *m
			matched = append(matched, &cp)
		}
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
		out = page(matched, limit, offset)
		return nil
	})
	return out, err
}
