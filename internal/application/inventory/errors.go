package inventory

import (
	"errors"

	"github.com/jhoicas/pos-inventario/internal/domain"
)

func isClientError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInsufficientStock,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidRecipe,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
