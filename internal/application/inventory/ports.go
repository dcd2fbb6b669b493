package inventory

import (
	"context"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn retorna nil y el contexto sigue vivo; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ingredientRepo repository.IngredientRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// EventPublisher publica eventos de stock después del commit.
type EventPublisher interface {
	PublishStockEvent(ctx context.Context, event *entity.StockEvent) error
}

// StockReportGenerator renderiza el reporte de stock (PDF).
type StockReportGenerator interface {
	GenerateStockReport(report *dto.StockReport) ([]byte, error)
}
