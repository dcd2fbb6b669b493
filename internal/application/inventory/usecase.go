package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/domain/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
)

const tracerName = "github.com/jhoicas/pos-inventario/internal/application/inventory"

// Options parámetros configurables del caso de uso.
type Options struct {
	DefaultRestock   int64
	DefaultRenew     int64
	OperationTimeout time.Duration
	Strategy         inventory.ProfitabilityStrategy
}

// InventoryUseCase ejecuta venta, reabastecimiento y renovación dentro de una transacción:
// carga el producto, bloquea los ingredientes de la receta (SELECT FOR UPDATE en orden de ID),
// aplica el motor, persiste stock y movimientos, y hace Commit o Rollback.
type InventoryUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	publisher    EventPublisher
	opts         Options
	logger       zerolog.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// NewInventoryUseCase construye el caso de uso. publisher puede ser nil.
func NewInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	publisher EventPublisher,
	opts Options,
	logger zerolog.Logger,
) *InventoryUseCase {
	if opts.DefaultRestock <= 0 {
		opts.DefaultRestock = 5
	}
	if opts.DefaultRenew <= 0 {
		opts.DefaultRenew = 10
	}
	if opts.Strategy == nil {
		opts.Strategy = inventory.DefaultProfitability
	}
	return &InventoryUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		publisher:    publisher,
		opts:         opts,
		logger:       logger.With().Str("service", "inventory").Logger(),
		tracer:       otel.Tracer(tracerName),
		now:          time.Now,
	}
}

// OperationOutput resultado de una operación de stock confirmada.
type OperationOutput struct {
	Message       string
	TransactionID string
	Product       *entity.Product
	Result        *inventory.Result
}

// DefaultRestockQuantity cantidad usada cuando el request no trae quantity.
func (uc *InventoryUseCase) DefaultRestockQuantity() decimal.Decimal {
	return decimal.NewFromInt(uc.opts.DefaultRestock)
}

// DefaultRenewQuantity cantidad usada cuando el request no trae quantity.
func (uc *InventoryUseCase) DefaultRenewQuantity() decimal.Decimal {
	return decimal.NewFromInt(uc.opts.DefaultRenew)
}

// StrategyName nombre de la estrategia de rentabilidad configurada.
func (uc *InventoryUseCase) StrategyName() string { return uc.opts.Strategy.Name() }

// Product devuelve el producto o domain.ErrNotFound.
func (uc *InventoryUseCase) Product(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Sell vende una unidad del producto: todo o nada.
func (uc *InventoryUseCase) Sell(ctx context.Context, productID, actor string) (*OperationOutput, error) {
	return uc.run(ctx, "inventory.sell", productID, decimal.NewFromInt(1), actor,
		func(store inventory.StockStore, p *entity.Product, _ decimal.Decimal) (*inventory.Result, error) {
			return inventory.Sell(store, p)
		},
		func(p *entity.Product, _ decimal.Decimal) string {
			return fmt.Sprintf("El producto %s ha sido vendido exitosamente", p.Name)
		})
}

// Restock suma quantity a cada ingrediente de la receta.
func (uc *InventoryUseCase) Restock(ctx context.Context, productID string, quantity decimal.Decimal, actor string) (*OperationOutput, error) {
	return uc.run(ctx, "inventory.restock", productID, quantity, actor, inventory.Restock,
		func(p *entity.Product, q decimal.Decimal) string {
			return fmt.Sprintf("El inventario de %s ha sido reabastecido en %s unidades", p.Name, q.String())
		})
}

// Renew fija en quantity el stock de cada ingrediente de la receta.
func (uc *InventoryUseCase) Renew(ctx context.Context, productID string, quantity decimal.Decimal, actor string) (*OperationOutput, error) {
	return uc.run(ctx, "inventory.renew", productID, quantity, actor, inventory.Renew,
		func(p *entity.Product, _ decimal.Decimal) string {
			return fmt.Sprintf("El inventario de %s ha sido renovado correctamente", p.Name)
		})
}

type engineOp func(store inventory.StockStore, p *entity.Product, q decimal.Decimal) (*inventory.Result, error)

func (uc *InventoryUseCase) run(
	ctx context.Context,
	spanName, productID string,
	quantity decimal.Decimal,
	actor string,
	op engineOp,
	message func(*entity.Product, decimal.Decimal) string,
) (out *OperationOutput, err error) {
	ctx, span := uc.tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.String("inventory.quantity", quantity.String()),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	opCtx := ctx
	if uc.opts.OperationTimeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, uc.opts.OperationTimeout)
		defer cancel()
	}

	txID := uuid.New().String()
	now := uc.now()
	var (
		product *entity.Product
		result  *inventory.Result
	)

	err = uc.txRunner.Run(opCtx, func(
		productRepo repository.ProductRepository,
		ingredientRepo repository.IngredientRepository,
		movRepo repository.StockMovementRepository,
	) error {
		p, err := productRepo.GetByID(opCtx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		product = p

		// Bloquea las filas de ingredientes de la receta en orden ascendente de ID.
		locked, err := ingredientRepo.GetForUpdate(opCtx, p.IngredientIDs())
		if err != nil {
			return err
		}
		pool := inventory.NewPool(locked...)

		res, err := op(pool, p, quantity)
		if err != nil {
			return err
		}
		result = res

		for _, c := range res.Changes {
			if err := ingredientRepo.UpdateStock(opCtx, c.IngredientID, c.After); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ProductID:     p.ID,
				IngredientID:  c.IngredientID,
				Type:          res.Operation,
				Quantity:      c.Delta(),
				StockAfter:    c.After,
				CreatedAt:     now,
				CreatedBy:     actor,
			}
			if err := movRepo.Create(opCtx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logFailure(spanName, productID, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("inventory.changes", len(result.Changes)))
	uc.logger.Info().
		Str("operation", result.Operation).
		Str("product_id", productID).
		Str("transaction_id", txID).
		Str("quantity", quantity.String()).
		Msg("operación de inventario confirmada")

	uc.publish(ctx, txID, now, actor, product, result)

	return &OperationOutput{
		Message:       message(product, quantity),
		TransactionID: txID,
		Product:       product,
		Result:        result,
	}, nil
}

func (uc *InventoryUseCase) logFailure(op, productID string, err error) {
	ev := uc.logger.Warn()
	if !isClientError(err) {
		ev = uc.logger.Error()
	}
	ev.Str("operation", op).Str("product_id", productID).Err(err).Msg("operación de inventario rechazada")
}

// publish emite el evento de stock; un fallo no revierte la operación ya confirmada.
func (uc *InventoryUseCase) publish(ctx context.Context, txID string, at time.Time, actor string, p *entity.Product, res *inventory.Result) {
	if uc.publisher == nil {
		return
	}
	changes := make([]entity.StockChange, 0, len(res.Changes))
	for _, c := range res.Changes {
		changes = append(changes, entity.StockChange{IngredientID: c.IngredientID, Previous: c.Before, Current: c.After})
	}
	event := &entity.StockEvent{
		ID:          txID,
		Type:        res.Operation,
		ProductID:   p.ID,
		ProductName: p.Name,
		Changes:     changes,
		OccurredAt:  at,
		Actor:       actor,
	}
	if err := uc.publisher.PublishStockEvent(ctx, event); err != nil {
		uc.logger.Warn().Str("transaction_id", txID).Err(err).Msg("no se pudo publicar el evento de stock")
	}
}

// Calories calcula las calorías totales de una unidad del producto.
func (uc *InventoryUseCase) Calories(ctx context.Context, productID string) (decimal.Decimal, error) {
	p, err := uc.Product(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.TotalCalories(p), nil
}

// Profitability aplica la estrategia configurada al producto.
func (uc *InventoryUseCase) Profitability(ctx context.Context, productID string) (decimal.Decimal, error) {
	p, err := uc.Product(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.Profitability(p, uc.opts.Strategy), nil
}

// Movements lista el libro de movimientos de un producto, más recientes primero.
func (uc *InventoryUseCase) Movements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if _, err := uc.Product(ctx, productID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movementRepo.ListByProduct(ctx, productID, nil, nil, limit, offset)
}
