package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/domain/repository"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventario/pkg/config"
	"github.com/jhoicas/pos-inventario/pkg/logger"
)

// stores agrupa los adaptadores de persistencia elegidos por STORE_DRIVER.
type stores struct {
	txRunner    inventory.TxRunner
	products    repository.ProductRepository
	ingredients repository.IngredientRepository
	movements   repository.StockMovementRepository
	users       repository.UserRepository
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case "memory":
		s := memory.NewStore()
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		return &stores{
			txRunner:    s,
			products:    s.Products(),
			ingredients: s.Ingredients(),
			movements:   s.Movements(),
			users:       s.Users(),
			close:       func() {},
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.ApplySchema(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("schema aplicado")
		}
		return &stores{
			txRunner:    postgres.NewTxRunner(pool),
			products:    postgres.NewProductRepository(pool),
			ingredients: postgres.NewIngredientRepository(pool),
			movements:   postgres.NewStockMovementRepository(pool),
			users:       postgres.NewUserRepository(pool),
			close:       pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}
}
