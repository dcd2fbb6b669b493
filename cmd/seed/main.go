// seed carga un catálogo YAML (ingredientes, productos con receta y usuarios) en PostgreSQL.
//
// Uso: go run ./cmd/seed [ruta/catalogo.yaml]
// Por defecto usa cmd/seed/catalog.example.yaml. Se puede ejecutar varias veces.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/pos-inventario/internal/application/auth"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventario/pkg/config"
	"github.com/jhoicas/pos-inventario/pkg/logger"
)

func main() {
	path := "cmd/seed/catalog.example.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir catálogo")
	}
	defer f.Close()
	cat, err := parseCatalog(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar schema")
	}

	s := &seeder{
		ingredients: usecase.NewIngredientUseCase(postgres.NewIngredientRepository(pool)),
		products:    usecase.NewProductUseCase(postgres.NewTxRunner(pool), postgres.NewProductRepository(pool)),
		auth: auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
	}
	res, err := s.apply(ctx, cat)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	log.Info().
		Int("ingredientes_creados", res.IngredientsCreated).
		Int("ingredientes_existentes", res.IngredientsSkipped).
		Int("productos_creados", res.ProductsCreated).
		Int("productos_existentes", res.ProductsSkipped).
		Int("usuarios_creados", res.UsersCreated).
		Int("usuarios_existentes", res.UsersSkipped).
		Msg("catálogo cargado")
}
