package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/pos-inventario/internal/application/auth"
	"github.com/jhoicas/pos-inventario/internal/application/inventory"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	domaininv "github.com/jhoicas/pos-inventario/internal/domain/inventory"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/pos-inventario/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/pos-inventario/internal/interfaces/http"
	"github.com/jhoicas/pos-inventario/pkg/config"
	"github.com/jhoicas/pos-inventario/pkg/logger"
	"github.com/jhoicas/pos-inventario/pkg/observability"
)

const swaggerFile = "./docs/swagger.json"

// openStoresFn se reemplaza en tests.
var openStoresFn = openStores

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("aplicación terminada con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arma y sirve la API hasta que ctx termine o el servidor falle.
// Todo lo abierto aquí se cierra antes de volver, también en los caminos de error.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.App.Env,
	})
	if err != nil {
		return fmt.Errorf("configurar trazas: %w", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			log.Error().Err(err).Msg("cerrar trazas")
		}
	}()

	st, err := openStoresFn(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("abrir persistencia: %w", err)
	}
	defer st.close()

	var publisher inventory.EventPublisher = messaging.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.StockTopic))
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.StockTopic).Msg("eventos de stock hacia Kafka")
	}

	strategy, err := domaininv.StrategyByName(cfg.Inventory.ProfitabilityStrategy)
	if err != nil {
		return fmt.Errorf("estrategia de rentabilidad: %w", err)
	}

	inventoryUC := inventory.NewInventoryUseCase(st.txRunner, st.products, st.movements, publisher, inventory.Options{
		DefaultRestock:   int64(cfg.Inventory.DefaultRestock),
		DefaultRenew:     int64(cfg.Inventory.DefaultRenew),
		OperationTimeout: cfg.Inventory.OperationTimeout,
		Strategy:         strategy,
	}, log.Zerolog())
	productUC := usecase.NewProductUseCase(st.txRunner, st.products)
	ingredientUC := usecase.NewIngredientUseCase(st.ingredients)
	reportUC := inventory.NewReportUseCase(st.ingredients, infrapdf.NewMarotoStockReportGenerator(cfg.App.Name))
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestTelemetry(log.Service("http")))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "POS Inventario API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(st.users),
		ProductUC:    productUC,
		IngredientUC: ingredientUC,
		InventoryUC:  inventoryUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
		ServiceName:  cfg.App.Name,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
