package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stockout-agent/internal/application/inventory"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/csvsource"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/filelog"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockout-agent/internal/infrastructure/pdf"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/postgres"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/stockout-agent/internal/interfaces/http"
	"github.com/jhoicas/stockout-agent/pkg/config"
	"github.com/jhoicas/stockout-agent/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("decision_store", cfg.Decisions.Store).
		Bool("auth", cfg.JWT.AuthEnabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	decisionRepo, closeStore, err := openDecisionStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de decisiones")
	}
	defer closeStore()

	source := csvsource.NewFileSource(cfg.Data.InventoryFile, cfg.Data.DemandFile)
	engine, err := inventory.NewDecisionEngineFromSource(ctx, source, decisionRepo, inventory.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).
			Str("inventory_file", cfg.Data.InventoryFile).
			Str("demand_file", cfg.Data.DemandFile).
			Msg("inicializar motor de decisiones")
	}

	// PDF: reporte imprimible del estado del inventario
	reportUC := inventory.NewStatusReportUseCase(engine, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Data.UploadMaxBytes,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:    engine,
		Report:    reportUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openDecisionStore construye el repositorio del log de decisiones según DECISION_STORE.
// La función de cierre devuelta siempre es segura de llamar.
func openDecisionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DecisionRepository, func(), error) {
	switch cfg.Decisions.Store {
	case config.StoreFile:
		log.Info().Str("path", cfg.Decisions.LogFile).Msg("log de decisiones en archivo")
		return filelog.NewDecisionRepository(cfg.Decisions.LogFile), func() {}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.Decisions.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Decisions.SQLitePath).Msg("log de decisiones en SQLite")
		return sqlite.NewDecisionRepository(db), func() { _ = db.Close() }, nil

	case config.StorePostgres:
		repo, closeFn, err := postgres.OpenDecisionStore(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Str("db", cfg.DB.DBName).Msg("log de decisiones en PostgreSQL")
		return repo, closeFn, nil

	case config.StoreMemory:
		log.Warn().Msg("log de decisiones en memoria: se pierde al reiniciar")
		return memory.NewDecisionRepository(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("DECISION_STORE %q no soportado", cfg.Decisions.Store)
}
