package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	appplanning "github.com/jhoicas/Produccion-api/internal/application/planning"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// stores repositorios de la app según DB_DRIVER.
type stores struct {
	tx      appinventory.TxRunner
	stock   repository.StockRepository
	docs    repository.DocumentRepository
	plans   repository.PlanRepository
	catalog repository.CatalogRepository
	zones   repository.ZoneRepository
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	recorder := metrics.NewRecorder("mrp")
	roles := appinventory.ZoneRoles{
		Materials: cfg.Zones.MaterialsName,
		Semis:     cfg.Zones.SemisName,
		Finished:  cfg.Zones.FinishedName,
	}
	zoneResolver := appinventory.NewZoneResolver(st.zones, roles)
	ledgerUC := appinventory.NewLedgerUseCase(st.tx, st.stock, zoneResolver, recorder, log)
	bomSvc := production.NewBomService(st.catalog)
	posterUC := production.NewPosterUseCase(st.tx, ledgerUC, zoneResolver, bomSvc, st.catalog, st.docs, recorder, log)
	coverageUC := appplanning.NewCoverageUseCase(st.catalog, st.plans, st.stock, zoneResolver, appplanning.Settings{
		HorizonDays:      cfg.Planning.HorizonDays,
		GraceWorkingDays: cfg.Planning.GraceWorkingDays,
		Location:         cfg.Planning.Location(),
	})
	planUC := appplanning.NewPlanUseCase(st.tx, st.catalog, posterUC)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		SwaggerFile: cfg.HTTP.SwaggerFile,
		Metrics:     recorder.Handler(),
		Log:         log,
	}, httpRouter.RouterDeps{
		Ledger:   ledgerUC,
		Zones:    zoneResolver,
		Poster:   posterUC,
		Bom:      bomSvc,
		Coverage: coverageUC,
		Plans:    planUC,
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

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == "memory" {
		store := memory.NewStore()
		memory.SeedDemo(store, memory.DemoZoneNames{
			Materials: cfg.Zones.MaterialsName,
			Semis:     cfg.Zones.SemisName,
			Finished:  cfg.Zones.FinishedName,
		})
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &stores{
			tx:      store,
			stock:   store.Stock(),
			docs:    store.Documents(),
			plans:   store.Plans(),
			catalog: store.Catalog(),
			zones:   store.Zones(),
			close:   func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return &stores{
		tx:      postgres.NewTxRunner(pool),
		stock:   postgres.NewStockRepository(pool),
		docs:    postgres.NewDocumentRepository(pool),
		plans:   postgres.NewPlanRepository(pool),
		catalog: postgres.NewCatalogRepository(pool),
		zones:   postgres.NewZoneRepository(pool),
		close:   pool.Close,
	}, nil
}
