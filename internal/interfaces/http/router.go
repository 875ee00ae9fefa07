package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/planning"
	"github.com/jhoicas/Produccion-api/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger   *inventory.LedgerUseCase
	Zones    *inventory.ZoneResolver
	Poster   *production.PosterUseCase
	Bom      *production.BomService
	Coverage *planning.CoverageUseCase
	Plans    *planning.PlanUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware())

	// Libro de inventario
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stock.Get("/balance", stockHandler.GetBalance)
	stock.Get("/balances", stockHandler.ListBalances)
	stock.Post("/batches", stockHandler.ApplyBatch)

	// Contabilización
	productionHandler := NewProductionHandler(deps.Poster)
	api.Post("/production/postings", productionHandler.PostProduction)
	api.Post("/receipts", productionHandler.PostReceipt)
	api.Get("/postings/:id", productionHandler.GetPosting)
	api.Post("/postings/:id/cancel", productionHandler.CancelPosting)

	// Planeación
	plan := api.Group("/planning")
	planningHandler := NewPlanningHandler(deps.Coverage, deps.Plans, deps.Bom)
	plan.Get("/coverage", planningHandler.GetCoverage)
	plan.Put("/plan", planningHandler.UpdatePlan)
	plan.Get("/requirements", planningHandler.GetRequirements)

	// Zonas
	zoneHandler := NewZoneHandler(deps.Zones)
	api.Get("/zones/:id/zones", zoneHandler.ListUnder)
}
