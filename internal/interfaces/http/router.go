package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockout-agent/internal/application/inventory"
	"github.com/jhoicas/stockout-agent/pkg/jwt"
	"github.com/jhoicas/stockout-agent/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine    *inventory.DecisionEngine
	Report    *inventory.StatusReportUseCase // opcional
	Logger    *logger.Logger
	JWTSecret string // vacío: las rutas de escritura quedan abiertas
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	decisionHandler := NewDecisionHandler(deps.Engine, deps.Logger)
	statusHandler := NewStatusHandler(deps.Engine, deps.Report)
	dataHandler := NewDataHandler(deps.Engine, deps.Logger)

	// Escrituras (registran decisiones o reemplazan datos): JWT + rol operator si hay secret.
	write := []fiber.Handler{}
	if deps.JWTSecret != "" {
		write = append(write, AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleOperator))
	}
	guarded := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, write...), h)
	}

	// Inventario y riesgo (lectura)
	api.Get("/inventory", decisionHandler.Inventory)
	products := api.Group("/products")
	products.Get("/:id/risk", decisionHandler.Risk)
	products.Get("/:id/timeline", decisionHandler.Timeline)
	products.Post("/:id/decisions", guarded(decisionHandler.Decide)...)

	// Log de decisiones
	decisions := api.Group("/decisions")
	decisions.Get("/", decisionHandler.Decisions)
	decisions.Post("/run", guarded(decisionHandler.RunAll)...)

	// Estado
	status := api.Group("/status")
	status.Get("/", statusHandler.Status)
	status.Get("/summary", statusHandler.Summary)
	status.Get("/report.pdf", statusHandler.Report)

	// Plantillas y carga de datos
	api.Get("/templates/inventory.csv", dataHandler.InventoryTemplate)
	api.Get("/templates/demand.csv", dataHandler.DemandTemplate)
	api.Post("/data", guarded(dataHandler.Upload)...)
}
