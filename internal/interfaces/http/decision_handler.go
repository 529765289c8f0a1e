package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
	"github.com/jhoicas/stockout-agent/internal/application/inventory"
	"github.com/jhoicas/stockout-agent/pkg/logger"
)

// DecisionHandler expone riesgo, decisiones y su historial.
type DecisionHandler struct {
	engine *inventory.DecisionEngine
	log    *logger.Logger
}

// NewDecisionHandler construye el handler.
func NewDecisionHandler(engine *inventory.DecisionEngine, log *logger.Logger) *DecisionHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DecisionHandler{engine: engine, log: log}
}

// Inventory lista el inventario actual.
// GET /api/inventory
func (h *DecisionHandler) Inventory(c *fiber.Ctx) error {
	items := h.engine.Inventory()
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Risk evalúa el riesgo actual de un producto sin registrar nada.
// GET /api/products/:id/risk
func (h *DecisionHandler) Risk(c *fiber.Ctx) error {
	risk, err := h.engine.CalculateRisk(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(risk)
}

// Decide registra una decisión para el producto y aplica la reposición.
// POST /api/products/:id/decisions
func (h *DecisionHandler) Decide(c *fiber.Ctx) error {
	d, err := h.engine.MakeDecision(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().
		Str("product_id", d.ProductID).
		Str("subject", GetSubject(c)).
		Str("action", d.Action).
		Msg("decisión solicitada vía API")
	return c.Status(fiber.StatusCreated).JSON(d)
}

// Timeline historial de decisiones del producto.
// GET /api/products/:id/timeline
func (h *DecisionHandler) Timeline(c *fiber.Ctx) error {
	id := c.Params("id")
	ds := h.engine.ProductTimeline(id)
	return c.JSON(dto.TimelineResponse{ProductID: id, Total: len(ds), Decisions: ds})
}

// RunAll decide para todos los productos.
// POST /api/decisions/run
func (h *DecisionHandler) RunAll(c *fiber.Ctx) error {
	ds, err := h.engine.RunAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := dto.RunResponse{Total: len(ds), Decisions: ds}
	for _, d := range ds {
		out.ReorderedUnits += d.ReorderQty
	}
	return c.JSON(out)
}

// Decisions log completo.
// GET /api/decisions
func (h *DecisionHandler) Decisions(c *fiber.Ctx) error {
	ds := h.engine.Decisions()
	return c.JSON(fiber.Map{"total": len(ds), "decisions": ds})
}
