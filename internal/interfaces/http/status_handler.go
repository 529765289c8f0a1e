package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockout-agent/internal/application/inventory"
)

// StatusHandler tablero de estado y reporte PDF.
type StatusHandler struct {
	engine *inventory.DecisionEngine
	report *inventory.StatusReportUseCase
}

// NewStatusHandler construye el handler. report puede ser nil (sin PDF).
func NewStatusHandler(engine *inventory.DecisionEngine, report *inventory.StatusReportUseCase) *StatusHandler {
	return &StatusHandler{engine: engine, report: report}
}

// Status filas de estado por producto.
// GET /api/status
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	rows, err := h.engine.CurrentStatus(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}

// Summary contadores por nivel de riesgo.
// GET /api/status/summary
func (h *StatusHandler) Summary(c *fiber.Ctx) error {
	s, err := h.engine.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// Report descarga el estado actual en PDF.
// GET /api/status/report.pdf
func (h *StatusHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return c.SendStatus(fiber.StatusNotImplemented)
	}
	pdfBytes, filename, err := h.report.Render(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdfBytes)
}
