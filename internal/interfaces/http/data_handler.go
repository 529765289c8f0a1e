package http

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
	"github.com/jhoicas/stockout-agent/internal/application/inventory"
	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/csvsource"
	"github.com/jhoicas/stockout-agent/pkg/logger"
)

// DataHandler plantillas CSV y reemplazo de las fuentes de datos.
type DataHandler struct {
	engine *inventory.DecisionEngine
	log    *logger.Logger
}

// NewDataHandler construye el handler.
func NewDataHandler(engine *inventory.DecisionEngine, log *logger.Logger) *DataHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DataHandler{engine: engine, log: log}
}

// InventoryTemplate plantilla CSV de inventario.
// GET /api/templates/inventory.csv
func (h *DataHandler) InventoryTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment("inventory_template.csv")
	return c.Send(csvsource.InventoryTemplate())
}

// DemandTemplate plantilla CSV de demanda.
// GET /api/templates/demand.csv
func (h *DataHandler) DemandTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment("demand_template.csv")
	return c.Send(csvsource.DemandTemplate())
}

// Upload reemplaza inventario y demanda con los archivos multipart "inventory" y "demand".
// Ambos se validan antes de tocar el motor; el log de decisiones se conserva.
// POST /api/data
func (h *DataHandler) Upload(c *fiber.Ctx) error {
	invHeader, err := c.FormFile("inventory")
	if err != nil {
		return respondError(c, fmt.Errorf("%w: falta el archivo inventory", domain.ErrInvalidInput))
	}
	demHeader, err := c.FormFile("demand")
	if err != nil {
		return respondError(c, fmt.Errorf("%w: falta el archivo demand", domain.ErrInvalidInput))
	}

	inv, err := parseUpload(invHeader, csvsource.ParseInventory)
	if err != nil {
		return respondError(c, err)
	}
	dem, err := parseUpload(demHeader, csvsource.ParseDemand)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.engine.ReplaceSources(inv, dem); err != nil {
		return respondError(c, err)
	}

	h.log.Info().
		Str("subject", GetSubject(c)).
		Str("inventory_file", invHeader.Filename).
		Str("demand_file", demHeader.Filename).
		Int("inventory_records", len(inv)).
		Int("demand_records", len(dem)).
		Msg("fuentes de datos cargadas vía API")
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{InventoryRecords: len(inv), DemandRecords: len(dem)})
}

func parseUpload[T entity.InventoryRecord | entity.DemandRecord](
	fh *multipart.FileHeader,
	parse func(r io.Reader) ([]T, error),
) ([]T, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrInvalidInput, fh.Filename, err)
	}
	rc, err := csvsource.Decompress(fh.Filename, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer rc.Close()
	return parse(rc)
}
