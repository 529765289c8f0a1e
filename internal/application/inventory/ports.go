package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
)

// StatusReportGenerator genera la representación imprimible (PDF) del estado del inventario.
type StatusReportGenerator interface {
	GenerateStatusPDF(ctx context.Context, generatedAt time.Time, rows []dto.StatusRow, summary dto.StatusSummary) ([]byte, error)
}
