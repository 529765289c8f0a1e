package inventory

import (
	"context"
	"fmt"
	"time"
)

// StatusReportUseCase genera el reporte PDF del estado actual del inventario.
type StatusReportUseCase struct {
	engine    *DecisionEngine
	generator StatusReportGenerator
	now       func() time.Time
}

// NewStatusReportUseCase construye el caso de uso.
func NewStatusReportUseCase(engine *DecisionEngine, generator StatusReportGenerator) *StatusReportUseCase {
	return &StatusReportUseCase{engine: engine, generator: generator, now: time.Now}
}

// Render devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *StatusReportUseCase) Render(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	rows, summary, err := uc.engine.StatusWithSummary(ctx)
	if err != nil {
		return nil, "", err
	}
	generatedAt := uc.now()
	pdfBytes, err = uc.generator.GenerateStatusPDF(ctx, generatedAt, rows, summary)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de estado: %w", err)
	}
	return pdfBytes, fmt.Sprintf("stock-status-%s.pdf", generatedAt.Format("20060102-1504")), nil
}
