package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

func TestGenerateStatusPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	rows := []dto.StatusRow{
		{ProductID: "P001", ProductName: "Product A", CurrentStock: 10, DailyDemand: 5,
			RiskLevel: entity.RiskHigh, RiskFactor: entity.Bounded(5), DaysOfStock: entity.Bounded(2), LastAction: entity.ActionNoAction},
		{ProductID: "P004", ProductName: "Product D", CurrentStock: 40, DailyDemand: 0,
			RiskLevel: entity.RiskLow, RiskFactor: entity.Bounded(0), DaysOfStock: entity.Unbounded(), LastAction: "Reorder 3 units"},
	}
	summary := dto.StatusSummary{TotalProducts: 2, TotalStock: 50, HighRisk: 1, LowRisk: 1}

	out, err := g.GenerateStatusPDF(context.Background(), time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), rows, summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStatusPDF_SinProductos(t *testing.T) {
	out, err := NewMarotoPDFGenerator("Almacén").GenerateStatusPDF(context.Background(), time.Now(), nil, dto.StatusSummary{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateStatusPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoPDFGenerator("").GenerateStatusPDF(ctx, time.Now(), nil, dto.StatusSummary{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, "unbounded", ratio(entity.Unbounded()))
	assert.Equal(t, "0.67", ratio(entity.Bounded(0.666)))
	assert.Equal(t, colorHigh, riskColor(entity.RiskHigh))
}
