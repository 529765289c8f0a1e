package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/inventory"
)

func record(stock, capacity, leadTime int) entity.InventoryRecord {
	return entity.InventoryRecord{
		ProductID:    "P001",
		ProductName:  "Product A",
		CurrentStock: stock,
		MaxCapacity:  capacity,
		LeadTimeDays: leadTime,
	}
}

func demand(d float64) entity.DemandRecord {
	return entity.DemandRecord{ProductID: "P001", DailyDemand: d}
}

func finite(t *testing.T, r entity.Ratio) float64 {
	t.Helper()
	v, ok := r.Value()
	require.True(t, ok, "se esperaba una razón acotada")
	return v
}

func TestRiskCalculator_Escenarios(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		demand    float64
		leadTime  int
		wantDays  float64
		wantRisk  float64
		wantLevel entity.RiskLevel
	}{
		{"alto", 10, 5, 10, 2.0, 5.0, entity.RiskHigh},
		{"bajo", 100, 2, 5, 50.0, 0.1, entity.RiskLow},
		{"alto sobre el umbral", 50, 10, 6, 5.0, 1.2, entity.RiskHigh},
		{"umbral alto inclusivo", 40, 10, 4, 4.0, 1.0, entity.RiskHigh},
		{"umbral medio inclusivo", 100, 10, 5, 10.0, 0.5, entity.RiskMedium},
		{"medio", 100, 10, 6, 10.0, 0.6, entity.RiskMedium},
		{"redondeo a dos decimales", 10, 3, 7, 3.33, 2.1, entity.RiskHigh},
		{"empate de días redondea al par", 1, 8, 1, 0.12, 8.0, entity.RiskHigh},
		{"empate de factor redondea al par", 8, 1, 1, 8.0, 0.12, entity.RiskLow},
		{"empate hacia arriba al par", 3, 8, 1, 0.38, 2.67, entity.RiskHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.RiskCalculator(record(tc.stock, 500, tc.leadTime), demand(tc.demand))

			assert.InDelta(t, tc.wantDays, finite(t, got.DaysOfStock), 1e-9)
			assert.InDelta(t, tc.wantRisk, finite(t, got.RiskFactor), 1e-9)
			assert.Equal(t, tc.wantLevel, got.RiskLevel)
			assert.Equal(t, tc.stock, got.CurrentStock)
			assert.Equal(t, tc.demand, got.DailyDemand)
			assert.Equal(t, tc.leadTime, got.LeadTime)
		})
	}
}

// Demanda cero: días de stock no acotados, factor 0, nivel Low.
func TestRiskCalculator_DemandaCero(t *testing.T) {
	for _, stock := range []int{0, 1, 250} {
		got := inventory.RiskCalculator(record(stock, 500, 14), demand(0))

		assert.True(t, got.DaysOfStock.IsUnbounded())
		assert.Equal(t, entity.UnboundedSentinel, got.DaysOfStock.Float())
		assert.Equal(t, 0.0, finite(t, got.RiskFactor))
		assert.Equal(t, entity.RiskLow, got.RiskLevel)
	}
}

// Sin stock y con demanda: cero días de cobertura, factor no acotado y nivel High.
func TestRiskCalculator_SinStockEsFactorNoAcotado(t *testing.T) {
	got := inventory.RiskCalculator(record(0, 100, 3), demand(4))

	assert.Equal(t, 0.0, finite(t, got.DaysOfStock))
	assert.True(t, got.RiskFactor.IsUnbounded())
	assert.Equal(t, entity.RiskHigh, got.RiskLevel)
}

// La clasificación se hace con el factor sin redondear: 0.996 se muestra 1 pero es Medium.
func TestRiskCalculator_ClasificaSinRedondear(t *testing.T) {
	// days = 251/10 = 25.1; rf = 25/25.1 = 0.99601...
	got := inventory.RiskCalculator(record(251, 500, 25), demand(10))

	assert.InDelta(t, 1.0, finite(t, got.RiskFactor), 1e-9)
	assert.Equal(t, entity.RiskMedium, got.RiskLevel)
}

func TestRiskCalculator_EsIdempotente(t *testing.T) {
	inv, dem := record(37, 120, 9), demand(4.25)
	assert.Equal(t, inventory.RiskCalculator(inv, dem), inventory.RiskCalculator(inv, dem))
}

func TestClassifyRisk_Umbrales(t *testing.T) {
	cases := []struct {
		factor entity.Ratio
		want   entity.RiskLevel
	}{
		{entity.Bounded(0), entity.RiskLow},
		{entity.Bounded(0.49), entity.RiskLow},
		{entity.Bounded(0.5), entity.RiskMedium},
		{entity.Bounded(0.99), entity.RiskMedium},
		{entity.Bounded(1.0), entity.RiskHigh},
		{entity.Bounded(42), entity.RiskHigh},
		{entity.Unbounded(), entity.RiskHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, inventory.ClassifyRisk(tc.factor), "factor %s", tc.factor)
	}
}

// El nivel depende solo del factor: otras columnas no lo alteran.
func TestClassifyRisk_DependeSoloDelFactor(t *testing.T) {
	a := inventory.RiskCalculator(record(20, 100, 4), demand(5))  // days 4, rf 1
	b := inventory.RiskCalculator(record(80, 900, 8), demand(10)) // days 8, rf 1

	assert.Equal(t, a.RiskFactor, b.RiskFactor)
	assert.Equal(t, a.RiskLevel, b.RiskLevel)
	assert.Equal(t, inventory.ClassifyRisk(a.RiskFactor), a.RiskLevel)
}
