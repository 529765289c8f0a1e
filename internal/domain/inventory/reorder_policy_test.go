package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/inventory"
)

func plan(stock, capacity, leadTime int, d float64) inventory.ReorderPlan {
	inv := record(stock, capacity, leadTime)
	return inventory.ReorderPolicy(inventory.RiskCalculator(inv, demand(d)), inv)
}

func TestReorderPolicy_AltoCubreLeadTimeConColchon(t *testing.T) {
	p := plan(10, 500, 10, 5)

	assert.Equal(t, "75", p.TargetStock.String())
	assert.Equal(t, 65, p.Quantity)
	assert.False(t, p.UsedHeadroom)
	assert.Equal(t, "Reorder 65 units", p.Action)
}

func TestReorderPolicy_UmbralesAlto(t *testing.T) {
	assert.Equal(t, 40, plan(50, 500, 6, 10).Quantity) // 10*6*1.5 = 90
	assert.Equal(t, 20, plan(40, 500, 4, 10).Quantity) // 10*4*1.5 = 60
}

func TestReorderPolicy_MedioUsaMultiplicadorDos(t *testing.T) {
	p := plan(100, 500, 6, 10) // rf 0.6, objetivo 120

	assert.Equal(t, "120", p.TargetStock.String())
	assert.Equal(t, 20, p.Quantity)
	assert.Equal(t, "Reorder 20 units", p.Action)
}

// Medium con objetivo ya cubierto: respaldo del 50% de la capacidad libre.
func TestReorderPolicy_MedioRespaldoPorCapacidad(t *testing.T) {
	p := plan(100, 200, 5, 10) // rf 0.5, objetivo 100 -> 0

	assert.True(t, p.UsedHeadroom)
	assert.Equal(t, 50, p.Quantity)
}

// High con objetivo menor a una unidad: respaldo del 80% de la capacidad libre.
func TestReorderPolicy_AltoRespaldoPorCapacidad(t *testing.T) {
	p := plan(0, 10, 3, 0.1) // sin stock -> High; objetivo 0.45 -> 0

	assert.True(t, p.UsedHeadroom)
	assert.Equal(t, 8, p.Quantity)
	assert.Equal(t, "Reorder 8 units", p.Action)
}

// Con sobrestock el respaldo no puede ser negativo.
func TestReorderPolicy_RespaldoNuncaNegativo(t *testing.T) {
	p := plan(100, 80, 5, 10)

	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, entity.ActionNoAction, p.Action)
}

func TestReorderPolicy_BajoNoRepone(t *testing.T) {
	p := plan(100, 500, 5, 2)

	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, entity.ActionNoAction, p.Action)
	assert.Contains(t, p.Reason, "Low risk")
	assert.Contains(t, p.Reason, "50 days")
	assert.Contains(t, p.Reason, "5 day lead time")
	assert.Contains(t, p.Reason, "0.1")
}

func TestReorderPolicy_JustificacionIncluyeCifras(t *testing.T) {
	p := plan(10, 500, 10, 5)

	assert.Contains(t, p.Reason, "Critical")
	assert.Contains(t, p.Reason, "2 days")
	assert.Contains(t, p.Reason, "lead time is 10 days")
	assert.Contains(t, p.Reason, "Risk factor 5")
	assert.Contains(t, p.Reason, "65 units")

	m := plan(100, 500, 6, 10)
	assert.Contains(t, m.Reason, "Moderate risk")
	assert.Contains(t, m.Reason, "20 units")
}

func TestReorderPolicy_DemandaCeroNoRepone(t *testing.T) {
	p := plan(5, 100, 7, 0)

	assert.Equal(t, 0, p.Quantity)
	assert.Contains(t, p.Reason, "unbounded")
}
