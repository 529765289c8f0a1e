package csvsource

import (
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// Columnas del export histórico de ventas de tienda.
const (
	retailProductID = "Product ID"
	retailCategory  = "Category"
	retailInventory = "Inventory Level"
	retailUnitsSold = "Units Sold"
)

// RetailColumns columnas obligatorias del export histórico.
var RetailColumns = []string{retailProductID, retailCategory, retailInventory, retailUnitsSold}

// Rangos de los parámetros simulados al preparar datos.
const (
	capacityFactorMin = 1.5
	capacityFactorMax = 2.5
	leadTimeMin       = 3
	leadTimeMax       = 14
)

type retailProduct struct {
	category  string
	lastLevel int
	unitsSum  decimal.Decimal
	rows      int64
}

// AggregateRetail resume el historial de ventas por producto:
//
//	daily_demand   = media de "Units Sold", redondeada a 2 decimales
//	current_stock  = último "Inventory Level" en el orden del archivo
//	product_name   = "<primera Category>_<Product ID>"
//	max_capacity   = floor(current_stock * U[1.5, 2.5))
//	lead_time_days = entero uniforme en [3, 14]
//
// Los parámetros simulados salen de rng; con la misma semilla el resultado es reproducible.
// La salida va ordenada por product_id.
func AggregateRetail(r io.Reader, rng *rand.Rand) ([]entity.InventoryRecord, []entity.DemandRecord, error) {
	t, err := readTable(r, RetailColumns)
	if err != nil {
		return nil, nil, fmt.Errorf("historial: %w", err)
	}

	products := make(map[string]*retailProduct)
	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, retailProductID)
		if id == "" {
			return nil, nil, fmt.Errorf("historial: %w: fila %d: Product ID vacío", domain.ErrSchema, line)
		}
		level, err := parseCount(t.get(row, retailInventory))
		if err != nil {
			return nil, nil, fmt.Errorf("historial: %w: fila %d: Inventory Level: %v", domain.ErrSchema, line, err)
		}
		sold, err := parseRate(t.get(row, retailUnitsSold))
		if err != nil {
			return nil, nil, fmt.Errorf("historial: %w: fila %d: Units Sold: %v", domain.ErrSchema, line, err)
		}

		p, ok := products[id]
		if !ok {
			p = &retailProduct{category: t.get(row, retailCategory), unitsSum: decimal.Zero}
			products[id] = p
		}
		p.lastLevel = level
		p.unitsSum = p.unitsSum.Add(decimal.NewFromFloat(sold))
		p.rows++
	}

	ids := make([]string, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	inv := make([]entity.InventoryRecord, 0, len(ids))
	dem := make([]entity.DemandRecord, 0, len(ids))
	for _, id := range ids {
		p := products[id]
		mean := p.unitsSum.Div(decimal.NewFromInt(p.rows)).RoundBank(2)
		factor := capacityFactorMin + rng.Float64()*(capacityFactorMax-capacityFactorMin)

		inv = append(inv, entity.InventoryRecord{
			ProductID:    id,
			ProductName:  p.category + "_" + id,
			CurrentStock: p.lastLevel,
			MaxCapacity:  int(float64(p.lastLevel) * factor),
			LeadTimeDays: leadTimeMin + rng.Intn(leadTimeMax-leadTimeMin+1),
		})
		dem = append(dem, entity.DemandRecord{ProductID: id, DailyDemand: mean.InexactFloat64()})
	}
	return inv, dem, nil
}
