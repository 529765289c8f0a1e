package csvsource

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// Plantillas de ejemplo que se ofrecen para descarga.
var (
	sampleInventory = []entity.InventoryRecord{
		{ProductID: "P001", ProductName: "Product A", CurrentStock: 100, MaxCapacity: 500, LeadTimeDays: 5},
		{ProductID: "P002", ProductName: "Product B", CurrentStock: 200, MaxCapacity: 600, LeadTimeDays: 7},
		{ProductID: "P003", ProductName: "Product C", CurrentStock: 150, MaxCapacity: 400, LeadTimeDays: 10},
	}
	sampleDemand = []entity.DemandRecord{
		{ProductID: "P001", DailyDemand: 25.5},
		{ProductID: "P002", DailyDemand: 40.2},
		{ProductID: "P003", DailyDemand: 30.0},
	}
)

// InventoryTemplate devuelve el CSV de ejemplo de inventario.
func InventoryTemplate() []byte {
	return EncodeInventory(sampleInventory)
}

// DemandTemplate devuelve el CSV de ejemplo de demanda.
func DemandTemplate() []byte {
	return EncodeDemand(sampleDemand)
}

// EncodeInventory serializa registros de inventario con la cabecera estándar.
func EncodeInventory(records []entity.InventoryRecord) []byte {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, InventoryColumns)
	for _, r := range records {
		rows = append(rows, []string{
			r.ProductID,
			r.ProductName,
			strconv.Itoa(r.CurrentStock),
			strconv.Itoa(r.MaxCapacity),
			strconv.Itoa(r.LeadTimeDays),
		})
	}
	return encode(rows)
}

// EncodeDemand serializa registros de demanda con la cabecera estándar.
func EncodeDemand(records []entity.DemandRecord) []byte {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, DemandColumns)
	for _, r := range records {
		rows = append(rows, []string{r.ProductID, strconv.FormatFloat(r.DailyDemand, 'f', -1, 64)})
	}
	return encode(rows)
}

func encode(rows [][]string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// Escribir en un bytes.Buffer no falla.
	_ = w.WriteAll(rows)
	return buf.Bytes()
}
