package csvsource

import (
	"fmt"
	"io"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// ParseInventory lee registros de inventario en el orden del archivo.
// product_id repetido devuelve domain.ErrDuplicate.
func ParseInventory(r io.Reader) ([]entity.InventoryRecord, error) {
	t, err := readTable(r, InventoryColumns)
	if err != nil {
		return nil, fmt.Errorf("inventario: %w", err)
	}
	seen := make(map[string]struct{}, len(t.rows))
	out := make([]entity.InventoryRecord, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		rec := entity.InventoryRecord{
			ProductID:   t.get(row, "product_id"),
			ProductName: t.get(row, "product_name"),
		}
		if rec.ProductID == "" {
			return nil, fmt.Errorf("inventario: %w: fila %d: product_id vacío", domain.ErrSchema, line)
		}
		if _, dup := seen[rec.ProductID]; dup {
			return nil, fmt.Errorf("inventario: %w: fila %d: product_id %s", domain.ErrDuplicate, line, rec.ProductID)
		}
		seen[rec.ProductID] = struct{}{}

		if rec.CurrentStock, err = parseCount(t.get(row, "current_stock")); err != nil {
			return nil, fmt.Errorf("inventario: %w: fila %d: current_stock: %v", domain.ErrSchema, line, err)
		}
		if rec.MaxCapacity, err = parseCount(t.get(row, "max_capacity")); err != nil {
			return nil, fmt.Errorf("inventario: %w: fila %d: max_capacity: %v", domain.ErrSchema, line, err)
		}
		if rec.LeadTimeDays, err = parseCount(t.get(row, "lead_time_days")); err != nil {
			return nil, fmt.Errorf("inventario: %w: fila %d: lead_time_days: %v", domain.ErrSchema, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseDemand lee registros de demanda.
func ParseDemand(r io.Reader) ([]entity.DemandRecord, error) {
	t, err := readTable(r, DemandColumns)
	if err != nil {
		return nil, fmt.Errorf("demanda: %w", err)
	}
	seen := make(map[string]struct{}, len(t.rows))
	out := make([]entity.DemandRecord, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		rec := entity.DemandRecord{ProductID: t.get(row, "product_id")}
		if rec.ProductID == "" {
			return nil, fmt.Errorf("demanda: %w: fila %d: product_id vacío", domain.ErrSchema, line)
		}
		if _, dup := seen[rec.ProductID]; dup {
			return nil, fmt.Errorf("demanda: %w: fila %d: product_id %s", domain.ErrDuplicate, line, rec.ProductID)
		}
		seen[rec.ProductID] = struct{}{}

		if rec.DailyDemand, err = parseRate(t.get(row, "daily_demand")); err != nil {
			return nil, fmt.Errorf("demanda: %w: fila %d: daily_demand: %v", domain.ErrSchema, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
