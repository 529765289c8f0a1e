package entity

// InventoryRecord representa el estado de inventario de un producto.
// CurrentStock es la única columna que cambia durante una ejecución: crece con cada reorden confirmado.
type InventoryRecord struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	MaxCapacity  int    `json:"max_capacity"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// Headroom devuelve la capacidad libre (MaxCapacity - CurrentStock); puede ser negativa si hay sobrestock.
func (r InventoryRecord) Headroom() int {
	return r.MaxCapacity - r.CurrentStock
}
