package dto

import "github.com/jhoicas/stockout-agent/internal/domain/entity"

// RunResponse resultado de evaluar todos los productos.
type RunResponse struct {
	Total          int               `json:"total"`
	ReorderedUnits int               `json:"reordered_units"`
	Decisions      []entity.Decision `json:"decisions"`
}

// TimelineResponse historial de decisiones de un producto.
type TimelineResponse struct {
	ProductID string            `json:"product_id"`
	Total     int               `json:"total"`
	Decisions []entity.Decision `json:"decisions"`
}

// UploadResponse resultado de reemplazar las fuentes de datos.
type UploadResponse struct {
	InventoryRecords int `json:"inventory_records"`
	DemandRecords    int `json:"demand_records"`
}
