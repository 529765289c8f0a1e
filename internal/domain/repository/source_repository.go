package repository

import (
	"context"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// SourceRepository entrega los datos de inventario y demanda que se cargan al arrancar.
// Las violaciones de esquema se reportan como domain.ErrSchema antes de cualquier decisión.
type SourceRepository interface {
	LoadInventory(ctx context.Context) ([]entity.InventoryRecord, error)
	LoadDemand(ctx context.Context) ([]entity.DemandRecord, error)
}
