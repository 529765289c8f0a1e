package csvsource

import (
	"context"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
)

var _ repository.SourceRepository = (*FileSource)(nil)

// FileSource implementa repository.SourceRepository sobre dos archivos CSV.
type FileSource struct {
	InventoryPath string
	DemandPath    string
}

// NewFileSource construye la fuente con las rutas de inventario y demanda.
func NewFileSource(inventoryPath, demandPath string) *FileSource {
	return &FileSource{InventoryPath: inventoryPath, DemandPath: demandPath}
}

// LoadInventory lee el archivo de inventario completo.
func (s *FileSource) LoadInventory(_ context.Context) ([]entity.InventoryRecord, error) {
	f, err := openFile(s.InventoryPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInventory(f)
}

// LoadDemand lee el archivo de demanda completo.
func (s *FileSource) LoadDemand(_ context.Context) ([]entity.DemandRecord, error) {
	f, err := openFile(s.DemandPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDemand(f)
}
