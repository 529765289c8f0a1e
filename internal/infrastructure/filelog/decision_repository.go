// Package filelog persiste el log de decisiones en un único archivo legible (JSON o YAML)
// que se reescribe completo en cada append.
package filelog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
)

var _ repository.DecisionRepository = (*DecisionRepository)(nil)

// DecisionRepository implementación sobre archivo. Mantiene en memoria la última versión
// escrita y la reescribe entera (archivo temporal + fsync + rename) en cada Append.
type DecisionRepository struct {
	mu      sync.Mutex
	path    string
	codec   codec
	entries []entity.Decision
	loaded  bool
}

// NewDecisionRepository construye el repositorio; el formato sale de la extensión de path.
func NewDecisionRepository(path string) *DecisionRepository {
	return &DecisionRepository{path: path, codec: codecFor(path)}
}

// Path devuelve el archivo que respalda el log.
func (r *DecisionRepository) Path() string {
	return r.path
}

// LoadAll lee el archivo completo. Si no existe, el log está vacío.
func (r *DecisionRepository) LoadAll(_ context.Context) ([]entity.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		return nil, err
	}
	out := make([]entity.Decision, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *DecisionRepository) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.entries, r.loaded = nil, true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: leer %s: %v", domain.ErrDeserialization, r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		r.entries, r.loaded = nil, true
		return nil
	}
	entries, err := r.codec.decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDeserialization, r.path, err)
	}
	for i, d := range entries {
		if entries[i], err = d.Restore(); err != nil {
			return fmt.Errorf("%w: %s: entrada %d: %v", domain.ErrDeserialization, r.path, i, err)
		}
	}
	r.entries, r.loaded = entries, true
	return nil
}

// Append agrega la decisión y reescribe el archivo. Si la escritura falla el estado en memoria no cambia.
func (r *DecisionRepository) Append(_ context.Context, d entity.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		if err := r.load(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	next := make([]entity.Decision, len(r.entries), len(r.entries)+1)
	copy(next, r.entries)
	next = append(next, d)

	data, err := r.codec.encode(next)
	if err != nil {
		return fmt.Errorf("%w: serializar: %v", domain.ErrPersistence, err)
	}
	if err := writeFileSync(r.path, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	r.entries = next
	return nil
}

// writeFileSync reemplaza path de forma atómica y espera a que los datos lleguen a disco.
func writeFileSync(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("permisos %s: %w", tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("escribir %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("cerrar %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("reemplazar %s: %w", path, err)
	}
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
