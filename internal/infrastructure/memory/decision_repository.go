// Package memory contiene almacenamientos en memoria para tests y ejecuciones efímeras.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
)

var _ repository.DecisionRepository = (*DecisionRepository)(nil)

// DecisionRepository log de decisiones append-only en memoria.
// FailWith permite simular fallos de persistencia.
type DecisionRepository struct {
	mu        sync.Mutex
	decisions []entity.Decision
	failWith  error
}

// NewDecisionRepository construye el repositorio, opcionalmente con un log inicial.
func NewDecisionRepository(initial ...entity.Decision) *DecisionRepository {
	r := &DecisionRepository{}
	r.decisions = append(r.decisions, initial...)
	return r
}

// FailWith hace que los siguientes Append devuelvan err (nil restablece).
func (r *DecisionRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// LoadAll devuelve una copia del log.
func (r *DecisionRepository) LoadAll(_ context.Context) ([]entity.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Decision, len(r.decisions))
	copy(out, r.decisions)
	return out, nil
}

// Append agrega la decisión salvo que se haya configurado un fallo.
func (r *DecisionRepository) Append(_ context.Context, d entity.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.decisions = append(r.decisions, d)
	return nil
}
