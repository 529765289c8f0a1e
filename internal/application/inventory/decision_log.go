package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
)

// DecisionLog secuencia ordenada e inmutable de decisiones, respaldada por un repositorio.
// No es segura para uso concurrente: el DecisionEngine la protege con su propio lock.
type DecisionLog struct {
	repo    repository.DecisionRepository
	entries []entity.Decision
	latest  map[string]int // product_id -> índice de su última decisión
}

// LoadDecisionLog carga el log persistido completo antes de aceptar decisiones.
// Un log corrupto falla con domain.ErrDeserialization; no hay carga parcial.
func LoadDecisionLog(ctx context.Context, repo repository.DecisionRepository) (*DecisionLog, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDeserialization) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDeserialization, err)
	}
	l := &DecisionLog{repo: repo, latest: make(map[string]int)}
	for _, d := range entries {
		l.push(d)
	}
	return l, nil
}

func (l *DecisionLog) push(d entity.Decision) {
	l.entries = append(l.entries, d)
	l.latest[d.ProductID] = len(l.entries) - 1
}

// Append persiste la decisión y solo entonces la agrega en memoria.
// Cualquier fallo del repositorio se reporta como domain.ErrPersistence.
func (l *DecisionLog) Append(ctx context.Context, d entity.Decision) error {
	if err := l.repo.Append(ctx, d); err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	l.push(d)
	return nil
}

// Timeline devuelve las decisiones de un producto en orden cronológico (de inserción).
func (l *DecisionLog) Timeline(productID string) []entity.Decision {
	out := []entity.Decision{}
	for _, d := range l.entries {
		if d.ProductID == productID {
			out = append(out, d)
		}
	}
	return out
}

// Latest devuelve la última decisión registrada para el producto.
func (l *DecisionLog) Latest(productID string) (entity.Decision, bool) {
	i, ok := l.latest[productID]
	if !ok {
		return entity.Decision{}, false
	}
	return l.entries[i], true
}

// All devuelve una copia del log completo.
func (l *DecisionLog) All() []entity.Decision {
	out := make([]entity.Decision, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len cantidad de decisiones registradas.
func (l *DecisionLog) Len() int {
	return len(l.entries)
}
