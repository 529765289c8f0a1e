package repository

import (
	"context"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// DecisionRepository define el puerto de persistencia del log de decisiones (append-only).
//
// LoadAll devuelve el log completo en orden de inserción; un almacenamiento corrupto
// devuelve domain.ErrDeserialization. Append retorna solo cuando la decisión es durable;
// si falla, la decisión no se considera registrada.
type DecisionRepository interface {
	LoadAll(ctx context.Context) ([]entity.Decision, error)
	Append(ctx context.Context, d entity.Decision) error
}
