package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
)

var _ repository.DecisionRepository = (*DecisionRepo)(nil)

const decisionsSchema = `
CREATE TABLE IF NOT EXISTS decisions (
	seq            BIGSERIAL PRIMARY KEY,
	product_id     TEXT             NOT NULL,
	product_name   TEXT             NOT NULL,
	decided_at     TIMESTAMPTZ      NOT NULL,
	observed_stock INTEGER          NOT NULL,
	daily_demand   NUMERIC(14,4)    NOT NULL,
	days_of_stock  DOUBLE PRECISION NOT NULL,
	lead_time_days INTEGER          NOT NULL,
	risk_factor    DOUBLE PRECISION NOT NULL,
	risk_level     TEXT             NOT NULL,
	action         TEXT             NOT NULL,
	reorder_qty    INTEGER          NOT NULL CHECK (reorder_qty >= 0),
	reason         TEXT             NOT NULL
)`

const decisionsIndex = `CREATE INDEX IF NOT EXISTS idx_decisions_product ON decisions (product_id, seq)`

// EnsureSchema crea la tabla de decisiones si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range []string{decisionsSchema, decisionsIndex} {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure decisions schema: %w", err)
		}
	}
	return nil
}

// DecisionRepo implementación sobre PostgreSQL (usable con pool o tx).
type DecisionRepo struct {
	q Querier
}

// NewDecisionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDecisionRepository(q Querier) *DecisionRepo {
	return &DecisionRepo{q: q}
}

// LoadAll lee todas las decisiones en orden de inserción.
func (r *DecisionRepo) LoadAll(ctx context.Context) ([]entity.Decision, error) {
	query := `
		SELECT product_id, product_name, decided_at, observed_stock, daily_demand, days_of_stock,
		       lead_time_days, risk_factor, risk_level, action, reorder_qty, reason
		FROM decisions ORDER BY seq`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list decisions: %v", domain.ErrDeserialization, err)
	}
	defer rows.Close()

	var out []entity.Decision
	for rows.Next() {
		var (
			d                       entity.Decision
			demand                  decimal.Decimal
			daysOfStock, riskFactor float64
			level                   string
		)
		if err := rows.Scan(
			&d.ProductID, &d.ProductName, &d.Timestamp, &d.ObservedStock, &demand, &daysOfStock,
			&d.LeadTimeDays, &riskFactor, &level, &d.Action, &d.ReorderQty, &d.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: scan decision: %v", domain.ErrDeserialization, err)
		}
		d.Timestamp = d.Timestamp.UTC()
		d.DailyDemand = demand.InexactFloat64()
		d.DaysOfStock = entity.Bounded(daysOfStock)
		d.RiskFactor = entity.Bounded(riskFactor)
		d.RiskLevel = entity.RiskLevel(level)
		d, err := d.Restore()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDeserialization, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list decisions: %v", domain.ErrDeserialization, err)
	}
	return out, nil
}

// Append inserta la decisión (autocommit: durable al retornar).
func (r *DecisionRepo) Append(ctx context.Context, d entity.Decision) error {
	query := `
		INSERT INTO decisions (product_id, product_name, decided_at, observed_stock, daily_demand, days_of_stock,
		                       lead_time_days, risk_factor, risk_level, action, reorder_qty, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ProductID, d.ProductName, d.Timestamp, d.ObservedStock, decimal.NewFromFloat(d.DailyDemand),
		d.DaysOfStock.Float(), d.LeadTimeDays, d.RiskFactor.Float(), string(d.RiskLevel),
		d.Action, d.ReorderQty, d.Reason,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: decisión inválida para %s: %v", domain.ErrPersistence, d.ProductID, err)
		}
		return fmt.Errorf("%w: create decision: %v", domain.ErrPersistence, err)
	}
	return nil
}
