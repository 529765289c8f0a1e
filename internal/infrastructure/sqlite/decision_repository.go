package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
)

var _ repository.DecisionRepository = (*DecisionRepository)(nil)

type decisionRow struct {
	ProductID     string  `db:"product_id"`
	ProductName   string  `db:"product_name"`
	DecidedAt     string  `db:"decided_at"`
	ObservedStock int     `db:"observed_stock"`
	DailyDemand   float64 `db:"daily_demand"`
	DaysOfStock   float64 `db:"days_of_stock"`
	LeadTimeDays  int     `db:"lead_time_days"`
	RiskFactor    float64 `db:"risk_factor"`
	RiskLevel     string  `db:"risk_level"`
	Action        string  `db:"action"`
	ReorderQty    int     `db:"reorder_qty"`
	Reason        string  `db:"reason"`
}

func toRow(d entity.Decision) decisionRow {
	return decisionRow{
		ProductID:     d.ProductID,
		ProductName:   d.ProductName,
		DecidedAt:     d.Timestamp.Format(time.RFC3339Nano),
		ObservedStock: d.ObservedStock,
		DailyDemand:   d.DailyDemand,
		DaysOfStock:   d.DaysOfStock.Float(),
		LeadTimeDays:  d.LeadTimeDays,
		RiskFactor:    d.RiskFactor.Float(),
		RiskLevel:     string(d.RiskLevel),
		Action:        d.Action,
		ReorderQty:    d.ReorderQty,
		Reason:        d.Reason,
	}
}

func (r decisionRow) toEntity() (entity.Decision, error) {
	ts, err := entity.ParseTimestamp(r.DecidedAt)
	if err != nil {
		return entity.Decision{}, fmt.Errorf("decided_at %q: %w", r.DecidedAt, err)
	}
	d := entity.Decision{
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Timestamp:     ts,
		ObservedStock: r.ObservedStock,
		DailyDemand:   r.DailyDemand,
		DaysOfStock:   entity.Bounded(r.DaysOfStock),
		LeadTimeDays:  r.LeadTimeDays,
		RiskFactor:    entity.Bounded(r.RiskFactor),
		RiskLevel:     entity.RiskLevel(r.RiskLevel),
		Action:        r.Action,
		ReorderQty:    r.ReorderQty,
		Reason:        r.Reason,
	}
	return d.Restore()
}

// DecisionRepository implementación sobre SQLite: una fila por decisión, orden por seq.
type DecisionRepository struct {
	db *sqlx.DB
}

// NewDecisionRepository construye el adaptador sobre una base abierta con Open.
func NewDecisionRepository(db *sqlx.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// LoadAll devuelve todas las decisiones en orden de inserción.
func (r *DecisionRepository) LoadAll(ctx context.Context) ([]entity.Decision, error) {
	var rows []decisionRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT product_id, product_name, decided_at, observed_stock, daily_demand, days_of_stock,
       lead_time_days, risk_factor, risk_level, action, reorder_qty, reason
FROM decisions ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll: %v", domain.ErrDeserialization, err)
	}
	out := make([]entity.Decision, 0, len(rows))
	for i, row := range rows {
		d, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrDeserialization, i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Append inserta la decisión; el commit de SQLite la deja en disco antes de retornar.
func (r *DecisionRepository) Append(ctx context.Context, d entity.Decision) error {
	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO decisions(
  product_id, product_name, decided_at, observed_stock, daily_demand, days_of_stock,
  lead_time_days, risk_factor, risk_level, action, reorder_qty, reason
) VALUES (
  :product_id, :product_name, :decided_at, :observed_stock, :daily_demand, :days_of_stock,
  :lead_time_days, :risk_factor, :risk_level, :action, :reorder_qty, :reason
);`, toRow(d))
	if err != nil {
		return fmt.Errorf("%w: Append insert: %v", domain.ErrPersistence, err)
	}
	return nil
}
