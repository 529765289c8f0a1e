package inventory

import (
	"context"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	domaininv "github.com/jhoicas/stockout-agent/internal/domain/inventory"
)

// CurrentStatus recalcula el riesgo de cada producto (en el orden del inventario) y lo une con
// la acción de su última decisión, o "No Action" si no tiene. No modifica inventario ni log.
func (e *DecisionEngine) CurrentStatus(_ context.Context) ([]dto.StatusRow, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentStatus()
}

func (e *DecisionEngine) currentStatus() ([]dto.StatusRow, error) {
	rows := make([]dto.StatusRow, 0, len(e.records))
	for _, rec := range e.records {
		i, dem, err := e.lookup(rec.ProductID)
		if err != nil {
			return nil, err
		}
		risk := domaininv.RiskCalculator(e.records[i], dem)

		lastAction := entity.ActionNoAction
		if d, ok := e.log.Latest(rec.ProductID); ok {
			lastAction = d.Action
		}
		rows = append(rows, dto.StatusRow{
			ProductID:    rec.ProductID,
			ProductName:  rec.ProductName,
			CurrentStock: rec.CurrentStock,
			DailyDemand:  risk.DailyDemand,
			RiskLevel:    risk.RiskLevel,
			RiskFactor:   risk.RiskFactor,
			DaysOfStock:  risk.DaysOfStock,
			LastAction:   lastAction,
		})
	}
	return rows, nil
}

// Summary cuenta productos por nivel de riesgo (tablero de resumen).
func (e *DecisionEngine) Summary(_ context.Context) (dto.StatusSummary, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rows, err := e.currentStatus()
	if err != nil {
		return dto.StatusSummary{}, err
	}
	return summarize(rows, e.log.Len()), nil
}

// StatusWithSummary devuelve filas y resumen calculados sobre el mismo estado.
func (e *DecisionEngine) StatusWithSummary(_ context.Context) ([]dto.StatusRow, dto.StatusSummary, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rows, err := e.currentStatus()
	if err != nil {
		return nil, dto.StatusSummary{}, err
	}
	return rows, summarize(rows, e.log.Len()), nil
}

func summarize(rows []dto.StatusRow, decisions int) dto.StatusSummary {
	s := dto.StatusSummary{TotalProducts: len(rows), DecisionsLogged: decisions}
	for _, r := range rows {
		s.TotalStock += r.CurrentStock
		switch r.RiskLevel {
		case entity.RiskHigh:
			s.HighRisk++
		case entity.RiskMedium:
			s.MediumRisk++
		default:
			s.LowRisk++
		}
	}
	return s
}
