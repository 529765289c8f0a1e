package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// Umbrales de clasificación (inclusivos hacia el nivel más severo).
var (
	HighRiskThreshold   = decimal.NewFromFloat(1.0)
	MediumRiskThreshold = decimal.NewFromFloat(0.5)
)

// displayPlaces decimales con los que se devuelven DaysOfStock y RiskFactor (redondeo al par).
const displayPlaces = 2

// ClassifyRisk clasifica un factor de riesgo: >= 1.0 High, >= 0.5 Medium, resto Low.
// Un factor no acotado siempre es High.
func ClassifyRisk(riskFactor entity.Ratio) entity.RiskLevel {
	v, ok := riskFactor.Value()
	if !ok {
		return entity.RiskHigh
	}
	return classify(decimal.NewFromFloat(v))
}

func classify(rf decimal.Decimal) entity.RiskLevel {
	switch {
	case rf.GreaterThanOrEqual(HighRiskThreshold):
		return entity.RiskHigh
	case rf.GreaterThanOrEqual(MediumRiskThreshold):
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}

// RiskCalculator evalúa el riesgo de quiebre (servicio de dominio, puro).
//
//	DaysOfStock = CurrentStock / DailyDemand   (no acotado si DailyDemand == 0, y RiskFactor = 0)
//	RiskFactor  = LeadTimeDays / DaysOfStock   (no acotado si DaysOfStock <= 0)
//
// La clasificación usa el factor sin redondear; el redondeo a 2 decimales es solo de salida.
func RiskCalculator(inv entity.InventoryRecord, dem entity.DemandRecord) entity.RiskAssessment {
	out := entity.RiskAssessment{
		ProductID:    inv.ProductID,
		CurrentStock: inv.CurrentStock,
		DailyDemand:  dem.DailyDemand,
		LeadTime:     inv.LeadTimeDays,
	}

	demand := decimal.NewFromFloat(dem.DailyDemand)
	if demand.IsZero() {
		out.DaysOfStock = entity.Unbounded()
		out.RiskFactor = entity.Bounded(0)
		out.RiskLevel = entity.RiskLow
		return out
	}

	days := decimal.NewFromInt(int64(inv.CurrentStock)).Div(demand)
	out.DaysOfStock = entity.Bounded(days.RoundBank(displayPlaces).InexactFloat64())

	// Stock 0 con demanda positiva: sin días de cobertura, el factor no está acotado.
	if !days.IsPositive() {
		out.RiskFactor = entity.Unbounded()
		out.RiskLevel = entity.RiskHigh
		return out
	}

	rf := decimal.NewFromInt(int64(inv.LeadTimeDays)).Div(days)
	out.RiskFactor = entity.Bounded(rf.RoundBank(displayPlaces).InexactFloat64())
	out.RiskLevel = classify(rf)
	return out
}
