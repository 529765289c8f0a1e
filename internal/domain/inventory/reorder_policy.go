package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// Multiplicadores de la política escalonada.
// High usa un colchón menor que Medium (1.5 vs 2); se conserva así hasta que producto lo confirme.
var (
	HighSafetyMultiplier   = decimal.NewFromFloat(1.5)
	MediumSafetyMultiplier = decimal.NewFromInt(2)
	HighHeadroomFraction   = decimal.NewFromFloat(0.8)
	MediumHeadroomFraction = decimal.NewFromFloat(0.5)
)

// ReorderPlan resultado de aplicar la política a una evaluación de riesgo.
type ReorderPlan struct {
	TargetStock  decimal.Decimal // demanda durante el lead time x multiplicador (cero en Low)
	Quantity     int
	UsedHeadroom bool // true si se cayó al respaldo por capacidad libre
	Action       string
	Reason       string
}

// ReorderPolicy calcula la cantidad a reponer para un producto.
//
//	High:   objetivo = demanda * lead_time * 1.5; qty = max(0, floor(objetivo - stock));
//	        si qty == 0 -> floor(capacidad_libre * 0.8)
//	Medium: objetivo = demanda * lead_time * 2;   respaldo floor(capacidad_libre * 0.5)
//	Low:    sin reposición.
//
// El respaldo nunca es negativo aunque haya sobrestock.
func ReorderPolicy(risk entity.RiskAssessment, inv entity.InventoryRecord) ReorderPlan {
	var multiplier, fraction decimal.Decimal
	switch risk.RiskLevel {
	case entity.RiskHigh:
		multiplier, fraction = HighSafetyMultiplier, HighHeadroomFraction
	case entity.RiskMedium:
		multiplier, fraction = MediumSafetyMultiplier, MediumHeadroomFraction
	default:
		return ReorderPlan{
			TargetStock: decimal.Zero,
			Action:      entity.ActionNoAction,
			Reason:      explain(risk, 0),
		}
	}

	stock := decimal.NewFromInt(int64(inv.CurrentStock))
	target := decimal.NewFromFloat(risk.DailyDemand).
		Mul(decimal.NewFromInt(int64(risk.LeadTime))).
		Mul(multiplier)

	plan := ReorderPlan{TargetStock: target}
	plan.Quantity = floorNonNegative(target.Sub(stock))
	if plan.Quantity == 0 {
		plan.UsedHeadroom = true
		plan.Quantity = floorNonNegative(decimal.NewFromInt(int64(inv.Headroom())).Mul(fraction))
	}
	plan.Action = entity.ReorderAction(plan.Quantity)
	plan.Reason = explain(risk, plan.Quantity)
	return plan
}

func floorNonNegative(d decimal.Decimal) int {
	if !d.IsPositive() {
		return 0
	}
	return int(d.Floor().IntPart())
}

// explain arma la justificación legible que acompaña a cada decisión.
func explain(risk entity.RiskAssessment, qty int) string {
	switch risk.RiskLevel {
	case entity.RiskHigh:
		return fmt.Sprintf(
			"Critical: Stock will run out in %s days, but lead time is %d days. Risk factor %s indicates imminent stockout. Recommended reorder: %d units to cover demand during lead time.",
			days(risk.DaysOfStock), risk.LeadTime, factor(risk.RiskFactor), qty)
	case entity.RiskMedium:
		return fmt.Sprintf(
			"Moderate risk: %s days of stock with %d day lead time. Risk factor %s suggests proactive restocking of %d units.",
			days(risk.DaysOfStock), risk.LeadTime, factor(risk.RiskFactor), qty)
	default:
		if risk.DaysOfStock.IsUnbounded() {
			return fmt.Sprintf(
				"Low risk: no recorded demand, stock runway is unbounded against %d day lead time. Risk factor %s is acceptable.",
				risk.LeadTime, factor(risk.RiskFactor))
		}
		return fmt.Sprintf(
			"Low risk: %s days of stock available, well above %d day lead time. Risk factor %s is acceptable.",
			days(risk.DaysOfStock), risk.LeadTime, factor(risk.RiskFactor))
	}
}

func days(r entity.Ratio) string {
	if r.IsUnbounded() {
		return "unbounded"
	}
	return r.String()
}

func factor(r entity.Ratio) string {
	if r.IsUnbounded() {
		return "undefined"
	}
	return r.String()
}
