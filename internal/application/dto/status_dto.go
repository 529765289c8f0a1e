package dto

import "github.com/jhoicas/stockout-agent/internal/domain/entity"

// StatusRow fila del reporte de estado: riesgo recalculado + última acción registrada.
type StatusRow struct {
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	CurrentStock int              `json:"current_stock"`
	DailyDemand  float64          `json:"daily_demand"`
	RiskLevel    entity.RiskLevel `json:"risk_level"`
	RiskFactor   entity.Ratio     `json:"risk_factor"`
	DaysOfStock  entity.Ratio     `json:"days_of_stock"`
	LastAction   string           `json:"last_action"`
}

// StatusSummary contadores del tablero de resumen.
type StatusSummary struct {
	TotalProducts   int `json:"total_products"`
	TotalStock      int `json:"total_stock"`
	HighRisk        int `json:"high_risk"`
	MediumRisk      int `json:"medium_risk"`
	LowRisk         int `json:"low_risk"`
	DecisionsLogged int `json:"decisions_logged"`
}
