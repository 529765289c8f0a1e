package entity

// DemandRecord demanda promedio diaria de un producto. Inmutable durante la ejecución.
type DemandRecord struct {
	ProductID   string  `json:"product_id"`
	DailyDemand float64 `json:"daily_demand"`
}
