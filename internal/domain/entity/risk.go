package entity

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RiskLevel clasificación del riesgo de quiebre de stock.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// Valid indica si el nivel es uno de los tres conocidos.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// UnboundedSentinel es el valor con el que se serializa una razón no acotada.
// Los registros históricos usan 999 para "días de stock infinitos" y "riesgo indefinido".
const UnboundedSentinel = 999.0

// Ratio es una razón que puede no estar acotada (demanda cero, días de stock no positivos).
// El caso no acotado es explícito para que nadie opere aritméticamente con el 999.
type Ratio struct {
	value     float64
	unbounded bool
}

// Bounded construye una razón finita.
func Bounded(v float64) Ratio { return Ratio{value: v} }

// Unbounded construye la razón no acotada.
func Unbounded() Ratio { return Ratio{unbounded: true} }

// IsUnbounded indica el caso no acotado.
func (r Ratio) IsUnbounded() bool { return r.unbounded }

// Value devuelve el valor finito y ok=false si la razón no está acotada.
func (r Ratio) Value() (float64, bool) {
	if r.unbounded {
		return 0, false
	}
	return r.value, true
}

// Float devuelve el valor para persistencia o visualización (centinela si no está acotada).
func (r Ratio) Float() float64 {
	if r.unbounded {
		return UnboundedSentinel
	}
	return r.value
}

func (r Ratio) String() string {
	if r.unbounded {
		return "unbounded"
	}
	return strconv.FormatFloat(r.value, 'f', -1, 64)
}

// MarshalJSON escribe el número (centinela incluido) para mantener el formato histórico del log.
func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(r.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON acepta solo números. El resultado siempre es acotado: 999 también es un valor
// finito válido, así que el caso no acotado lo decide quien conoce stock y demanda (Decision.Restore).
func (r *Ratio) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("ratio: valor nulo")
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("ratio: %w", err)
	}
	*r = Bounded(v)
	return nil
}

// MarshalYAML serializa igual que en JSON.
func (r Ratio) MarshalYAML() (interface{}, error) {
	return r.Float(), nil
}

// UnmarshalYAML acepta solo escalares numéricos; igual que en JSON, el resultado es acotado.
func (r *Ratio) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("ratio: %w", err)
	}
	*r = Bounded(v)
	return nil
}

// RiskAssessment resultado del evaluador de riesgo. Se calcula en cada consulta, nunca se cachea.
// DaysOfStock y RiskFactor van redondeados a 2 decimales (precisión de visualización).
type RiskAssessment struct {
	ProductID    string    `json:"product_id"`
	DaysOfStock  Ratio     `json:"days_of_stock"`
	RiskFactor   Ratio     `json:"risk_factor"`
	RiskLevel    RiskLevel `json:"risk_level"`
	CurrentStock int       `json:"current_stock"`
	DailyDemand  float64   `json:"daily_demand"`
	LeadTime     int       `json:"lead_time"`
}
