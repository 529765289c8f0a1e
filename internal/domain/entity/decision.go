package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ActionNoAction acción registrada cuando no se repone.
const ActionNoAction = "No Action"

// ReorderAction devuelve el texto de acción para una cantidad de reposición.
func ReorderAction(qty int) string {
	if qty > 0 {
		return fmt.Sprintf("Reorder %d units", qty)
	}
	return ActionNoAction
}

// Decision entrada inmutable del log de decisiones.
// Los nombres de campo son el formato persistido; no cambiarlos sin migrar los logs existentes.
type Decision struct {
	ProductID     string    `json:"product_id" yaml:"product_id"`
	ProductName   string    `json:"product_name" yaml:"product_name"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	ObservedStock int       `json:"observed_stock" yaml:"observed_stock"`
	DailyDemand   float64   `json:"daily_demand" yaml:"daily_demand"`
	DaysOfStock   Ratio     `json:"days_of_stock" yaml:"days_of_stock"`
	LeadTimeDays  int       `json:"lead_time_days" yaml:"lead_time_days"`
	RiskFactor    Ratio     `json:"risk_factor" yaml:"risk_factor"`
	RiskLevel     RiskLevel `json:"risk_level" yaml:"risk_level"`
	Action        string    `json:"action" yaml:"action"`
	ReorderQty    int       `json:"reorder_qty" yaml:"reorder_qty"`
	Reason        string    `json:"reason" yaml:"reason"`
}

// Restore reconstruye una decisión leída de un almacenamiento y la valida.
// En disco el caso no acotado es 999, igual que un valor finito de 999; el tag se deduce
// de stock y demanda: días no acotados solo con demanda 0, factor no acotado solo con
// demanda positiva y stock 0.
func (d Decision) Restore() (Decision, error) {
	if d.DailyDemand == 0 {
		d.DaysOfStock = Unbounded()
	} else {
		d.DaysOfStock = Bounded(d.DaysOfStock.Float())
	}
	if d.DailyDemand > 0 && d.ObservedStock == 0 {
		d.RiskFactor = Unbounded()
	} else {
		d.RiskFactor = Bounded(d.RiskFactor.Float())
	}
	return d, d.Validate()
}

// Validate comprueba que una decisión leída de un almacenamiento sea coherente.
func (d Decision) Validate() error {
	if d.ProductID == "" {
		return fmt.Errorf("decisión sin product_id")
	}
	if d.Timestamp.IsZero() {
		return fmt.Errorf("decisión %s: sin timestamp", d.ProductID)
	}
	if !d.RiskLevel.Valid() {
		return fmt.Errorf("decisión %s: risk_level %q desconocido", d.ProductID, d.RiskLevel)
	}
	if d.ObservedStock < 0 {
		return fmt.Errorf("decisión %s: observed_stock negativo", d.ProductID)
	}
	if d.DailyDemand < 0 {
		return fmt.Errorf("decisión %s: daily_demand negativo", d.ProductID)
	}
	if d.ReorderQty < 0 {
		return fmt.Errorf("decisión %s: reorder_qty negativo", d.ProductID)
	}
	if want := ReorderAction(d.ReorderQty); d.Action != want {
		return fmt.Errorf("decisión %s: action %q no corresponde a reorder_qty %d (%q)", d.ProductID, d.Action, d.ReorderQty, want)
	}
	if d.Reason == "" {
		return fmt.Errorf("decisión %s: sin reason", d.ProductID)
	}
	return nil
}

// naiveLayouts ISO-8601 sin zona (logs escritos sin offset); se interpretan en UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp acepta RFC 3339 y, como alternativa, ISO-8601 sin zona horaria.
// El resultado siempre está en UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("timestamp vacío")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q no es ISO-8601", s)
}

// decisionFields claves del formato persistido; todas son obligatorias.
var decisionFields = []string{
	"product_id", "product_name", "timestamp", "observed_stock", "daily_demand", "days_of_stock",
	"lead_time_days", "risk_factor", "risk_level", "action", "reorder_qty", "reason",
}

func checkFields(keys []string) error {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return fmt.Errorf("campo %q repetido", k)
		}
		seen[k] = true
	}
	known := make(map[string]bool, len(decisionFields))
	for _, f := range decisionFields {
		known[f] = true
		if !seen[f] {
			return fmt.Errorf("falta el campo %q", f)
		}
	}
	for _, k := range keys {
		if !known[k] {
			return fmt.Errorf("campo %q desconocido", k)
		}
	}
	return nil
}

// decisionBody mismo formato que Decision pero sin sus métodos de decodificación.
type decisionBody Decision

// UnmarshalJSON exige todas las claves y acepta timestamps con o sin zona.
func (d *Decision) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("decisión nula")
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	if err := checkFields(keys); err != nil {
		return err
	}

	var ts string
	if err := json.Unmarshal(raw["timestamp"], &ts); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	delete(raw, "timestamp")
	rest, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var body decisionBody
	if err := json.Unmarshal(rest, &body); err != nil {
		return err
	}
	if body.Timestamp, err = ParseTimestamp(ts); err != nil {
		return err
	}
	*d = Decision(body)
	return nil
}

// UnmarshalYAML mismas reglas que UnmarshalJSON.
func (d *Decision) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("línea %d: se esperaba un mapa de decisión", node.Line)
	}
	rest := &yaml.Node{Kind: yaml.MappingNode, Tag: node.Tag, Line: node.Line, Column: node.Column}
	keys := make([]string, 0, len(node.Content)/2)
	var ts string
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		keys = append(keys, k.Value)
		if k.Value == "timestamp" {
			if err := v.Decode(&ts); err != nil {
				return fmt.Errorf("línea %d: timestamp: %w", v.Line, err)
			}
			continue
		}
		rest.Content = append(rest.Content, k, v)
	}
	if err := checkFields(keys); err != nil {
		return fmt.Errorf("línea %d: %w", node.Line, err)
	}

	var body decisionBody
	if err := rest.Decode(&body); err != nil {
		return err
	}
	var err error
	if body.Timestamp, err = ParseTimestamp(ts); err != nil {
		return fmt.Errorf("línea %d: %w", node.Line, err)
	}
	*d = Decision(body)
	return nil
}
