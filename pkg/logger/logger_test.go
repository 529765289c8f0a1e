package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Out: &buf})

	l.Debug().Msg("descartado")
	l.Info().Str("product_id", "P001").Msg("decisión registrada")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "una sola línea JSON")
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "P001", entry["product_id"])
	assert.Equal(t, "decisión registrada", entry["message"])
}

func TestParseLevel_DesconocidoEsInfo(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("verbose"))
	assert.NotEqual(t, parseLevel("info"), parseLevel("warn"))
}

func TestNew_ServicioYCorrida(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Service: "stockout-agent", Out: &buf})

	zl := l.ForRun("run-1")
	zl.Info().Msg("evaluando")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stockout-agent", entry["service"])
	assert.Equal(t, "run-1", entry["run_id"])
}

func TestParseLevel_VacioEsInfo(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel(""))
	assert.NotEqual(t, parseLevel("info"), parseLevel("debug"))
}
