package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockout-agent/internal/application/dto"
	"github.com/jhoicas/stockout-agent/internal/application/inventory"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/memory"
	"github.com/jhoicas/stockout-agent/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stockout-agent/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockout-agent/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app    *fiber.App
	engine *inventory.DecisionEngine
	repo   *memory.DecisionRepository
}

func newTestServer(t *testing.T, jwtSecret string) *testServer {
	t.Helper()
	repo := memory.NewDecisionRepository()
	engine, err := inventory.NewDecisionEngine(context.Background(),
		[]entity.InventoryRecord{
			{ProductID: "P001", ProductName: "Product A", CurrentStock: 10, MaxCapacity: 500, LeadTimeDays: 10},
			{ProductID: "P002", ProductName: "Product B", CurrentStock: 100, MaxCapacity: 500, LeadTimeDays: 5},
		},
		[]entity.DemandRecord{
			{ProductID: "P001", DailyDemand: 5},
			{ProductID: "P002", DailyDemand: 2},
		},
		repo,
	)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Engine:    engine,
		Report:    inventory.NewStatusReportUseCase(engine, pdf.NewMarotoPDFGenerator("")),
		JWTSecret: jwtSecret,
	})
	return &testServer{app: app, engine: engine, repo: repo}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func multipartBody(t *testing.T, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, f := range files {
		part, err := w.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = io.WriteString(part, f[1])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// ──────────────────────────────────────────────────────────────────────────────
// Riesgo y decisiones
// ──────────────────────────────────────────────────────────────────────────────

func TestRisk_OK(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/products/P001/risk", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var risk entity.RiskAssessment
	decode(t, resp, &risk)
	assert.Equal(t, entity.RiskHigh, risk.RiskLevel)
	assert.Equal(t, entity.Bounded(2), risk.DaysOfStock)
	assert.Empty(t, s.engine.Decisions(), "consultar el riesgo no registra decisiones")
}

func TestRisk_ProductoInexistente(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/products/P999/risk", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestDecide_SinAuthConfigurada(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/products/P001/decisions", nil))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var d entity.Decision
	decode(t, resp, &d)
	assert.Equal(t, "Reorder 65 units", d.Action)
	assert.Len(t, s.engine.ProductTimeline("P001"), 1)
}

func TestDecide_ConAuth(t *testing.T) {
	s := newTestServer(t, testJWTSecret)

	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/products/P001/decisions", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/products/P001/decisions", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleViewer))
	resp = s.do(t, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/products/P001/decisions", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleOperator))
	resp = s.do(t, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, s.engine.Decisions(), 1)

	// las lecturas no requieren token
	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDecide_FalloDePersistencia(t *testing.T) {
	s := newTestServer(t, "")
	s.repo.FailWith(errors.New("disco lleno"))

	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/products/P001/decisions", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "PERSISTENCE", body.Code)
	assert.Equal(t, 10, s.engine.Inventory()[0].CurrentStock)
}

func TestRunAll_YTimeline(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/decisions/run", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run dto.RunResponse
	decode(t, resp, &run)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 65, run.ReorderedUnits)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/products/P002/timeline", nil))
	var tl dto.TimelineResponse
	decode(t, resp, &tl)
	assert.Equal(t, "P002", tl.ProductID)
	require.Equal(t, 1, tl.Total)
	assert.Equal(t, entity.ActionNoAction, tl.Decisions[0].Action)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/decisions", nil))
	var all struct {
		Total int `json:"total"`
	}
	decode(t, resp, &all)
	assert.Equal(t, 2, all.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado y reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestStatus_UltimaAccion(t *testing.T) {
	s := newTestServer(t, "")
	_, err := s.engine.MakeDecision(context.Background(), "P001")
	require.NoError(t, err)

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Items []dto.StatusRow `json:"items"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "Reorder 65 units", body.Items[0].LastAction)
	assert.Equal(t, entity.ActionNoAction, body.Items[1].LastAction)
}

func TestStatusSummary(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/status/summary", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sum dto.StatusSummary
	decode(t, resp, &sum)
	assert.Equal(t, dto.StatusSummary{TotalProducts: 2, TotalStock: 110, HighRisk: 1, LowRisk: 1}, sum)
}

func TestStatusReportPDF(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/status/report.pdf", nil))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock-status-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas y carga de datos
// ──────────────────────────────────────────────────────────────────────────────

func TestTemplates(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/templates/inventory.csv", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "product_id,product_name,current_stock,max_capacity,lead_time_days")

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/templates/demand.csv", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "daily_demand")
}

func TestUpload_ReemplazaFuentes(t *testing.T) {
	s := newTestServer(t, "")
	_, err := s.engine.MakeDecision(context.Background(), "P001")
	require.NoError(t, err)

	body, ct := multipartBody(t, map[string][2]string{
		"inventory": {"inventory.csv", "product_id,product_name,current_stock,max_capacity,lead_time_days\nX1,Widget,5,50,4\n"},
		"demand":    {"demand.csv", "product_id,daily_demand\nX1,1.5\n"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/data", body)
	req.Header.Set("Content-Type", ct)
	resp := s.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.UploadResponse
	decode(t, resp, &out)
	assert.Equal(t, dto.UploadResponse{InventoryRecords: 1, DemandRecords: 1}, out)
	assert.Equal(t, "X1", s.engine.Inventory()[0].ProductID)
	assert.Len(t, s.engine.Decisions(), 1, "el log se conserva")
}

func TestUpload_Errores(t *testing.T) {
	cases := []struct {
		name   string
		files  map[string][2]string
		status int
		code   string
	}{
		{
			name:   "falta demanda",
			files:  map[string][2]string{"inventory": {"i.csv", "product_id,product_name,current_stock,max_capacity,lead_time_days\n"}},
			status: http.StatusBadRequest, code: "VALIDATION",
		},
		{
			name: "columnas faltantes",
			files: map[string][2]string{
				"inventory": {"i.csv", "product_id,current_stock\nX1,5\n"},
				"demand":    {"d.csv", "product_id,daily_demand\nX1,1\n"},
			},
			status: http.StatusUnprocessableEntity, code: "SCHEMA",
		},
		{
			name: "duplicados",
			files: map[string][2]string{
				"inventory": {"i.csv", "product_id,product_name,current_stock,max_capacity,lead_time_days\nX1,A,1,2,3\n"},
				"demand":    {"d.csv", "product_id,daily_demand\nX1,1\nX1,2\n"},
			},
			status: http.StatusConflict, code: "DUPLICATE",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, "")
			body, ct := multipartBody(t, tc.files)
			req := httptest.NewRequest(http.MethodPost, "/api/data", body)
			req.Header.Set("Content-Type", ct)
			resp := s.do(t, req)
			assert.Equal(t, tc.status, resp.StatusCode)

			var e dto.ErrorResponse
			decode(t, resp, &e)
			assert.Equal(t, tc.code, e.Code)
			assert.Len(t, s.engine.Inventory(), 2, "un upload inválido no altera el inventario")
		})
	}
}
