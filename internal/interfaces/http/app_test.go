package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	appplanning "github.com/jhoicas/Produccion-api/internal/application/planning"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var roles = appinventory.ZoneRoles{
	Materials: "Materiales",
	Semis:     "Semielaborados",
	Finished:  "Producto terminado",
}

// buildTestApp arma la app completa sobre el almacén en memoria con el catálogo demo:
// P1 = 2×M1 + 1×S1, M1=10 en W1-MAT, S1=3 en W1-SEMI.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, memory.DemoZoneNames(roles))

	log := logger.Nop()
	recorder := metrics.NewRecorder("mrp_test")
	zones := appinventory.NewZoneResolver(store.Zones(), roles)
	ledger := appinventory.NewLedgerUseCase(store, store.Stock(), zones, recorder, log)
	bom := production.NewBomService(store.Catalog())
	poster := production.NewPosterUseCase(store, ledger, zones, bom, store.Catalog(), store.Documents(), recorder, log)
	coverage := appplanning.NewCoverageUseCase(store.Catalog(), store.Plans(), store.Stock(), zones, appplanning.Settings{
		HorizonDays:      7,
		GraceWorkingDays: 1,
		Location:         time.UTC,
	})
	plans := appplanning.NewPlanUseCase(store, store.Catalog(), poster)

	return apphttp.NewApp(apphttp.AppConfig{
		Name:    "mrp-test",
		Metrics: recorder.Handler(),
		Log:     log,
	}, apphttp.RouterDeps{
		Ledger:   ledger,
		Zones:    zones,
		Poster:   poster,
		Bom:      bom,
		Coverage: coverage,
		Plans:    plans,
	})
}

// doJSON lanza la petición y decodifica el cuerpo en un mapa.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderUserID, "planta-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func balanceOf(t *testing.T, app *fiber.App, item, zone string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodGet, "/api/stock/balance?item_id="+item+"&zone_id="+zone, nil)
	require.Equal(t, http.StatusOK, status)
	return body["quantity"].(string)
}

func productionBody(qty string) map[string]any {
	return map[string]any{
		"item_id":          "P1",
		"quantity":         qty,
		"date":             "2024-05-06",
		"physical_zone_id": "W1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	status, body := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestMetrics_ExponeContadores(t *testing.T) {
	app := buildTestApp(t)
	status, _ := doJSON(t, app, http.MethodPost, "/api/production/postings", productionBody("1"))
	require.Equal(t, http.StatusCreated, status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `mrp_test_documents_posted_total{type="production"} 1`)
	assert.Contains(t, string(raw), `mrp_test_ledger_batches_applied_total{reason="production"} 1`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción y anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestPostProduction_StockInsuficiente409(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/production/postings", productionBody("4"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	shortages, ok := body["shortages"].([]any)
	require.True(t, ok)
	require.Len(t, shortages, 1)
	first := shortages[0].(map[string]any)
	assert.Equal(t, "S1", first["item_id"])
	assert.Equal(t, "1", first["missing"])

	assert.Equal(t, "10", balanceOf(t, app, "M1", "W1-MAT"))
	assert.Equal(t, "3", balanceOf(t, app, "S1", "W1-SEMI"))
}

func TestPostProduction_CreadaYAnulada(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/production/postings", productionBody("3"))
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	assert.Equal(t, "posted", body["status"])
	assert.Equal(t, "W1-PT", body["output_zone_id"])

	assert.Equal(t, "4", balanceOf(t, app, "M1", "W1-MAT"))
	assert.Equal(t, "0", balanceOf(t, app, "S1", "W1-SEMI"))
	assert.Equal(t, "3", balanceOf(t, app, "P1", "W1-PT"))

	status, body = doJSON(t, app, http.MethodGet, "/api/postings/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "production", body["type"])

	status, body = doJSON(t, app, http.MethodPost, "/api/postings/"+id+"/cancel", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "canceled", body["status"])
	assert.Equal(t, "10", balanceOf(t, app, "M1", "W1-MAT"))

	status, body = doJSON(t, app, http.MethodPost, "/api/postings/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CANCELED", body["code"])
}

func TestPostProduction_Validaciones(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/production/postings", map[string]any{"item_id": "P1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = doJSON(t, app, http.MethodPost, "/api/production/postings", productionBody("0"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "NON_POSITIVE_QUANTITY", body["code"])

	in := productionBody("1")
	in["item_id"] = "M1"
	status, body = doJSON(t, app, http.MethodPost, "/api/production/postings", in)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "NO_BOM", body["code"])

	in = productionBody("1")
	in["physical_zone_id"] = "W1-MAT"
	status, body = doJSON(t, app, http.MethodPost, "/api/production/postings", in)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_ZONE", body["code"])

	req := httptest.NewRequest(http.MethodPost, "/api/production/postings", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, _ = doJSON(t, app, http.MethodGet, "/api/postings/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro, recepciones y planeación
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyBatchYRecepcion(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/stock/batches", map[string]any{
		"reference": "conteo",
		"entries": []map[string]any{
			{"item_id": "M1", "zone_id": "W1-MAT", "delta": "-2"},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "adjustment", body["reason"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/receipts", map[string]any{
		"lines": []map[string]any{
			{"item_id": "M1", "zone_id": "W1-MAT", "quantity": "7"},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "15", balanceOf(t, app, "M1", "W1-MAT"))

	status, body = doJSON(t, app, http.MethodGet, "/api/stock/balances?zone_id=W1-MAT,W1-SEMI", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total"])
}

func TestUpdatePlan_DisminuirProducido409(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodPut, "/api/planning/plan", map[string]any{
		"item_id":          "P1",
		"date":             "2024-05-06",
		"planned_qty":      "5",
		"produced_qty":     "2",
		"physical_zone_id": "W1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2", body["produced_qty"])
	assert.NotNil(t, body["posting"])

	status, body = doJSON(t, app, http.MethodPut, "/api/planning/plan", map[string]any{
		"item_id":      "P1",
		"date":         "2024-05-06",
		"produced_qty": "1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "PRODUCED_DECREASE", body["code"])
}

func TestCoverageYRequerimientos(t *testing.T) {
	app := buildTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/planning/coverage?physical_zone_id=W1&days=5", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["dates"], 5)

	status, _ = doJSON(t, app, http.MethodGet, "/api/planning/coverage", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/planning/requirements?item_id=P1&qty=2", nil)
	require.Equal(t, http.StatusOK, status)
	materials := body["materials"].(map[string]any)
	assert.Equal(t, "10", materials["M1"])

	status, body = doJSON(t, app, http.MethodGet, "/api/zones/W1/zones", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body)
}
