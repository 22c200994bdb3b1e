package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletpack/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	cfg := DefaultConfig()
	cfg.Defaults.PalletWidth = 10
	cfg.Defaults.PalletHeight = 10
	cfg.MaxShapes = 50
	return New(cfg, nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPack(t *testing.T) {
	body := `{"shapes":[
		{"label":"a","width":6,"height":4,"quantity":1},
		{"label":"b","width":4,"height":6,"quantity":1},
		{"label":"c","width":5,"height":5,"quantity":1}]}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/pack", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.PackResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.AlgorithmGreedy, res.Algorithm)
	require.Len(t, res.Pallets, 1)
	assert.Len(t, res.Pallets[0].Placements, 3)
	assert.Equal(t, 10, res.Pallets[0].Width, "defaults apply when settings are omitted")
}

func TestPack_ShapeListAndSettingsOverride(t *testing.T) {
	body := `{"shape_list":"3x3:2, 2x2","settings":{"pallet_width":5,"pallet_height":5}}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/pack", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.PackResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.PlacedCount())
	for _, p := range res.Pallets {
		assert.Equal(t, 5, p.Width)
		assert.Equal(t, 5, p.Height)
	}
}

func TestPack_Errors(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"shapes":`, http.StatusBadRequest},
		{"shape too large", `{"shapes":[{"width":20,"height":20,"quantity":1}]}`, http.StatusBadRequest},
		{"bad shape list", `{"shape_list":"banana"}`, http.StatusBadRequest},
		{"unknown algorithm", `{"shape_list":"2x2","settings":{"algorithm":"annealing"}}`, http.StatusBadRequest},
		{"too many shapes", `{"shapes":[{"width":1,"height":1,"quantity":51}]}`, http.StatusRequestEntityTooLarge},
		{"quantity near max int", `{"shapes":[{"width":1,"height":1,"quantity":9223372036854775807}]}`, http.StatusRequestEntityTooLarge},
		{"quantities overflow when summed", `{"shapes":[
			{"width":1,"height":1,"quantity":9223372036854775807},
			{"width":1,"height":1,"quantity":9223372036854775807}]}`, http.StatusRequestEntityTooLarge},
		{"quantity out of range in shape list", `{"shape_list":"1x1:99999999999999999999"}`, http.StatusBadRequest},
		{"pallet area wraps to zero", `{"settings":{"pallet_width":4294967296,"pallet_height":4294967296},
			"shapes":[{"width":1,"height":1,"quantity":1}]}`, http.StatusBadRequest},
		{"pallet too large to allocate", `{"settings":{"pallet_width":100000,"pallet_height":100000},
			"shapes":[{"width":1,"height":1,"quantity":1}]}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/pack", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestEvolve(t *testing.T) {
	body := `{"shape_list":"3x3:3, 2x4","settings":{"genetic":{
		"population_size":8,"generations":4,"tournament_size":2,
		"placement_attempts":50,"repair_attempts":50}}}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/evolve", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.GeneticResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 10, res.Width)
	assert.Len(t, res.History, 5)
	assert.LessOrEqual(t, res.Fitness, 100)
}

func TestOversizedPalletRejectedOnEveryRoute(t *testing.T) {
	body := `{"settings":{"pallet_width":4294967296,"pallet_height":4294967296},"shape_list":"1x1"}`
	for _, path := range []string{"/api/evolve", "/api/render", "/api/chart", "/api/fitness-plot"} {
		rec := do(t, newTestServer(), http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestEvolve_TimeoutReturnsBestSoFar(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.PalletWidth = 10
	cfg.Defaults.PalletHeight = 10
	cfg.Timeout = time.Nanosecond
	s := New(cfg, nil)
	body := `{"shape_list":"3x3:3","settings":{"algorithm":"genetic","genetic":{
		"population_size":6,"generations":50,"tournament_size":2,
		"placement_attempts":50,"repair_attempts":50}}}`

	rec := do(t, s, http.MethodPost, "/api/evolve", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res model.GeneticResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Interrupted)
	assert.Equal(t, 0, res.Generations)
	assert.Len(t, res.History, 1)

	rec = do(t, s, http.MethodPost, "/api/pack", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var packed model.PackResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &packed))
	assert.True(t, packed.Interrupted)
}

func TestEvolve_InvalidConfig(t *testing.T) {
	body := `{"shape_list":"2x2","settings":{"genetic":{"population_size":0}}}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/evolve", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRender(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/render?scale=4", `{"shape_list":"5x5:2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, s, http.MethodPost, "/api/render?pallet=3", `{"shape_list":"5x5:2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/render?scale=-1", `{"shape_list":"5x5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/render?pallet=x", `{"shape_list":"5x5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/chart", `{"shape_list":"5x5:5"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Pallet Utilization")
	assert.NotContains(t, rec.Body.String(), "Fitness per Generation")

	body := `{"shape_list":"3x3:2","settings":{"algorithm":"genetic","genetic":{
		"population_size":6,"generations":2,"tournament_size":2,
		"placement_attempts":50,"repair_attempts":50}}}`
	rec = do(t, s, http.MethodPost, "/api/chart", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Fitness per Generation")
}

func TestFitnessPlot(t *testing.T) {
	body := `{"shape_list":"3x3:3","settings":{"genetic":{
		"population_size":6,"generations":3,"tournament_size":2,
		"placement_attempts":50,"repair_attempts":50}}}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/fitness-plot", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, newTestServer(), http.MethodPost, "/api/fitness-plot", `{"shapes":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
