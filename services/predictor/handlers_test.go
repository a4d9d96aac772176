// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package predictor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AlloyPredictor/services/predictor/reference"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, svc *Service, ratePerSecond float64, burst int) *gin.Engine {
	t.Helper()
	router := gin.New()
	handlers := NewHandlers(svc, InitMetrics(), ratePerSecond, burst)
	v1 := router.Group("/v1")
	RegisterRoutes(v1, handlers)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func TestPredictEndpointBareMap(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict",
		map[string]float64{"Fe": 97.5, "C": 0.45, "Si": 0.25, "Mn": 0.65})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decodeJSON[PredictionResponse](t, w)
	if resp.Confidence <= 0 {
		t.Errorf("confidence = %v, want > 0", resp.Confidence)
	}
	if resp.Mechanical.TensileStrengthMPa <= 0 {
		t.Errorf("tensile strength = %v, want > 0", resp.Mechanical.TensileStrengthMPa)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID response header")
	}
}

func TestPredictEndpointStructuredBody(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict", PredictRequest{
		Composition: map[string]float64{"Fe": 97.5, "C": 0.45},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestPredictEndpointEchoesRequestID(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/predict",
		strings.NewReader(`{"Fe": 100}`))
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", got)
	}
}

func TestPredictEndpointRejectsUnknownElement(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict", map[string]float64{"Xx": 5})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "INVALID_COMPOSITION" {
		t.Errorf("code = %q, want INVALID_COMPOSITION", resp.Code)
	}
}

func TestPredictEndpointRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/predict", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPredictFullEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict/full",
		map[string]float64{"Fe": 68, "C": 0.08, "Si": 0.8, "Mn": 2, "Cr": 18, "Ni": 10})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decodeJSON[FullPredictionResponse](t, w)
	if resp.Corrosion.PREN <= 0 {
		t.Errorf("PREN = %v, want > 0 for 18-10 stainless", resp.Corrosion.PREN)
	}
	if resp.Behavior.Magnetic {
		t.Error("18-10 stainless should be reported non-magnetic")
	}
}

func TestBatchEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict/batch", BatchRequest{
		Compositions: []map[string]float64{
			{"Fe": 99.8, "C": 0.1},
			{"Fe": 97.5, "C": 0.45},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	results := decodeJSON[[]PredictionResponse](t, w)
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestBatchEndpointTooLarge(t *testing.T) {
	svc := newEmpiricalService(t)
	svc.maxBatch = 1
	router := newTestRouter(t, svc, 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict/batch", BatchRequest{
		Compositions: []map[string]float64{{"Fe": 100}, {"Fe": 100}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "BATCH_TOO_LARGE" {
		t.Errorf("code = %q, want BATCH_TOO_LARGE", resp.Code)
	}
}

func TestOptimizeEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict/optimize", OptimizeRequest{
		TargetProperties: map[string]float64{
			"min_yield_strength":   400,
			"min_tensile_strength": 600,
		},
		Constraints:    OptimizeConstraints{MaxCost: "low"},
		PopulationSize: 20,
		MaxGenerations: 40,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Composition map[string]float64 `json:"optimal_composition"`
		Fitness     float64            `json:"fitness_score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var total float64
	for _, pct := range resp.Composition {
		total += pct
	}
	if total < 99.5 || total > 100.5 {
		t.Errorf("composition sums to %v, want ~100", total)
	}
	if resp.Fitness < 0 || resp.Fitness > 1 {
		t.Errorf("fitness = %v, want [0,1]", resp.Fitness)
	}
}

func TestOptimizeEndpointInfeasible(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict/optimize", OptimizeRequest{
		TargetProperties: map[string]float64{"min_yield_strength": 400},
		Constraints: OptimizeConstraints{
			MinElements: map[string]float64{"Cr": 30, "Ni": 35, "Mn": 15, "W": 18, "Al": 10},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "INFEASIBLE_CONSTRAINTS" {
		t.Errorf("code = %q, want INFEASIBLE_CONSTRAINTS", resp.Code)
	}
}

func TestOptimizeEndpointUnknownTarget(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodPost, "/v1/predict/optimize", OptimizeRequest{
		TargetProperties: map[string]float64{"max_density": 7},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "INVALID_TARGETS" {
		t.Errorf("code = %q, want INVALID_TARGETS", resp.Code)
	}
}

func TestOptimizeEndpointRejectsBadConstraints(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	tests := []struct {
		name        string
		constraints OptimizeConstraints
	}{
		{name: "unknown cost tier", constraints: OptimizeConstraints{MaxCost: "lavish"}},
		{name: "bad forbidden element", constraints: OptimizeConstraints{ForbiddenElements: []string{"Zr"}}},
		{name: "lowercase base element", constraints: OptimizeConstraints{BaseElement: "fe"}},
		{name: "min above 100", constraints: OptimizeConstraints{MinElements: map[string]float64{"Cr": 140}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/v1/predict/optimize", OptimizeRequest{
				TargetProperties: map[string]float64{"min_yield_strength": 300},
				Constraints:      tc.constraints,
			})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
			resp := decodeJSON[ErrorResponse](t, w)
			if resp.Code != "INVALID_CONSTRAINTS" {
				t.Errorf("code = %q, want INVALID_CONSTRAINTS", resp.Code)
			}
		})
	}
}

func TestOptimizeEndpointRateLimited(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0.001, 1)

	body := OptimizeRequest{
		TargetProperties: map[string]float64{"min_yield_strength": 300},
		PopulationSize:   10,
		MaxGenerations:   5,
	}

	first := doJSON(t, router, http.MethodPost, "/v1/predict/optimize", body)
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, body %s", first.Code, first.Body.String())
	}

	second := doJSON(t, router, http.MethodPost, "/v1/predict/optimize", body)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	resp := decodeJSON[ErrorResponse](t, second)
	if resp.Code != "RATE_LIMITED" {
		t.Errorf("code = %q, want RATE_LIMITED", resp.Code)
	}
}

func TestGroupEndpoints(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)
	comp := map[string]float64{"Fe": 97.5, "C": 0.45, "Si": 0.25, "Mn": 0.65}

	for _, path := range []string{
		"/v1/predict/fatigue",
		"/v1/predict/impact",
		"/v1/predict/corrosion",
		"/v1/predict/heat-treatment",
		"/v1/predict/wear",
	} {
		w := doJSON(t, router, http.MethodPost, path, comp)
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d, body %s", path, w.Code, w.Body.String())
		}
	}
}

func TestElementsEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodGet, "/v1/predict/elements", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeJSON[ElementsResponse](t, w)
	if len(resp.Elements) != 17 {
		t.Errorf("got %d elements, want 17", len(resp.Elements))
	}
}

func TestModelsStatusEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodGet, "/v1/predict/models-status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeJSON[ModelsStatusResponse](t, w)
	if len(resp.LoadedModels) != 0 {
		t.Errorf("loaded models = %v, want none", resp.LoadedModels)
	}
	if len(resp.ModelCategories) != 6 {
		t.Errorf("model categories = %v, want 6 groups", resp.ModelCategories)
	}
}

func TestGradesEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodGet, "/v1/reference/grades?search=stainless", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	grades := decodeJSON[[]reference.Grade](t, w)
	if len(grades) == 0 {
		t.Error("expected stainless grades")
	}
	for _, g := range grades {
		if !strings.Contains(strings.ToLower(g.Type), "stainless") &&
			!strings.Contains(strings.ToLower(strings.Join(g.Applications, " ")), "stainless") {
			t.Errorf("grade %q does not match the search", g.Name)
		}
	}
}

func TestGradesEndpointBadMinStrength(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodGet, "/v1/reference/grades?min_strength=lots", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGradeEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodGet, "/v1/reference/grades/"+url.PathEscape("AISI 304"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	grade := decodeJSON[reference.Grade](t, w)
	if grade.Name != "AISI 304" {
		t.Errorf("grade = %q, want AISI 304", grade.Name)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/reference/grades/unobtainium", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != "GRADE_NOT_FOUND" {
		t.Errorf("code = %q, want GRADE_NOT_FOUND", resp.Code)
	}
}

func TestGradeTypesEndpoint(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	w := doJSON(t, router, http.MethodGet, "/v1/reference/types", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Types) == 0 {
		t.Error("expected grade types")
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, newEmpiricalService(t), 0, 0)

	if w := doJSON(t, router, http.MethodGet, "/v1/predict/health", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/v1/predict/ready", nil); w.Code != http.StatusOK {
		t.Errorf("ready status = %d", w.Code)
	}
}
