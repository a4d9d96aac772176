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
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/optimize"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/reference"
)

// Handlers exposes the prediction service over HTTP.
type Handlers struct {
	svc             *Service
	metrics         *Metrics
	optimizeLimiter *rate.Limiter
}

// NewHandlers creates handlers over the service. ratePerSecond and
// burst bound the optimize endpoint; non-positive values disable the
// limiter.
func NewHandlers(svc *Service, metrics *Metrics, ratePerSecond float64, burst int) *Handlers {
	var limiter *rate.Limiter
	if ratePerSecond > 0 && burst > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}
	return &Handlers{
		svc:             svc,
		metrics:         metrics,
		optimizeLimiter: limiter,
	}
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

func (h *Handlers) observe(endpoint string, start time.Time, success bool) {
	if h.metrics != nil {
		h.metrics.RecordRequest(endpoint, success, time.Since(start).Seconds())
	}
}

// bindComposition parses and validates a bare composition body:
//
//	{"Fe": 97.5, "C": 0.45, "Si": 0.25, "Mn": 0.65}
//
// Responds 400 and returns false on any parse or validation failure.
func bindComposition(c *gin.Context, logger *slog.Logger) (alloy.Composition, bool) {
	var m map[string]float64
	if err := c.ShouldBindJSON(&m); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return alloy.Composition{}, false
	}

	comp, err := alloy.FromMap(m)
	if err != nil {
		logger.Warn("Invalid composition", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_COMPOSITION",
		})
		return alloy.Composition{}, false
	}
	return comp, true
}

// HandlePredict handles POST /v1/predict.
//
// Description:
//
//	Predicts mechanical properties, behavior, and classification for
//	one composition. Accepts either a bare composition map or the
//	structured form {"composition": {...}}.
//
// Response:
//
//	200 OK: PredictionResponse
//	400 Bad Request: Validation error
func (h *Handlers) HandlePredict(c *gin.Context) {
	start := time.Now()
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandlePredict")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Warn("Failed to read request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		h.observe("predict", start, false)
		return
	}

	comp, parseErr := parsePredictBody(body)
	if parseErr != nil {
		logger.Warn("Invalid composition", "error", parseErr)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: parseErr.Error(),
			Code:  "INVALID_COMPOSITION",
		})
		h.observe("predict", start, false)
		return
	}

	resp := h.svc.Predict(comp)
	logger.Info("Prediction complete",
		"confidence", resp.Confidence,
		"alloy_type", resp.Classification.Type)
	c.JSON(http.StatusOK, resp)
	h.observe("predict", start, true)
}

// parsePredictBody accepts both request shapes: the structured
// {"composition": {...}} form and a bare element map.
func parsePredictBody(body []byte) (alloy.Composition, error) {
	var req PredictRequest
	if err := json.Unmarshal(body, &req); err == nil && len(req.Composition) > 0 {
		return alloy.FromMap(req.Composition)
	}

	var m map[string]float64
	if err := json.Unmarshal(body, &m); err != nil {
		return alloy.Composition{}, err
	}
	return alloy.FromMap(m)
}

// HandlePredictFull handles POST /v1/predict/full.
//
// Description:
//
//	Predicts every property group (mechanical, fatigue, impact,
//	corrosion, heat treatment, wear) plus behavior and classification.
//
// Response:
//
//	200 OK: FullPredictionResponse
//	400 Bad Request: Validation error
func (h *Handlers) HandlePredictFull(c *gin.Context) {
	start := time.Now()
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandlePredictFull")

	comp, ok := bindComposition(c, logger)
	if !ok {
		h.observe("predict_full", start, false)
		return
	}

	resp := h.svc.PredictFull(comp)
	logger.Info("Full prediction complete",
		"confidence", resp.Confidence,
		"models_used", len(resp.ModelsUsed))
	c.JSON(http.StatusOK, resp)
	h.observe("predict_full", start, true)
}

// HandlePredictBatch handles POST /v1/predict/batch.
//
// Description:
//
//	Predicts all compositions in one request, preserving input order.
//
// Response:
//
//	200 OK: []PredictionResponse
//	400 Bad Request: Oversized batch or invalid composition
func (h *Handlers) HandlePredictBatch(c *gin.Context) {
	start := time.Now()
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandlePredictBatch")

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		h.observe("predict_batch", start, false)
		return
	}

	results, err := h.svc.PredictBatch(c.Request.Context(), req.Compositions)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errCode := "BATCH_FAILED"

		if errors.Is(err, ErrBatchTooLarge) {
			statusCode = http.StatusBadRequest
			errCode = "BATCH_TOO_LARGE"
		} else if errors.Is(err, ErrEmptyBatch) || isCompositionError(err) {
			statusCode = http.StatusBadRequest
			errCode = "INVALID_COMPOSITION"
		}

		logger.Warn("Batch prediction failed", "error", err, "size", len(req.Compositions))
		c.JSON(statusCode, ErrorResponse{
			Error: err.Error(),
			Code:  errCode,
		})
		h.observe("predict_batch", start, false)
		return
	}

	logger.Info("Batch prediction complete", "size", len(results))
	c.JSON(http.StatusOK, results)
	h.observe("predict_batch", start, true)
}

func isCompositionError(err error) bool {
	return errors.Is(err, alloy.ErrUnknownElement) ||
		errors.Is(err, alloy.ErrNegativePercent) ||
		errors.Is(err, alloy.ErrAboveLimit)
}

// HandleOptimize handles POST /v1/predict/optimize.
//
// Description:
//
//	Searches for a composition meeting the target properties under
//	the given constraints. Rate limited; heavy requests should space
//	themselves out.
//
// Response:
//
//	200 OK: optimize.Result
//	400 Bad Request: Invalid targets or infeasible constraints
//	429 Too Many Requests: Rate limit exceeded
func (h *Handlers) HandleOptimize(c *gin.Context) {
	start := time.Now()
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleOptimize")

	if h.optimizeLimiter != nil && !h.optimizeLimiter.Allow() {
		if h.metrics != nil {
			h.metrics.RateLimitedTotal.Inc()
		}
		logger.Warn("Optimize rate limit exceeded")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "Too many optimization requests, retry later",
			Code:  "RATE_LIMITED",
		})
		h.observe("optimize", start, false)
		return
	}

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		h.observe("optimize", start, false)
		return
	}

	if err := req.Validate(); err != nil {
		logger.Warn("Invalid optimize constraints", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid constraints: " + err.Error(),
			Code:  "INVALID_CONSTRAINTS",
		})
		h.observe("optimize", start, false)
		return
	}

	result, err := h.svc.Optimize(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errCode := "OPTIMIZE_FAILED"

		if errors.Is(err, ErrUnknownTarget) || errors.Is(err, optimize.ErrNoTargets) {
			statusCode = http.StatusBadRequest
			errCode = "INVALID_TARGETS"
		} else if errors.Is(err, optimize.ErrBadConstraint) {
			statusCode = http.StatusBadRequest
			errCode = "INVALID_CONSTRAINTS"
		} else if errors.Is(err, optimize.ErrInfeasible) {
			statusCode = http.StatusBadRequest
			errCode = "INFEASIBLE_CONSTRAINTS"
		}

		logger.Warn("Optimization failed", "error", err)
		c.JSON(statusCode, ErrorResponse{
			Error: err.Error(),
			Code:  errCode,
		})
		h.observe("optimize", start, false)
		return
	}

	if h.metrics != nil {
		h.metrics.OptimizeGenerations.Observe(float64(result.Stats.Generations))
	}
	logger.Info("Optimization complete",
		"fitness", result.Fitness,
		"generations", result.Stats.Generations,
		"converged", result.Stats.Converged)
	c.JSON(http.StatusOK, result)
	h.observe("optimize", start, true)
}

// HandleFatigue handles POST /v1/predict/fatigue.
func (h *Handlers) HandleFatigue(c *gin.Context) {
	start := time.Now()
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleFatigue")

	comp, ok := bindComposition(c, logger)
	if !ok {
		h.observe("fatigue", start, false)
		return
	}
	c.JSON(http.StatusOK, h.svc.PredictFatigue(comp))
	h.observe("fatigue", start, true)
}

// HandleImpact handles POST /v1/predict/impact.
func (h *Handlers) HandleImpact(c *gin.Context) {
	start := time.Now()
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleImpact")

	comp, ok := bindComposition(c, logger)
	if !ok {
		h.observe("impact", start, false)
		return
	}
	c.JSON(http.StatusOK, h.svc.PredictImpact(comp))
	h.observe("impact", start, true)
}

// HandleCorrosion handles POST /v1/predict/corrosion.
func (h *Handlers) HandleCorrosion(c *gin.Context) {
	start := time.Now()
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleCorrosion")

	comp, ok := bindComposition(c, logger)
	if !ok {
		h.observe("corrosion", start, false)
		return
	}
	c.JSON(http.StatusOK, h.svc.PredictCorrosion(comp))
	h.observe("corrosion", start, true)
}

// HandleHeatTreatment handles POST /v1/predict/heat-treatment.
func (h *Handlers) HandleHeatTreatment(c *gin.Context) {
	start := time.Now()
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleHeatTreatment")

	comp, ok := bindComposition(c, logger)
	if !ok {
		h.observe("heat_treatment", start, false)
		return
	}
	c.JSON(http.StatusOK, h.svc.PredictHeatTreatment(comp))
	h.observe("heat_treatment", start, true)
}

// HandleWear handles POST /v1/predict/wear.
func (h *Handlers) HandleWear(c *gin.Context) {
	start := time.Now()
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleWear")

	comp, ok := bindComposition(c, logger)
	if !ok {
		h.observe("wear", start, false)
		return
	}
	c.JSON(http.StatusOK, h.svc.PredictWear(comp))
	h.observe("wear", start, true)
}

// HandleElements handles GET /v1/predict/elements.
func (h *Handlers) HandleElements(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Elements())
}

// HandleModelsStatus handles GET /v1/predict/models-status.
func (h *Handlers) HandleModelsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ModelsStatus())
}

// HandleGrades handles GET /v1/reference/grades.
//
// Description:
//
//	Lists catalog grades. Query parameters: search (name or
//	application substring), type (grade type substring), min_strength
//	(minimum published tensile strength, MPa).
//
// Response:
//
//	200 OK: []reference.Grade
//	400 Bad Request: Malformed min_strength
func (h *Handlers) HandleGrades(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGrades")

	filter := reference.Filter{
		Search: c.Query("search"),
		Type:   c.Query("type"),
	}
	if raw := c.Query("min_strength"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			logger.Warn("Invalid min_strength", "value", raw)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "min_strength must be a non-negative number",
				Code:  "INVALID_REQUEST",
			})
			return
		}
		filter.MinStrength = v
	}

	c.JSON(http.StatusOK, h.svc.Grades(filter))
}

// HandleGrade handles GET /v1/reference/grades/:grade.
func (h *Handlers) HandleGrade(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGrade")

	grade, err := h.svc.Grade(c.Param("grade"))
	if err != nil {
		if errors.Is(err, reference.ErrUnknownGrade) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: err.Error(),
				Code:  "GRADE_NOT_FOUND",
			})
			return
		}
		logger.Error("Grade lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "INTERNAL_ERROR",
		})
		return
	}
	c.JSON(http.StatusOK, grade)
}

// HandleGradeTypes handles GET /v1/reference/types.
func (h *Handlers) HandleGradeTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": h.svc.GradeTypes()})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleReady handles GET /ready. Ready once the grade catalog and
// model registry are wired; models themselves are optional.
func (h *Handlers) HandleReady(c *gin.Context) {
	if h.svc == nil || h.svc.store == nil || h.svc.registry == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ready",
		"loaded_models": len(h.svc.registry.LoadedNames()),
	})
}
