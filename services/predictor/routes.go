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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all prediction routes with the router.
//
// Description:
//
//	Registers the /v1/predict/* and /v1/reference/* endpoints with the
//	given Gin router group. The group should already carry any required
//	middleware.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Prediction Endpoints:
//
//	POST /v1/predict - Standard prediction (bare or structured body)
//	POST /v1/predict/full - Every property group
//	POST /v1/predict/batch - Batch prediction
//	POST /v1/predict/optimize - Composition search (rate limited)
//	POST /v1/predict/fatigue - Fatigue properties
//	POST /v1/predict/impact - Charpy impact properties
//	POST /v1/predict/corrosion - Corrosion properties
//	POST /v1/predict/heat-treatment - Critical temperatures
//	POST /v1/predict/wear - Abrasive wear properties
//	GET  /v1/predict/elements - Supported elements and limits
//	GET  /v1/predict/models-status - Loaded regression models
//
// Reference Endpoints:
//
//	GET  /v1/reference/grades - Grade catalog (search/type/min_strength)
//	GET  /v1/reference/grades/:grade - One grade by name
//	GET  /v1/reference/types - Distinct grade types
//
// Health Endpoints:
//
//	GET  /v1/predict/health - Health check
//	GET  /v1/predict/ready - Readiness check
//
// Example:
//
//	service := predictor.NewService(registry, store, logger, 100)
//	handlers := predictor.NewHandlers(service, metrics, 1.0, 2)
//
//	v1 := router.Group("/v1")
//	predictor.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	predict := rg.Group("/predict")
	{
		predict.POST("", handlers.HandlePredict)
		predict.POST("/full", handlers.HandlePredictFull)
		predict.POST("/batch", handlers.HandlePredictBatch)
		predict.POST("/optimize", handlers.HandleOptimize)

		// Per-group predictions
		predict.POST("/fatigue", handlers.HandleFatigue)
		predict.POST("/impact", handlers.HandleImpact)
		predict.POST("/corrosion", handlers.HandleCorrosion)
		predict.POST("/heat-treatment", handlers.HandleHeatTreatment)
		predict.POST("/wear", handlers.HandleWear)

		// Discovery
		predict.GET("/elements", handlers.HandleElements)
		predict.GET("/models-status", handlers.HandleModelsStatus)

		// Health checks
		predict.GET("/health", handlers.HandleHealth)
		predict.GET("/ready", handlers.HandleReady)
	}

	reference := rg.Group("/reference")
	{
		reference.GET("/grades", handlers.HandleGrades)
		reference.GET("/grades/:grade", handlers.HandleGrade)
		reference.GET("/types", handlers.HandleGradeTypes)
	}
}
