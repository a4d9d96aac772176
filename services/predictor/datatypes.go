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
	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/AlloyPredictor/pkg/validation"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

// requestValidate is the shared validator for request datatypes.
// Initialized in init() with the domain validators.
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()

	_ = requestValidate.RegisterValidation("element", validateElementSymbol)
	_ = requestValidate.RegisterValidation("costtier", validateCostTier)
}

// validateElementSymbol accepts element symbols in standard chemical
// notation. Case variants are rejected here; compositions parsed from
// JSON maps are normalized separately.
func validateElementSymbol(fl validator.FieldLevel) bool {
	return validation.ValidateElement(fl.Field().String()) == nil
}

// validateCostTier accepts the raw-material budget tiers understood by
// the composition search.
func validateCostTier(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "low", "medium", "high", "unlimited":
		return true
	}
	return false
}

// PredictRequest is the structured prediction body. The composition
// map uses element symbols as keys and weight percents as values.
// The heat treatment fields are accepted but do not yet influence
// the prediction.
type PredictRequest struct {
	Composition   map[string]float64 `json:"composition" binding:"required"`
	HeatTreatment string             `json:"heat_treatment,omitempty"`
	TemperatureC  *float64           `json:"temperature_c,omitempty"`
}

// BatchRequest carries multiple compositions for fan-out prediction.
type BatchRequest struct {
	Compositions []map[string]float64 `json:"compositions" binding:"required,min=1"`
}

// OptimizeConstraints narrows the composition search space.
type OptimizeConstraints struct {
	BaseElement       string             `json:"base_element,omitempty" validate:"omitempty,element"`
	ForbiddenElements []string           `json:"forbidden_elements,omitempty" validate:"dive,element"`
	MaxCost           string             `json:"max_cost,omitempty" validate:"costtier"`
	MinElements       map[string]float64 `json:"min_elements,omitempty" validate:"dive,keys,element,endkeys,gte=0,lte=100"`
	MaxElements       map[string]float64 `json:"max_elements,omitempty" validate:"dive,keys,element,endkeys,gte=0,lte=100"`
}

// OptimizeRequest asks for a composition meeting the given property
// targets. Supported target keys: min_yield_strength,
// min_tensile_strength, min_elongation, target_hardness.
type OptimizeRequest struct {
	TargetProperties map[string]float64  `json:"target_properties" binding:"required"`
	Constraints      OptimizeConstraints `json:"constraints"`
	NumAlternatives  int                 `json:"num_alternatives" binding:"gte=0,lte=10"`
	PopulationSize   int                 `json:"population_size,omitempty" binding:"gte=0,lte=500"`
	MaxGenerations   int                 `json:"max_generations,omitempty" binding:"gte=0,lte=2000"`
	Seed             int64               `json:"seed,omitempty"`
}

// Validate checks the constraint fields beyond what binding covers.
// Element symbols must be spelled in standard notation and the cost
// tier must be one the search understands.
func (r *OptimizeRequest) Validate() error {
	return requestValidate.Struct(r)
}

// PredictionResponse is the standard prediction result.
type PredictionResponse struct {
	Mechanical     alloy.MechanicalProperties `json:"mechanical_properties"`
	Behavior       alloy.Behavior             `json:"behavior"`
	Classification alloy.Classification       `json:"classification"`
	Confidence     float64                    `json:"confidence"`
	Warnings       []string                   `json:"warnings"`
}

// FullPredictionResponse extends PredictionResponse with every
// property group and the list of models that contributed.
type FullPredictionResponse struct {
	Mechanical     alloy.MechanicalProperties    `json:"mechanical_properties"`
	Fatigue        alloy.FatigueProperties       `json:"fatigue_properties"`
	Impact         alloy.ImpactProperties        `json:"impact_properties"`
	Corrosion      alloy.CorrosionProperties     `json:"corrosion_properties"`
	HeatTreatment  alloy.HeatTreatmentProperties `json:"heat_treatment_properties"`
	Wear           alloy.WearProperties          `json:"wear_properties"`
	Behavior       alloy.Behavior                `json:"behavior"`
	Classification alloy.Classification          `json:"classification"`
	Confidence     float64                       `json:"confidence"`
	Warnings       []string                      `json:"warnings"`
	ModelsUsed     []string                      `json:"models_used"`
}

// ElementInfo describes one supported element and its input ceiling.
type ElementInfo struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	MaxPercent float64 `json:"max_percent"`
}

// ElementsResponse lists the supported elements.
type ElementsResponse struct {
	Elements []ElementInfo `json:"elements"`
}

// ModelsStatusResponse reports which regression models are loaded and
// which property groups they unlock.
type ModelsStatusResponse struct {
	LoadedModels       []string            `json:"loaded_models"`
	LoadedCategories   []string            `json:"loaded_categories"`
	AvailableEndpoints map[string]string   `json:"available_endpoints"`
	ModelCategories    map[string][]string `json:"model_categories"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
