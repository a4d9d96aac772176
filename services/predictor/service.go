// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package predictor estimates alloy properties from chemical
// composition and searches for compositions meeting target
// properties. Predictions prefer the loaded regression models and
// fall back to empirical metallurgical relations per property group.
package predictor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/AlloyPredictor/pkg/logging"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/model"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/optimize"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/reference"
)

const defaultMaxBatchSize = 100

// Service answers prediction, optimization, and reference queries. It
// is safe for concurrent use: the registry and store are immutable
// after construction and the optimizer keeps no cross-run state.
type Service struct {
	registry  *model.Registry
	store     *reference.Store
	optimizer *optimize.Optimizer
	log       *logging.Logger
	metrics   *Metrics
	maxBatch  int
}

// NewService wires a Service over a loaded model registry and grade
// catalog. maxBatch limits batch prediction size; zero or negative
// values take the default of 100.
func NewService(registry *model.Registry, store *reference.Store, log *logging.Logger, maxBatch int) *Service {
	if log == nil {
		log = logging.Default()
	}
	if maxBatch <= 0 {
		maxBatch = defaultMaxBatchSize
	}
	s := &Service{
		registry: registry,
		store:    store,
		log:      log,
		maxBatch: maxBatch,
	}
	s.optimizer = optimize.NewOptimizer(s, log)
	return s
}

// WithMetrics attaches Prometheus instruments. Returns the Service
// for chaining.
func (s *Service) WithMetrics(m *Metrics) *Service {
	s.metrics = m
	return s
}

func (s *Service) recordPrediction(group string, modelBacked bool) {
	if s.metrics != nil {
		s.metrics.RecordPrediction(group, modelBacked)
	}
}

// Mechanical implements optimize.Objective so the optimizer scores
// candidates with the same model-or-formula path as predictions.
func (s *Service) Mechanical(c alloy.Composition) alloy.MechanicalProperties {
	props, _, _, _ := s.mechanical(c)
	return props
}

// ParseComposition converts a wire composition map into a validated
// Composition.
func (s *Service) ParseComposition(m map[string]float64) (alloy.Composition, error) {
	return alloy.FromMap(m)
}

// Predict produces the standard prediction for one composition.
func (s *Service) Predict(c alloy.Composition) PredictionResponse {
	warnings := sumWarning(c)

	mech, usedML, _, mechWarnings := s.mechanical(c)
	warnings = append(warnings, mechWarnings...)

	confidence := empiricalConfidence
	if usedML {
		confidence = modelConfidence
	}

	return PredictionResponse{
		Mechanical:     mech,
		Behavior:       behaviorFor(c),
		Classification: classify(c, s.store),
		Confidence:     confidence,
		Warnings:       warnings,
	}
}

// PredictFull produces every property group for one composition.
func (s *Service) PredictFull(c alloy.Composition) FullPredictionResponse {
	warnings := sumWarning(c)
	modelsUsed := []string{}

	mech, usedML, mechModels, mechWarnings := s.mechanical(c)
	warnings = append(warnings, mechWarnings...)
	modelsUsed = append(modelsUsed, mechModels...)

	confidence := empiricalConfidence
	if usedML {
		confidence = modelConfidence
	}

	fatigue, used, w := s.fatigue(c, mech.TensileStrengthMPa)
	modelsUsed, warnings = append(modelsUsed, used...), append(warnings, w...)

	impact, used, w := s.impact(c)
	modelsUsed, warnings = append(modelsUsed, used...), append(warnings, w...)

	corrosion, used, w := s.corrosion(c)
	modelsUsed, warnings = append(modelsUsed, used...), append(warnings, w...)

	heat, used, w := s.heatTreatment(c)
	modelsUsed, warnings = append(modelsUsed, used...), append(warnings, w...)

	hv := 200.0
	if mech.HardnessHV != nil {
		hv = *mech.HardnessHV
	}
	wear, used, w := s.wear(c, hv)
	modelsUsed, warnings = append(modelsUsed, used...), append(warnings, w...)

	return FullPredictionResponse{
		Mechanical:     mech,
		Fatigue:        fatigue,
		Impact:         impact,
		Corrosion:      corrosion,
		HeatTreatment:  heat,
		Wear:           wear,
		Behavior:       behaviorFor(c),
		Classification: classify(c, s.store),
		Confidence:     confidence,
		Warnings:       warnings,
		ModelsUsed:     modelsUsed,
	}
}

// PredictBatch predicts all compositions concurrently, preserving
// input order. A single invalid composition fails the whole batch so
// callers never pair results with the wrong input.
func (s *Service) PredictBatch(ctx context.Context, compositions []map[string]float64) ([]PredictionResponse, error) {
	if len(compositions) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(compositions) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d compositions, limit %d", ErrBatchTooLarge, len(compositions), s.maxBatch)
	}

	parsed := make([]alloy.Composition, len(compositions))
	for i, m := range compositions {
		c, err := alloy.FromMap(m)
		if err != nil {
			return nil, fmt.Errorf("composition %d: %w", i, err)
		}
		parsed[i] = c
	}

	results := make([]PredictionResponse, len(parsed))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, c := range parsed {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Predict(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PredictFatigue returns fatigue properties, deriving the tensile
// strength from the mechanical path first.
func (s *Service) PredictFatigue(c alloy.Composition) alloy.FatigueProperties {
	mech, _, _, _ := s.mechanical(c)
	props, _, _ := s.fatigue(c, mech.TensileStrengthMPa)
	return props
}

// PredictImpact returns Charpy impact properties.
func (s *Service) PredictImpact(c alloy.Composition) alloy.ImpactProperties {
	props, _, _ := s.impact(c)
	return props
}

// PredictCorrosion returns pitting and general corrosion properties.
func (s *Service) PredictCorrosion(c alloy.Composition) alloy.CorrosionProperties {
	props, _, _ := s.corrosion(c)
	return props
}

// PredictHeatTreatment returns critical temperatures and
// hardenability estimates.
func (s *Service) PredictHeatTreatment(c alloy.Composition) alloy.HeatTreatmentProperties {
	props, _, _ := s.heatTreatment(c)
	return props
}

// PredictWear returns abrasive wear properties, deriving the Vickers
// hardness from the mechanical path first.
func (s *Service) PredictWear(c alloy.Composition) alloy.WearProperties {
	mech, _, _, _ := s.mechanical(c)
	hv := 200.0
	if mech.HardnessHV != nil {
		hv = *mech.HardnessHV
	}
	props, _, _ := s.wear(c, hv)
	return props
}

// Optimize searches for a composition meeting the request targets.
func (s *Service) Optimize(ctx context.Context, req OptimizeRequest) (*optimize.Result, error) {
	constraint, err := constraintFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.optimizer.Run(ctx, constraint)
}

// constraintFromRequest maps the wire request onto an optimizer
// constraint, rejecting unknown target keys up front.
func constraintFromRequest(req OptimizeRequest) (optimize.Constraint, error) {
	var targets optimize.Targets
	for key, value := range req.TargetProperties {
		v := value
		switch key {
		case "min_yield_strength":
			targets.MinYieldStrength = &v
		case "min_tensile_strength":
			targets.MinTensileStrength = &v
		case "min_elongation":
			targets.MinElongation = &v
		case "target_hardness":
			targets.TargetHardness = &v
		default:
			return optimize.Constraint{}, fmt.Errorf("%w: %q", ErrUnknownTarget, key)
		}
	}

	return optimize.Constraint{
		Targets:         targets,
		BaseElement:     req.Constraints.BaseElement,
		Forbidden:       req.Constraints.ForbiddenElements,
		MinElements:     req.Constraints.MinElements,
		MaxElements:     req.Constraints.MaxElements,
		CostTier:        req.Constraints.MaxCost,
		NumAlternatives: req.NumAlternatives,
		PopulationSize:  req.PopulationSize,
		MaxGenerations:  req.MaxGenerations,
		Seed:            req.Seed,
	}, nil
}

// Elements lists the supported element symbols with their input
// ceilings.
func (s *Service) Elements() ElementsResponse {
	infos := make([]ElementInfo, 0, len(alloy.Elements))
	for _, sym := range alloy.Elements {
		infos = append(infos, ElementInfo{
			Symbol:     sym,
			Name:       elementNames[sym],
			MaxPercent: alloy.Limit(sym),
		})
	}
	return ElementsResponse{Elements: infos}
}

// ModelsStatus reports the loaded regression models and the endpoints
// covering each property group.
func (s *Service) ModelsStatus() ModelsStatusResponse {
	return ModelsStatusResponse{
		LoadedModels:     s.registry.LoadedNames(),
		LoadedCategories: s.registry.LoadedGroups(),
		AvailableEndpoints: map[string]string{
			"mechanical":     "/v1/predict",
			"fatigue":        "/v1/predict/fatigue",
			"impact":         "/v1/predict/impact",
			"corrosion":      "/v1/predict/corrosion",
			"heat_treatment": "/v1/predict/heat-treatment",
			"wear":           "/v1/predict/wear",
			"full":           "/v1/predict/full",
		},
		ModelCategories: model.Categories,
	}
}

// Grades returns catalog entries matching the filter.
func (s *Service) Grades(f reference.Filter) []reference.Grade {
	return s.store.Search(f)
}

// Grade looks up one catalog entry by name, case-insensitive.
func (s *Service) Grade(name string) (reference.Grade, error) {
	return s.store.Get(name)
}

// GradeTypes returns the distinct grade types in the catalog.
func (s *Service) GradeTypes() []string {
	return s.store.Types()
}

var elementNames = map[string]string{
	"Fe": "Iron", "C": "Carbon", "Si": "Silicon", "Mn": "Manganese",
	"Cr": "Chromium", "Ni": "Nickel", "Mo": "Molybdenum", "V": "Vanadium",
	"W": "Tungsten", "Co": "Cobalt", "Ti": "Titanium", "Al": "Aluminum",
	"Cu": "Copper", "Nb": "Niobium", "P": "Phosphorus", "S": "Sulfur",
	"N": "Nitrogen",
}

// sumWarning flags compositions whose components deviate far enough
// from 100% that predictions extrapolate.
func sumWarning(c alloy.Composition) []string {
	warnings := []string{}
	if total := c.Total(); total < 95 || total > 105 {
		warnings = append(warnings, fmt.Sprintf("composition sums to %.1f%%, predictions extrapolate", total))
	}
	return warnings
}
