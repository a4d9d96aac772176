// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package optimize searches the alloy composition space for candidates
// that satisfy target mechanical properties, using differential
// evolution over the predictors as a black-box objective.
package optimize

import (
	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

// Objective evaluates the mechanical properties of a candidate
// composition. The property predictor implements this.
type Objective interface {
	Mechanical(c alloy.Composition) alloy.MechanicalProperties
}

// Targets are the property goals for a search. Minimum targets score
// full marks once the predicted value reaches them; the hardness
// target is an exact goal penalized in both directions. A nil field
// is not optimized.
type Targets struct {
	MinYieldStrength   *float64 `json:"min_yield_strength,omitempty"`
	MinTensileStrength *float64 `json:"min_tensile_strength,omitempty"`
	MinElongation      *float64 `json:"min_elongation,omitempty"`
	TargetHardness     *float64 `json:"target_hardness,omitempty"`
}

// Empty reports whether no target is set.
func (t Targets) Empty() bool {
	return t.MinYieldStrength == nil && t.MinTensileStrength == nil &&
		t.MinElongation == nil && t.TargetHardness == nil
}

// Constraint configures one optimization run.
type Constraint struct {
	Targets Targets `json:"target_properties"`

	// BaseElement is the balance element absorbing the remainder to
	// 100%. Defaults to Fe.
	BaseElement string `json:"base_element,omitempty"`

	// Forbidden elements are pinned to zero in the search space.
	Forbidden []string `json:"forbidden_elements,omitempty"`

	// MinElements and MaxElements tighten the per-element bounds.
	MinElements map[string]float64 `json:"min_elements,omitempty"`
	MaxElements map[string]float64 `json:"max_elements,omitempty"`

	// CostTier caps the raw-material budget: low, medium, high, or
	// unlimited. Defaults to high.
	CostTier string `json:"max_cost,omitempty"`

	NumAlternatives int `json:"num_alternatives,omitempty"`

	// Algorithm knobs. Zero values take the package defaults.
	PopulationSize     int     `json:"population_size,omitempty"`
	MaxGenerations     int     `json:"max_generations,omitempty"`
	Seed               int64   `json:"seed,omitempty"`
	ConvergenceWindow  int     `json:"-"`
	ConvergenceEpsilon float64 `json:"-"`
}

// Candidate is one near-optimal solution from the final population.
type Candidate struct {
	Composition map[string]float64         `json:"composition"`
	Properties  alloy.MechanicalProperties `json:"predicted_properties"`
	Fitness     float64                    `json:"fitness_score"`
	CostTier    string                     `json:"cost_level"`
}

// Stats summarizes a finished search.
type Stats struct {
	Generations int  `json:"generations"`
	Evaluations int  `json:"function_evaluations"`
	Converged   bool `json:"converged"`
}

// Result is the outcome of an optimization run. Fitness is in [0,1];
// 1 means every target is met within the cost budget.
type Result struct {
	Composition  map[string]float64         `json:"optimal_composition"`
	Properties   alloy.MechanicalProperties `json:"predicted_properties"`
	Fitness      float64                    `json:"fitness_score"`
	CostTier     string                     `json:"cost_level"`
	Alternatives []Candidate                `json:"alternatives"`
	Stats        Stats                      `json:"optimization_stats"`
	Warnings     []string                   `json:"warnings,omitempty"`
}

// Relative element costs in $/kg, used for the cost tiers.
var elementCosts = map[string]float64{
	"Fe": 0.5, "C": 0.1, "Si": 2.0, "Mn": 2.5,
	"Cr": 8.0, "Ni": 15.0, "Mo": 25.0, "V": 30.0,
	"W": 35.0, "Co": 50.0, "Ti": 20.0, "Al": 3.0,
	"Cu": 7.0, "Nb": 40.0, "P": 1.0, "S": 1.0, "N": 0.5,
}

// tierBudgets caps the blended cost of a composition per tier.
var tierBudgets = map[string]float64{
	"low":       5.0,
	"medium":    15.0,
	"high":      50.0,
	"unlimited": 0, // no cap, handled specially
}

// Cost returns the blended relative cost of a composition in $/kg.
func Cost(c alloy.Composition) float64 {
	var total float64
	for _, elem := range alloy.Elements {
		total += c.Get(elem) / 100 * elementCosts[elem]
	}
	return total
}

// TierOf classifies a composition by its blended cost.
func TierOf(c alloy.Composition) string {
	cost := Cost(c)
	switch {
	case cost < 5:
		return "low"
	case cost < 15:
		return "medium"
	default:
		return "high"
	}
}
