// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package optimize

import (
	"math"

	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

// ScorePolicy weights the constraint-satisfaction terms of the
// fitness function. Each term is 1.0 when its target is met and decays
// smoothly with the relative shortfall, so the search keeps a usable
// gradient even far from feasibility. The overall score is the
// weighted mean of the active terms, always in [0, 1].
type ScorePolicy struct {
	YieldWeight      float64
	TensileWeight    float64
	ElongationWeight float64
	HardnessWeight   float64
	CostWeight       float64

	// Sharpness controls how fast a term decays with relative
	// shortfall. Higher values punish misses harder.
	Sharpness float64
}

// DefaultScorePolicy weights strength targets heaviest, matching how
// the targets are usually prioritized in practice.
func DefaultScorePolicy() ScorePolicy {
	return ScorePolicy{
		YieldWeight:      10,
		TensileWeight:    10,
		ElongationWeight: 5,
		HardnessWeight:   3,
		CostWeight:       2,
		Sharpness:        4,
	}
}

// decay maps a non-negative relative deviation to (0, 1], with
// decay(0) = 1.
func (p ScorePolicy) decay(relative float64) float64 {
	d := p.Sharpness * relative
	return 1 / (1 + d*d)
}

// minTerm scores a "predicted must reach target" goal.
func (p ScorePolicy) minTerm(predicted, target float64) float64 {
	if predicted >= target {
		return 1
	}
	return p.decay((target - predicted) / math.Max(1, target))
}

// exactTerm scores a "predicted should equal target" goal.
func (p ScorePolicy) exactTerm(predicted, target float64) float64 {
	return p.decay(math.Abs(predicted-target) / math.Max(1, target))
}

// Score computes the fitness of a candidate composition against the
// constraint, given its predicted mechanical properties.
func (p ScorePolicy) Score(c *Constraint, comp alloy.Composition, props alloy.MechanicalProperties) float64 {
	var sum, weight float64

	if t := c.Targets.MinYieldStrength; t != nil {
		sum += p.YieldWeight * p.minTerm(props.YieldStrengthMPa, *t)
		weight += p.YieldWeight
	}
	if t := c.Targets.MinTensileStrength; t != nil {
		sum += p.TensileWeight * p.minTerm(props.TensileStrengthMPa, *t)
		weight += p.TensileWeight
	}
	if t := c.Targets.MinElongation; t != nil {
		sum += p.ElongationWeight * p.minTerm(props.ElongationPercent, *t)
		weight += p.ElongationWeight
	}
	if t := c.Targets.TargetHardness; t != nil {
		hrc := 0.0
		if props.HardnessHRC != nil {
			hrc = *props.HardnessHRC
		}
		sum += p.HardnessWeight * p.exactTerm(hrc, *t)
		weight += p.HardnessWeight
	}

	// Budget term: free while under the tier budget, decaying with the
	// relative overrun. Unlimited tiers skip it.
	if budget := tierBudgets[c.CostTier]; budget > 0 {
		cost := Cost(comp)
		term := 1.0
		if cost > budget {
			term = p.decay((cost - budget) / budget)
		}
		sum += p.CostWeight * term
		weight += p.CostWeight
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}
