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
	"context"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/AleutianAI/AlloyPredictor/pkg/logging"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

const (
	defaultPopulation   = 50
	defaultGenerations  = 200
	defaultAlternatives = 3
	defaultWindow       = 20
	defaultEpsilon      = 1e-6
	defaultSeed         = 42

	// crossoverRate is the binomial crossover probability.
	crossoverRate = 0.7

	// fitnessCutoff stops the search early once every weighted target
	// is effectively satisfied.
	fitnessCutoff = 0.995

	// alternativeFloor keeps only alternatives within this fraction of
	// the best fitness.
	alternativeFloor = 0.6

	// viableFitness below this, the best result is reported with a
	// warning instead of silently passing for a good solution.
	viableFitness = 0.5

	// diversityDistance is the minimum compositional distance, in
	// weight percent, between reported alternatives.
	diversityDistance = 1.0

	// presenceFloor drops trace amounts from reported compositions.
	presenceFloor = 0.001
)

// Optimizer runs differential evolution (best/1/bin) over the
// composition search space. Derivative-free search fits here because
// the objective is a tree ensemble with no useful gradient.
type Optimizer struct {
	objective Objective
	policy    ScorePolicy
	log       *logging.Logger
}

// NewOptimizer builds an optimizer around a property objective. A nil
// logger falls back to the process default.
func NewOptimizer(objective Objective, log *logging.Logger) *Optimizer {
	if log == nil {
		log = logging.Default()
	}
	return &Optimizer{
		objective: objective,
		policy:    DefaultScorePolicy(),
		log:       log,
	}
}

// SetPolicy overrides the default fitness weighting.
func (o *Optimizer) SetPolicy(p ScorePolicy) { o.policy = p }

// member is one evaluated population entry.
type member struct {
	vec     []float64
	comp    alloy.Composition
	props   alloy.MechanicalProperties
	fitness float64
}

// Run searches for a composition satisfying the constraint. The
// context aborts the search between generations. An infeasible or
// malformed constraint fails before any generation runs.
func (o *Optimizer) Run(ctx context.Context, c Constraint) (*Result, error) {
	if err := validateConstraint(&c); err != nil {
		return nil, err
	}
	bounds, err := searchBounds(&c)
	if err != nil {
		return nil, err
	}
	applyDefaults(&c)

	rng := rand.New(rand.NewSource(c.Seed))
	dims := len(searchElements)

	o.log.Info("starting composition search",
		"population", c.PopulationSize,
		"max_generations", c.MaxGenerations,
		"base_element", c.BaseElement,
		"cost_tier", c.CostTier)

	// Initial population, uniform within bounds.
	pop := make([]member, c.PopulationSize)
	evaluations := 0
	bestIdx := 0
	for i := range pop {
		vec := make([]float64, dims)
		for d, b := range bounds {
			vec[d] = b.Lo + rng.Float64()*(b.Hi-b.Lo)
		}
		pop[i] = o.evaluate(&c, bounds, vec)
		evaluations++
		if pop[i].fitness > pop[bestIdx].fitness {
			bestIdx = i
		}
	}

	generations := 0
	converged := false
	lastImproved := 0
	bestFitness := pop[bestIdx].fitness

	for gen := 1; gen <= c.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		generations = gen

		// Dithered mutation factor, resampled each generation.
		f := 0.5 + 0.5*rng.Float64()

		for i := range pop {
			r1, r2 := pickDistinct(rng, len(pop), i, bestIdx)

			trial := make([]float64, dims)
			jrand := rng.Intn(dims)
			for d := range trial {
				if rng.Float64() < crossoverRate || d == jrand {
					v := pop[bestIdx].vec[d] + f*(pop[r1].vec[d]-pop[r2].vec[d])
					trial[d] = clampTo(v, bounds[d])
				} else {
					trial[d] = pop[i].vec[d]
				}
			}

			cand := o.evaluate(&c, bounds, trial)
			evaluations++
			if cand.fitness >= pop[i].fitness {
				pop[i] = cand
				if cand.fitness > pop[bestIdx].fitness {
					bestIdx = i
				}
			}
		}

		if pop[bestIdx].fitness > bestFitness+c.ConvergenceEpsilon {
			bestFitness = pop[bestIdx].fitness
			lastImproved = gen
		}

		if bestFitness >= fitnessCutoff {
			converged = true
			break
		}
		if gen-lastImproved >= c.ConvergenceWindow {
			converged = true
			break
		}
	}

	best := pop[bestIdx]
	result := &Result{
		Composition: reportedComposition(best.comp),
		Properties:  best.props,
		Fitness:     round3(best.fitness),
		CostTier:    TierOf(best.comp),
		Stats: Stats{
			Generations: generations,
			Evaluations: evaluations,
			Converged:   converged,
		},
	}
	result.Alternatives = selectAlternatives(pop, bestIdx, c.NumAlternatives)

	if !converged {
		result.Warnings = append(result.Warnings,
			"search exhausted the generation budget without converging")
	}
	if best.fitness < viableFitness {
		result.Warnings = append(result.Warnings,
			"no candidate reached a viable fitness; result is best-effort")
	}

	fitnesses := make([]float64, len(pop))
	for i := range pop {
		fitnesses[i] = pop[i].fitness
	}
	o.log.Info("composition search finished",
		"fitness", result.Fitness,
		"population_mean", round3(stat.Mean(fitnesses, nil)),
		"population_stddev", round3(stat.StdDev(fitnesses, nil)),
		"generations", generations,
		"evaluations", evaluations,
		"converged", converged)

	return result, nil
}

// evaluate normalizes a raw vector into a valid composition and scores
// it. Raw vectors are never scored directly.
func (o *Optimizer) evaluate(c *Constraint, bounds []bound, vec []float64) member {
	comp := normalizeVector(c, bounds, vec)
	props := o.objective.Mechanical(comp)
	return member{
		vec:     vec,
		comp:    comp,
		props:   props,
		fitness: o.policy.Score(c, comp, props),
	}
}

// normalizeVector maps a search vector onto a composition summing to
// 100%, with the base element absorbing the remainder. If the alloying
// content alone exceeds 100%, only the slack above each lower bound is
// rescaled, so per-element minimums survive and the base goes to zero.
func normalizeVector(c *Constraint, bounds []bound, vec []float64) alloy.Composition {
	var comp alloy.Composition
	var total float64
	for i, elem := range searchElements {
		v := vec[i]
		if v <= presenceFloor && bounds[i].Lo <= 0 {
			continue
		}
		comp.Set(elem, v)
		total += v
	}

	if total > 100 {
		var sumLo, sumSlack float64
		for i := range searchElements {
			sumLo += bounds[i].Lo
			if v := comp.Get(searchElements[i]); v > bounds[i].Lo {
				sumSlack += v - bounds[i].Lo
			}
		}
		// Minimums sum to at most 100 (validated up front).
		scale := 0.0
		if sumSlack > 0 {
			scale = (100 - sumLo) / sumSlack
		}
		for i, elem := range searchElements {
			v := comp.Get(elem)
			if v > bounds[i].Lo {
				comp.Set(elem, bounds[i].Lo+(v-bounds[i].Lo)*scale)
			}
		}
		return comp
	}

	comp.Set(c.BaseElement, 100-total)
	return comp
}

// reportedComposition rounds and prunes a composition for output.
func reportedComposition(comp alloy.Composition) map[string]float64 {
	m := comp.Round().Map()
	for elem, pct := range m {
		if pct <= presenceFloor {
			delete(m, elem)
		}
	}
	return m
}

// selectAlternatives picks mutually diverse candidates from the final
// population, excluding the primary result and anything below
// alternativeFloor of its fitness.
func selectAlternatives(pop []member, bestIdx, count int) []Candidate {
	order := make([]int, 0, len(pop))
	for i := range pop {
		if i != bestIdx {
			order = append(order, i)
		}
	}
	// Sort by fitness, best first.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && pop[order[j]].fitness > pop[order[j-1]].fitness; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	chosen := []member{pop[bestIdx]}
	floor := pop[bestIdx].fitness * alternativeFloor
	alternatives := make([]Candidate, 0, count)
	for _, idx := range order {
		if len(alternatives) >= count {
			break
		}
		cand := pop[idx]
		if cand.fitness < floor {
			break
		}
		diverse := true
		for _, prev := range chosen {
			if floats.Distance(cand.vec, prev.vec, 2) < diversityDistance {
				diverse = false
				break
			}
		}
		if !diverse {
			continue
		}
		chosen = append(chosen, cand)
		alternatives = append(alternatives, Candidate{
			Composition: reportedComposition(cand.comp),
			Properties:  cand.props,
			Fitness:     round3(cand.fitness),
			CostTier:    TierOf(cand.comp),
		})
	}
	return alternatives
}

// pickDistinct draws two distinct population indices different from
// both excluded indices.
func pickDistinct(rng *rand.Rand, n, i, best int) (int, int) {
	r1 := rng.Intn(n)
	for r1 == i || r1 == best {
		r1 = rng.Intn(n)
	}
	r2 := rng.Intn(n)
	for r2 == i || r2 == best || r2 == r1 {
		r2 = rng.Intn(n)
	}
	return r1, r2
}

func clampTo(v float64, b bound) float64 {
	if v < b.Lo {
		return b.Lo
	}
	if v > b.Hi {
		return b.Hi
	}
	return v
}

func applyDefaults(c *Constraint) {
	if c.PopulationSize <= 0 {
		c.PopulationSize = defaultPopulation
	}
	// best/1/bin needs the best, the current, and two distinct donors.
	if c.PopulationSize < 8 {
		c.PopulationSize = 8
	}
	if c.MaxGenerations <= 0 {
		c.MaxGenerations = defaultGenerations
	}
	if c.NumAlternatives <= 0 {
		c.NumAlternatives = defaultAlternatives
	}
	if c.ConvergenceWindow <= 0 {
		c.ConvergenceWindow = defaultWindow
	}
	if c.ConvergenceEpsilon <= 0 {
		c.ConvergenceEpsilon = defaultEpsilon
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
