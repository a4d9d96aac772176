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
	"fmt"

	"github.com/AleutianAI/AlloyPredictor/pkg/validation"
)

// searchElements are the dimensions of the search space. The base
// element is excluded: it is fixed by normalization to 100%.
var searchElements = []string{
	"C", "Si", "Mn", "Cr", "Ni", "Mo", "V", "W", "Ti", "Al", "Cu",
}

// searchLimits are tighter per-element caps than the schema limits.
// Values beyond these stop being steel (C above 2.5% is cast iron).
var searchLimits = map[string]float64{
	"Fe": 100, "C": 2.5, "Si": 4.0, "Mn": 15.0,
	"Cr": 30.0, "Ni": 35.0, "Mo": 8.0, "V": 3.0,
	"W": 18.0, "Co": 12.0, "Ti": 3.0, "Al": 10.0,
	"Cu": 4.0, "Nb": 2.0, "N": 0.5,
}

// tierElementCaps zero out elements whose unit cost exceeds what the
// tier can reasonably carry.
var tierElementCaps = map[string]float64{
	"low":       2.5,  // Fe, C, Si, Mn and impurity-level elements
	"medium":    15.0, // adds Cr, Ni, Al, Cu
	"high":      50.0, // everything
	"unlimited": 1e18,
}

// bound is an inclusive [Lo, Hi] interval for one search dimension.
type bound struct {
	Lo, Hi float64
}

// validateConstraint normalizes and sanity-checks a constraint,
// rejecting anything no composition could ever satisfy. It mutates
// the constraint to fill defaults and canonical element symbols.
func validateConstraint(c *Constraint) error {
	if c.Targets.Empty() {
		return ErrNoTargets
	}

	if c.BaseElement == "" {
		c.BaseElement = "Fe"
	}
	base, err := validation.NormalizeElement(c.BaseElement)
	if err != nil {
		return fmt.Errorf("%w: base element %q", ErrBadConstraint, c.BaseElement)
	}
	c.BaseElement = base

	if c.CostTier == "" {
		c.CostTier = "high"
	}
	if _, ok := tierBudgets[c.CostTier]; !ok {
		return fmt.Errorf("%w: cost tier %q", ErrBadConstraint, c.CostTier)
	}

	forbidden := make([]string, 0, len(c.Forbidden))
	for _, elem := range c.Forbidden {
		canonical, err := validation.NormalizeElement(elem)
		if err != nil {
			return fmt.Errorf("%w: forbidden element %q", ErrBadConstraint, elem)
		}
		if canonical == c.BaseElement {
			return fmt.Errorf("%w: base element %s cannot be forbidden",
				ErrInfeasible, canonical)
		}
		forbidden = append(forbidden, canonical)
	}
	c.Forbidden = forbidden

	c.MinElements, err = canonicalElementMap(c.MinElements)
	if err != nil {
		return err
	}
	c.MaxElements, err = canonicalElementMap(c.MaxElements)
	if err != nil {
		return err
	}

	var minSum float64
	for elem, lo := range c.MinElements {
		minSum += lo
		if hi, ok := c.MaxElements[elem]; ok && lo > hi {
			return fmt.Errorf("%w: %s min %g above max %g", ErrInfeasible, elem, lo, hi)
		}
		if limit, ok := searchLimits[elem]; ok && lo > limit {
			return fmt.Errorf("%w: %s min %g above element limit %g",
				ErrInfeasible, elem, lo, limit)
		}
		if isForbidden(c, elem) && lo > 0 {
			return fmt.Errorf("%w: %s is forbidden but has min %g",
				ErrInfeasible, elem, lo)
		}
	}
	if minSum > 100 {
		return fmt.Errorf("%w: element minimums sum to %g%%", ErrInfeasible, minSum)
	}

	return nil
}

func canonicalElementMap(m map[string]float64) (map[string]float64, error) {
	if len(m) == 0 {
		return m, nil
	}
	out := make(map[string]float64, len(m))
	for elem, v := range m {
		canonical, err := validation.NormalizeElement(elem)
		if err != nil {
			return nil, fmt.Errorf("%w: element %q", ErrBadConstraint, elem)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s bound %g is negative", ErrBadConstraint, canonical, v)
		}
		out[canonical] = v
	}
	return out, nil
}

func isForbidden(c *Constraint, elem string) bool {
	for _, f := range c.Forbidden {
		if f == elem {
			return true
		}
	}
	return false
}

// searchBounds builds the per-dimension intervals from the element
// limits, the cost tier, the forbidden set, and the user min/max maps.
func searchBounds(c *Constraint) ([]bound, error) {
	costCap := tierElementCaps[c.CostTier]

	bounds := make([]bound, len(searchElements))
	for i, elem := range searchElements {
		b := bound{Lo: 0, Hi: searchLimits[elem]}

		if isForbidden(c, elem) || elementCosts[elem] > costCap {
			if lo := c.MinElements[elem]; lo > 0 {
				return nil, fmt.Errorf("%w: %s has min %g but is excluded by the %s cost tier",
					ErrInfeasible, elem, lo, c.CostTier)
			}
			bounds[i] = bound{}
			continue
		}
		if lo, ok := c.MinElements[elem]; ok && lo > b.Lo {
			b.Lo = lo
		}
		if hi, ok := c.MaxElements[elem]; ok && hi < b.Hi {
			b.Hi = hi
		}
		if b.Lo > b.Hi {
			return nil, fmt.Errorf("%w: %s bounds [%g, %g]",
				ErrInfeasible, elem, b.Lo, b.Hi)
		}
		bounds[i] = b
	}
	return bounds, nil
}
