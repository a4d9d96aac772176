// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package alloy holds the domain model for alloy compositions: the
// element set, composition arithmetic, empirical metallurgical formulas,
// and the physical feature engineering used by the regression models.
package alloy

import (
	"fmt"
	"math"

	"github.com/AleutianAI/AlloyPredictor/pkg/validation"
)

// Elements lists every supported element symbol in canonical order.
// This order defines the layout of feature vectors, so it must not
// change without retraining the models.
var Elements = []string{
	"Fe", "C", "Si", "Mn", "Cr", "Ni",
	"Mo", "V", "W", "Co", "Ti", "Al",
	"Cu", "Nb", "P", "S", "N",
}

// elementLimits caps each element at its physically sensible maximum
// for ferrous alloys (weight percent).
var elementLimits = map[string]float64{
	"Fe": 100, "C": 5, "Si": 5, "Mn": 20,
	"Cr": 30, "Ni": 40, "Mo": 10, "V": 5,
	"W": 20, "Co": 30, "Ti": 5, "Al": 100,
	"Cu": 10, "Nb": 5, "P": 1, "S": 1, "N": 1,
}

// Composition is a chemical composition in weight percent. A zero value
// means the element is absent. Field order mirrors Elements.
type Composition struct {
	Fe float64 `json:"Fe,omitempty" binding:"gte=0,lte=100"`
	C  float64 `json:"C,omitempty" binding:"gte=0,lte=5"`
	Si float64 `json:"Si,omitempty" binding:"gte=0,lte=5"`
	Mn float64 `json:"Mn,omitempty" binding:"gte=0,lte=20"`
	Cr float64 `json:"Cr,omitempty" binding:"gte=0,lte=30"`
	Ni float64 `json:"Ni,omitempty" binding:"gte=0,lte=40"`
	Mo float64 `json:"Mo,omitempty" binding:"gte=0,lte=10"`
	V  float64 `json:"V,omitempty" binding:"gte=0,lte=5"`
	W  float64 `json:"W,omitempty" binding:"gte=0,lte=20"`
	Co float64 `json:"Co,omitempty" binding:"gte=0,lte=30"`
	Ti float64 `json:"Ti,omitempty" binding:"gte=0,lte=5"`
	Al float64 `json:"Al,omitempty" binding:"gte=0,lte=100"`
	Cu float64 `json:"Cu,omitempty" binding:"gte=0,lte=10"`
	Nb float64 `json:"Nb,omitempty" binding:"gte=0,lte=5"`
	P  float64 `json:"P,omitempty" binding:"gte=0,lte=1"`
	S  float64 `json:"S,omitempty" binding:"gte=0,lte=1"`
	N  float64 `json:"N,omitempty" binding:"gte=0,lte=1"`
}

// Limit returns the maximum allowed weight percent for an element
// symbol, or 0 for an unknown symbol.
func Limit(symbol string) float64 {
	return elementLimits[symbol]
}

// Get returns the weight percent of the element with the given
// canonical symbol. Unknown symbols return 0.
func (c Composition) Get(symbol string) float64 {
	switch symbol {
	case "Fe":
		return c.Fe
	case "C":
		return c.C
	case "Si":
		return c.Si
	case "Mn":
		return c.Mn
	case "Cr":
		return c.Cr
	case "Ni":
		return c.Ni
	case "Mo":
		return c.Mo
	case "V":
		return c.V
	case "W":
		return c.W
	case "Co":
		return c.Co
	case "Ti":
		return c.Ti
	case "Al":
		return c.Al
	case "Cu":
		return c.Cu
	case "Nb":
		return c.Nb
	case "P":
		return c.P
	case "S":
		return c.S
	case "N":
		return c.N
	}
	return 0
}

// Set assigns the weight percent of the element with the given
// canonical symbol. Unknown symbols are ignored.
func (c *Composition) Set(symbol string, pct float64) {
	switch symbol {
	case "Fe":
		c.Fe = pct
	case "C":
		c.C = pct
	case "Si":
		c.Si = pct
	case "Mn":
		c.Mn = pct
	case "Cr":
		c.Cr = pct
	case "Ni":
		c.Ni = pct
	case "Mo":
		c.Mo = pct
	case "V":
		c.V = pct
	case "W":
		c.W = pct
	case "Co":
		c.Co = pct
	case "Ti":
		c.Ti = pct
	case "Al":
		c.Al = pct
	case "Cu":
		c.Cu = pct
	case "Nb":
		c.Nb = pct
	case "P":
		c.P = pct
	case "S":
		c.S = pct
	case "N":
		c.N = pct
	}
}

// Total returns the sum of all element percentages.
func (c Composition) Total() float64 {
	var total float64
	for _, elem := range Elements {
		total += c.Get(elem)
	}
	return total
}

// Vector returns the raw composition as a feature vector ordered by
// Elements.
func (c Composition) Vector() []float64 {
	v := make([]float64, len(Elements))
	for i, elem := range Elements {
		v[i] = c.Get(elem)
	}
	return v
}

// Map returns the composition as a symbol-to-percent map, omitting
// absent elements.
func (c Composition) Map() map[string]float64 {
	m := make(map[string]float64, len(Elements))
	for _, elem := range Elements {
		if pct := c.Get(elem); pct > 0 {
			m[elem] = pct
		}
	}
	return m
}

// FromMap builds a Composition from a symbol-to-percent map. Symbols
// are case-normalized ("fe" becomes "Fe"). Unknown symbols, negative
// values, and values above the element limit are rejected.
func FromMap(m map[string]float64) (Composition, error) {
	var c Composition
	for symbol, pct := range m {
		canonical, err := validation.NormalizeElement(symbol)
		if err != nil {
			return Composition{}, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
		}
		if pct < 0 {
			return Composition{}, fmt.Errorf("%w: %s = %g", ErrNegativePercent, canonical, pct)
		}
		if limit := elementLimits[canonical]; pct > limit {
			return Composition{}, fmt.Errorf("%w: %s = %g exceeds %g%%",
				ErrAboveLimit, canonical, pct, limit)
		}
		c.Set(canonical, pct)
	}
	return c, nil
}

// Round returns a copy with every element rounded to four decimal
// places, matching the precision accepted on the wire.
func (c Composition) Round() Composition {
	var out Composition
	for _, elem := range Elements {
		out.Set(elem, math.Round(c.Get(elem)*1e4)/1e4)
	}
	return out
}

// Distance returns the Euclidean distance between two compositions in
// weight-percent space.
func (c Composition) Distance(other Composition) float64 {
	var sum float64
	for _, elem := range Elements {
		d := c.Get(elem) - other.Get(elem)
		sum += d * d
	}
	return math.Sqrt(sum)
}
