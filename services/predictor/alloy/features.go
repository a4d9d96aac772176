// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package alloy

import "math"

// Per-element physical constants used for feature engineering.
var (
	atomicMasses = map[string]float64{
		"Fe": 55.845, "C": 12.011, "Si": 28.086, "Mn": 54.938,
		"Cr": 51.996, "Ni": 58.693, "Mo": 95.94, "V": 50.942,
		"W": 183.84, "Co": 58.933, "Ti": 47.867, "Al": 26.982,
		"Cu": 63.546, "Nb": 92.906, "P": 30.974, "S": 32.065, "N": 14.007,
	}

	// Atomic radii in picometers.
	atomicRadii = map[string]float64{
		"Fe": 126, "C": 77, "Si": 111, "Mn": 127,
		"Cr": 128, "Ni": 124, "Mo": 139, "V": 134,
		"W": 139, "Co": 125, "Ti": 147, "Al": 143,
		"Cu": 128, "Nb": 146, "P": 107, "S": 105, "N": 56,
	}

	// Pauling electronegativity.
	electronegativity = map[string]float64{
		"Fe": 1.83, "C": 2.55, "Si": 1.90, "Mn": 1.55,
		"Cr": 1.66, "Ni": 1.91, "Mo": 2.16, "V": 1.63,
		"W": 2.36, "Co": 1.88, "Ti": 1.54, "Al": 1.61,
		"Cu": 1.90, "Nb": 1.60, "P": 2.19, "S": 2.58, "N": 3.04,
	}

	// Melting points in degrees C.
	meltingPoints = map[string]float64{
		"Fe": 1538, "C": 3550, "Si": 1414, "Mn": 1246,
		"Cr": 1907, "Ni": 1455, "Mo": 2623, "V": 1910,
		"W": 3422, "Co": 1495, "Ti": 1668, "Al": 660,
		"Cu": 1085, "Nb": 2477, "P": 44, "S": 115, "N": -210,
	}

	// Valence electron counts, simplified by periodic-table group.
	valenceElectrons = map[string]float64{
		"Fe": 8, "C": 4, "Si": 4, "Mn": 7,
		"Cr": 6, "Ni": 10, "Mo": 6, "V": 5,
		"W": 6, "Co": 9, "Ti": 4, "Al": 3,
		"Cu": 11, "Nb": 5, "P": 5, "S": 6, "N": 5,
	}
)

// gasConstant in J/(mol*K), for the configurational entropy.
const gasConstant = 8.314

// PhysicalFeatures are derived physico-chemical descriptors of a
// composition. They augment the raw element fractions as model inputs
// and drive parts of the qualitative behavior assessment.
type PhysicalFeatures struct {
	AvgAtomicRadius        float64
	AtomicRadiusDelta      float64
	AvgElectronegativity   float64
	ElectronegativityDelta float64
	VEC                    float64
	AvgMeltingPoint        float64
	CarbonEquivalent       float64
	ChromiumEquivalent     float64
	NickelEquivalent       float64
	ConfigEntropy          float64
	NumSignificantElements float64
	IsHEA                  float64
}

// atomicFractions converts weight percents to mole fractions.
func atomicFractions(c Composition) map[string]float64 {
	fractions := make(map[string]float64)
	var totalAtoms float64
	for _, elem := range Elements {
		pct := c.Get(elem)
		if pct <= 0 {
			continue
		}
		atoms := pct / atomicMasses[elem]
		fractions[elem] = atoms
		totalAtoms += atoms
	}
	if totalAtoms > 0 {
		for elem := range fractions {
			fractions[elem] /= totalAtoms
		}
	}
	return fractions
}

// ComputePhysicalFeatures derives the physico-chemical descriptors of
// a composition from mole fractions and the per-element constants.
func ComputePhysicalFeatures(c Composition) PhysicalFeatures {
	fractions := atomicFractions(c)

	var f PhysicalFeatures

	for elem, frac := range fractions {
		f.AvgAtomicRadius += frac * atomicRadii[elem]
		f.AvgElectronegativity += frac * electronegativity[elem]
		f.VEC += frac * valenceElectrons[elem]
		f.AvgMeltingPoint += frac * meltingPoints[elem]
	}

	// Radius mismatch parameter delta, in percent.
	if f.AvgAtomicRadius > 0 {
		var delta float64
		for elem, frac := range fractions {
			r := 1 - atomicRadii[elem]/f.AvgAtomicRadius
			delta += frac * r * r
		}
		f.AtomicRadiusDelta = math.Sqrt(delta) * 100
	}

	if f.AvgElectronegativity > 0 {
		var delta float64
		for elem, frac := range fractions {
			d := electronegativity[elem] - f.AvgElectronegativity
			delta += frac * d * d
		}
		f.ElectronegativityDelta = math.Sqrt(delta)
	}

	f.CarbonEquivalent = CarbonEquivalent(c)
	f.ChromiumEquivalent = ChromiumEquivalent(c)
	f.NickelEquivalent = NickelEquivalent(c)

	// Configurational entropy, -R * sum(x*ln(x)).
	var entropy float64
	for _, frac := range fractions {
		if frac > 0 {
			entropy -= frac * math.Log(frac)
		}
	}
	f.ConfigEntropy = entropy * gasConstant

	var significant, heaRange float64
	for _, elem := range Elements {
		pct := c.Get(elem)
		if pct > 1 {
			significant++
		}
		if pct >= 5 && pct <= 35 {
			heaRange++
		}
	}
	f.NumSignificantElements = significant
	// High-entropy alloy criterion: five or more elements between
	// 5 and 35 percent.
	if heaRange >= 5 {
		f.IsHEA = 1
	}

	return f
}

// FeatureVector builds the full model input: the 17 raw element
// percents in canonical order followed by the 12 physical descriptors.
func FeatureVector(c Composition) []float64 {
	f := ComputePhysicalFeatures(c)
	return append(c.Vector(),
		f.AvgAtomicRadius,
		f.AtomicRadiusDelta,
		f.AvgElectronegativity,
		f.ElectronegativityDelta,
		f.VEC,
		f.AvgMeltingPoint,
		f.CarbonEquivalent,
		f.ChromiumEquivalent,
		f.NickelEquivalent,
		f.ConfigEntropy,
		f.NumSignificantElements,
		f.IsHEA,
	)
}

// FeatureNames returns the column names matching FeatureVector.
func FeatureNames() []string {
	names := make([]string, 0, len(Elements)+12)
	names = append(names, Elements...)
	return append(names,
		"avg_atomic_radius",
		"atomic_radius_delta",
		"avg_electronegativity",
		"electronegativity_delta",
		"vec",
		"avg_melting_point",
		"carbon_equivalent",
		"chromium_equivalent",
		"nickel_equivalent",
		"config_entropy",
		"num_significant_elements",
		"is_hea",
	)
}

// RegressionFeatures builds the compact input used by the trained
// regression models: the eight training elements, the carbon
// equivalent without the Ni+Cu term, and the total alloying content.
func RegressionFeatures(c Composition) []float64 {
	ce := c.C + c.Mn/6 + (c.Cr+c.Mo+c.V)/5
	return []float64{
		c.Fe, c.C, c.Si, c.Mn, c.Cr, c.Ni, c.Mo, c.V,
		ce,
		c.Cr + c.Ni + c.Mo + c.V,
	}
}
