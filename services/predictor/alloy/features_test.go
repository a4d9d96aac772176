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

import (
	"math"
	"testing"
)

func TestPhysicalFeaturesPureIron(t *testing.T) {
	f := ComputePhysicalFeatures(Composition{Fe: 100})

	if !almostEqual(f.AvgAtomicRadius, 126, 1e-9) {
		t.Errorf("avg radius = %v, want 126", f.AvgAtomicRadius)
	}
	if !almostEqual(f.AtomicRadiusDelta, 0, 1e-9) {
		t.Errorf("radius delta = %v, want 0 for a single element", f.AtomicRadiusDelta)
	}
	if !almostEqual(f.AvgElectronegativity, 1.83, 1e-9) {
		t.Errorf("avg EN = %v, want 1.83", f.AvgElectronegativity)
	}
	if !almostEqual(f.VEC, 8, 1e-9) {
		t.Errorf("VEC = %v, want 8", f.VEC)
	}
	if !almostEqual(f.AvgMeltingPoint, 1538, 1e-9) {
		t.Errorf("melting point = %v, want 1538", f.AvgMeltingPoint)
	}
	if !almostEqual(f.ConfigEntropy, 0, 1e-9) {
		t.Errorf("entropy = %v, want 0 for a single element", f.ConfigEntropy)
	}
	if f.NumSignificantElements != 1 {
		t.Errorf("significant elements = %v, want 1", f.NumSignificantElements)
	}
	if f.IsHEA != 0 {
		t.Errorf("is_hea = %v, want 0", f.IsHEA)
	}
}

func TestPhysicalFeaturesEquimolarEntropy(t *testing.T) {
	// Mixing entropy is positive and bounded by the equimolar value
	// R ln n for n elements.
	f := ComputePhysicalFeatures(Composition{Fe: 50, Mn: 15, Ni: 35})
	if f.ConfigEntropy <= 0 {
		t.Errorf("entropy = %v, want positive for a mixture", f.ConfigEntropy)
	}
	ideal := gasConstant * math.Log(3)
	if f.ConfigEntropy >= ideal {
		t.Errorf("entropy %v should stay below the equimolar bound %v",
			f.ConfigEntropy, ideal)
	}
}

func TestPhysicalFeaturesHEACriterion(t *testing.T) {
	// Five elements in the 5-35% window.
	hea := Composition{Fe: 20, Cr: 20, Ni: 20, Co: 20, Mn: 15, C: 5}
	if f := ComputePhysicalFeatures(hea); f.IsHEA != 1 {
		t.Errorf("is_hea = %v, want 1", f.IsHEA)
	}

	steel := Composition{Fe: 98.9, C: 0.45, Mn: 0.65}
	if f := ComputePhysicalFeatures(steel); f.IsHEA != 0 {
		t.Errorf("is_hea = %v, want 0 for plain steel", f.IsHEA)
	}
}

func TestFeatureVectorLayout(t *testing.T) {
	c := Composition{Fe: 97.5, C: 0.45, Si: 0.25, Mn: 0.65}
	v := FeatureVector(c)
	names := FeatureNames()

	if len(v) != len(names) {
		t.Fatalf("vector length %d != names length %d", len(v), len(names))
	}
	if len(v) != 29 {
		t.Fatalf("vector length = %d, want 29", len(v))
	}
	if v[0] != 97.5 {
		t.Errorf("v[0] (Fe) = %v, want 97.5", v[0])
	}

	// carbon_equivalent sits at index 23.
	if names[23] != "carbon_equivalent" {
		t.Fatalf("names[23] = %q", names[23])
	}
	if !almostEqual(v[23], CarbonEquivalent(c), 1e-9) {
		t.Errorf("carbon equivalent feature = %v, want %v", v[23], CarbonEquivalent(c))
	}
}

func TestRegressionFeatures(t *testing.T) {
	c := Composition{Fe: 97, C: 0.4, Mn: 0.9, Cr: 1.0, Mo: 0.2}
	v := RegressionFeatures(c)

	if len(v) != 10 {
		t.Fatalf("length = %d, want 10", len(v))
	}
	if v[0] != 97 || v[1] != 0.4 {
		t.Errorf("leading elements wrong: %v", v[:2])
	}
	// Training-time CE omits the Ni+Cu term.
	wantCE := 0.4 + 0.9/6 + 1.2/5
	if !almostEqual(v[8], wantCE, 1e-9) {
		t.Errorf("CE feature = %v, want %v", v[8], wantCE)
	}
	if !almostEqual(v[9], 1.2, 1e-9) {
		t.Errorf("total alloy feature = %v, want 1.2", v[9])
	}
}

func TestFeatureVectorEmptyComposition(t *testing.T) {
	v := FeatureVector(Composition{})
	for i, x := range v {
		if math.IsNaN(x) {
			t.Fatalf("feature %d is NaN for empty composition", i)
		}
	}
}
