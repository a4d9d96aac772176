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
	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/reference"
)

// behaviorFor derives the qualitative service behavior from
// composition thresholds. Austenitic compositions (Ni > 8, Cr > 16)
// are reported as non-magnetic.
func behaviorFor(c alloy.Composition) alloy.Behavior {
	cr := c.Get("Cr")
	ni := c.Get("Ni")
	carbon := c.Get("C")
	mo := c.Get("Mo")

	var corrosion alloy.CorrosionResistance
	switch {
	case cr >= 12 && carbon < 0.1:
		corrosion = alloy.CorrosionVeryHigh
	case cr >= 10:
		corrosion = alloy.CorrosionHigh
	case cr >= 5 || ni >= 3:
		corrosion = alloy.CorrosionMedium
	default:
		corrosion = alloy.CorrosionLow
	}

	var weldability alloy.Weldability
	switch ce := alloy.CarbonEquivalent(c); {
	case ce < 0.35:
		weldability = alloy.WeldabilityExcellent
	case ce < 0.45:
		weldability = alloy.WeldabilityGood
	case ce < 0.60:
		weldability = alloy.WeldabilityFair
	default:
		weldability = alloy.WeldabilityPoor
	}

	oxidation := "low"
	switch {
	case cr > 15:
		oxidation = "high"
	case cr > 5:
		oxidation = "medium"
	}

	wear := "low"
	switch {
	case carbon > 0.6 || mo > 1:
		wear = "high"
	case carbon > 0.3:
		wear = "medium"
	}

	return alloy.Behavior{
		CorrosionResistance: corrosion,
		Magnetic:            !(ni > 8 && cr > 16),
		Weldability:         weldability,
		HeatTreatable:       carbon > 0.25 || (cr > 0 && mo > 0),
		OxidationResistance: oxidation,
		WearResistance:      wear,
	}
}

// classify places the composition in an alloy family and names
// comparable grades. The catalog refines the grade pick when a
// catalog composition sits close to the input.
func classify(c alloy.Composition, store *reference.Store) alloy.Classification {
	fe := c.Get("Fe")
	carbon := c.Get("C")
	cr := c.Get("Cr")
	ni := c.Get("Ni")
	mo := c.Get("Mo")
	w := c.Get("W")
	v := c.Get("V")

	var alloyType alloy.Type
	var applications, similar []string

	switch {
	case alloy.ComputePhysicalFeatures(c).IsHEA > 0:
		alloyType = alloy.TypeHighEntropy
		applications = []string{"high-temperature components", "wear coatings", "research"}
		similar = []string{"CoCrFeMnNi", "AlCoCrFeNi"}

	case c.Get("Al") > 80:
		alloyType = alloy.TypeAluminumAlloy
		applications = []string{"aviation", "automotive", "construction"}
		if c.Get("Cu") > 3 {
			similar = []string{"Д16", "2024"}
		} else {
			similar = []string{"АМг6", "5083"}
		}

	case c.Get("Ti") > 80:
		alloyType = alloy.TypeTitaniumAlloy
		applications = []string{"aerospace", "medical implants", "chemical equipment"}
		similar = []string{"ВТ6", "Ti-6Al-4V"}

	case ni > 40:
		alloyType = alloy.TypeNickelAlloy
		applications = []string{"heat-resistant parts", "chemical equipment", "turbines"}
		similar = []string{"Inconel 625", "ХН77ТЮР"}

	case cr >= 12 && fe > 50:
		alloyType = alloy.TypeStainlessSteel
		if ni > 7 {
			applications = []string{"food industry", "medical equipment", "chemical equipment"}
			similar = []string{"12Х18Н10Т", "AISI 304", "AISI 316"}
		} else {
			applications = []string{"cutlery", "automotive parts"}
			similar = []string{"08Х13", "AISI 410"}
		}

	case w > 5 || (mo > 3 && v > 1):
		alloyType = alloy.TypeHighSpeedSteel
		applications = []string{"cutting tools", "drills", "milling cutters"}
		similar = []string{"Р18", "Р6М5", "M2"}

	case carbon > 0.5 && (cr > 5 || mo > 0.5 || v > 0.1):
		alloyType = alloy.TypeToolSteel
		applications = []string{"dies", "molds", "tooling"}
		if carbon > 1.0 {
			similar = []string{"ШХ15", "У10А"}
		} else {
			similar = []string{"5ХНМ", "4Х5МФС"}
		}

	case cr > 0 || ni > 0 || mo > 0:
		alloyType = alloy.TypeLowAlloySteel
		if cr > 1 && mo > 0.2 {
			applications = []string{"shafts", "gears", "high-strength bolts"}
			similar = []string{"40Х", "40ХН", "AISI 4140"}
		} else {
			applications = []string{"structures", "machine building"}
			similar = []string{"09Г2С", "10ХСНД"}
		}

	default:
		alloyType = alloy.TypeCarbonSteel
		switch {
		case carbon < 0.25:
			applications = []string{"sheet metal", "pipes", "wire"}
			similar = []string{"Ст3", "AISI 1020"}
		case carbon < 0.5:
			applications = []string{"shafts", "axles", "fasteners"}
			similar = []string{"45", "AISI 1045"}
		default:
			applications = []string{"springs", "leaf springs", "tooling"}
			similar = []string{"65Г", "AISI 1070"}
		}
	}

	grade := ""
	if len(similar) > 0 {
		grade = similar[0]
	}

	// The catalog overrides the heuristic grade when a cataloged
	// composition is within 5 weight-percent points overall.
	if store != nil {
		if nearest := store.Nearest(c, 1); len(nearest) > 0 {
			if nearest[0].Alloy().Distance(c) < 5 {
				grade = nearest[0].Name
			}
		}
	}

	return alloy.Classification{
		Type:          alloyType,
		Grade:         grade,
		Applications:  applications,
		SimilarAlloys: similar,
	}
}
