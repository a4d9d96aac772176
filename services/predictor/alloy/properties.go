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

// CorrosionResistance grades qualitative corrosion behavior.
type CorrosionResistance string

const (
	CorrosionLow      CorrosionResistance = "low"
	CorrosionMedium   CorrosionResistance = "medium"
	CorrosionHigh     CorrosionResistance = "high"
	CorrosionVeryHigh CorrosionResistance = "very_high"
)

// Weldability grades how readily an alloy can be welded, driven by
// the IIW carbon equivalent.
type Weldability string

const (
	WeldabilityPoor      Weldability = "poor"
	WeldabilityFair      Weldability = "fair"
	WeldabilityGood      Weldability = "good"
	WeldabilityExcellent Weldability = "excellent"
)

// Type is a broad alloy family.
type Type string

const (
	TypeCarbonSteel    Type = "carbon_steel"
	TypeLowAlloySteel  Type = "low_alloy_steel"
	TypeStainlessSteel Type = "stainless_steel"
	TypeToolSteel      Type = "tool_steel"
	TypeHighSpeedSteel Type = "high_speed_steel"
	TypeAluminumAlloy  Type = "aluminum_alloy"
	TypeTitaniumAlloy  Type = "titanium_alloy"
	TypeNickelAlloy    Type = "nickel_alloy"
	TypeHighEntropy    Type = "high_entropy_alloy"
)

// MechanicalProperties are the static tensile-test characteristics.
// Hardness values are nil when the estimate falls below the scale's
// meaningful range.
type MechanicalProperties struct {
	YieldStrengthMPa   float64  `json:"yield_strength_mpa"`
	TensileStrengthMPa float64  `json:"tensile_strength_mpa"`
	ElongationPercent  float64  `json:"elongation_percent"`
	HardnessHRC        *float64 `json:"hardness_hrc,omitempty"`
	HardnessHV         *float64 `json:"hardness_hv,omitempty"`
	YoungsModulusGPa   float64  `json:"youngs_modulus_gpa"`
	DensityGCm3        float64  `json:"density_g_cm3"`
}

// FatigueProperties describe resistance to cyclic loading at the
// standard 1e7 cycle test base.
type FatigueProperties struct {
	FatigueLimitMPa      float64 `json:"fatigue_limit_mpa"`
	FatigueRatio         float64 `json:"fatigue_ratio"`
	CyclesToFailureLog   float64 `json:"cycles_to_failure_log"`
	BasquinExponent      float64 `json:"basquin_exponent"`
	EnduranceLimitCycles float64 `json:"endurance_limit_cycles"`
}

// ImpactProperties describe Charpy impact behavior and the
// ductile-to-brittle transition.
type ImpactProperties struct {
	ImpactEnergyJ          float64 `json:"impact_energy_j"`
	KCVJCm2                float64 `json:"kcv_j_cm2"`
	TransitionTempC        float64 `json:"transition_temp_c"`
	UpperShelfEnergyJ      float64 `json:"upper_shelf_energy_j"`
	LowerShelfEnergyJ      float64 `json:"lower_shelf_energy_j"`
	DuctileFractionPercent float64 `json:"ductile_fraction_percent"`
}

// CorrosionProperties are the quantitative pitting and general
// corrosion characteristics. CPT and the electrochemical potentials
// only apply above PREN 20.
type CorrosionProperties struct {
	PREN                  float64  `json:"pren"`
	CPTC                  *float64 `json:"cpt_c,omitempty"`
	CorrosionRateMMYear   float64  `json:"corrosion_rate_mm_year"`
	PassivationPotentialV *float64 `json:"passivation_potential_v,omitempty"`
	PittingPotentialV     *float64 `json:"pitting_potential_v,omitempty"`
}

// HeatTreatmentProperties are the critical phase-transformation
// temperatures and hardenability estimates.
type HeatTreatmentProperties struct {
	CarbonEquivalent       float64  `json:"carbon_equivalent"`
	Ac1TempC               float64  `json:"ac1_temp_c"`
	Ac3TempC               float64  `json:"ac3_temp_c"`
	MsTempC                float64  `json:"ms_temp_c"`
	MfTempC                *float64 `json:"mf_temp_c,omitempty"`
	QuenchHardnessHRC      *float64 `json:"quench_hardness_hrc,omitempty"`
	HardenabilityMM        float64  `json:"hardenability_mm"`
	RecommendedQuenchTempC *float64 `json:"recommended_quench_temp_c,omitempty"`
	RecommendedTemperTempC float64  `json:"recommended_temper_temp_c"`
}

// WearProperties describe abrasive wear resistance.
type WearProperties struct {
	WearResistanceIndex     float64 `json:"wear_resistance_index"`
	MassLossMg              float64 `json:"mass_loss_mg"`
	VolumeLossMm3           float64 `json:"volume_loss_mm3"`
	CarbideVolumePercent    float64 `json:"carbide_volume_percent"`
	AbrasionResistanceClass string  `json:"abrasion_resistance_class"`
}

// Behavior captures qualitative service behavior.
type Behavior struct {
	CorrosionResistance CorrosionResistance `json:"corrosion_resistance"`
	Magnetic            bool                `json:"magnetic"`
	Weldability         Weldability         `json:"weldability"`
	HeatTreatable       bool                `json:"heat_treatable"`
	OxidationResistance string              `json:"oxidation_resistance"`
	WearResistance      string              `json:"wear_resistance"`
}

// Classification places a composition in an alloy family with the
// nearest known grades and typical applications.
type Classification struct {
	Type          Type     `json:"alloy_type"`
	Grade         string   `json:"grade,omitempty"`
	Applications  []string `json:"applications"`
	SimilarAlloys []string `json:"similar_alloys"`
}
