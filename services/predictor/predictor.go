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
	"math"

	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

// Confidence levels reported with predictions. Model-backed results
// carry the higher value.
const (
	modelConfidence     = 0.85
	empiricalConfidence = 0.65
)

// predictScalar runs one named model over the regression features.
// The second return is false when the model is missing or fails, in
// which case the caller keeps the empirical value.
func (s *Service) predictScalar(name string, features []float64) (float64, bool) {
	if !s.registry.Has(name) {
		return 0, false
	}
	v, err := s.registry.Predict(name, features)
	if err != nil {
		s.log.Warn("model prediction failed, using empirical value", "model", name, "error", err)
		return 0, false
	}
	return v, true
}

// mechanical estimates static tensile properties, preferring the
// per-property regression models. Young's modulus and density always
// come from the compositional relations.
func (s *Service) mechanical(c alloy.Composition) (alloy.MechanicalProperties, bool, []string, []string) {
	props := alloy.EstimateMechanical(c)
	if !s.registry.GroupLoaded("mechanical") {
		s.recordPrediction("mechanical", false)
		return props, false, nil, []string{"mechanical properties from empirical formulas"}
	}

	features := alloy.RegressionFeatures(c)
	used := []string{}

	if v, ok := s.predictScalar("yield_strength", features); ok {
		props.YieldStrengthMPa = round1(math.Max(100, v))
		used = append(used, "yield_strength")
	}
	if v, ok := s.predictScalar("tensile_strength", features); ok {
		props.TensileStrengthMPa = round1(math.Max(200, v))
		used = append(used, "tensile_strength")
	}
	if v, ok := s.predictScalar("elongation", features); ok {
		props.ElongationPercent = round1(math.Min(60, math.Max(1, v)))
		used = append(used, "elongation")
	}
	if hv, ok := s.predictScalar("hardness", features); ok {
		// The hardness model predicts Vickers; HRC only has meaning on
		// the upper part of the scale.
		props.HardnessHV = ptr(math.Round(hv))
		props.HardnessHRC = nil
		if hrc := (hv - 200) / 10; hrc > 20 {
			props.HardnessHRC = ptr(round1(hrc))
		}
		used = append(used, "hardness")
	}

	if len(used) == 0 {
		s.recordPrediction("mechanical", false)
		return props, false, nil, []string{"mechanical properties from empirical formulas"}
	}
	s.recordPrediction("mechanical", true)
	return props, true, used, nil
}

func (s *Service) fatigue(c alloy.Composition, tensileStrengthMPa float64) (alloy.FatigueProperties, []string, []string) {
	props := alloy.EstimateFatigue(c, tensileStrengthMPa)
	if v, ok := s.predictScalar("fatigue_limit", alloy.RegressionFeatures(c)); ok {
		props.FatigueLimitMPa = round1(math.Max(0, v))
		if tensileStrengthMPa > 0 {
			props.FatigueRatio = round3(props.FatigueLimitMPa / tensileStrengthMPa)
		}
		s.recordPrediction("fatigue", true)
		return props, []string{"fatigue_limit"}, nil
	}
	s.recordPrediction("fatigue", false)
	return props, nil, []string{"fatigue from empirical formulas"}
}

func (s *Service) impact(c alloy.Composition) (alloy.ImpactProperties, []string, []string) {
	props := alloy.EstimateImpact(c)
	features := alloy.RegressionFeatures(c)
	used := []string{}

	if v, ok := s.predictScalar("impact_energy", features); ok {
		props.ImpactEnergyJ = round1(math.Max(0, v))
		props.KCVJCm2 = round1(props.ImpactEnergyJ / 0.8)
		props.UpperShelfEnergyJ = round1(props.ImpactEnergyJ * 1.3)
		props.LowerShelfEnergyJ = round1(props.ImpactEnergyJ * 0.1)
		used = append(used, "impact_energy")
	}
	if v, ok := s.predictScalar("transition_temp", features); ok {
		props.TransitionTempC = round1(v)
		props.DuctileFractionPercent = 50
		if props.TransitionTempC < 0 {
			props.DuctileFractionPercent = 80
		}
		used = append(used, "transition_temp")
	}

	if len(used) == 0 {
		s.recordPrediction("impact", false)
		return props, nil, []string{"impact toughness from the Pickering relation"}
	}
	s.recordPrediction("impact", true)
	return props, used, nil
}

// corrosion keeps PREN closed-form; only the general corrosion rate
// has a trained model.
func (s *Service) corrosion(c alloy.Composition) (alloy.CorrosionProperties, []string, []string) {
	props := alloy.EstimateCorrosion(c)
	if v, ok := s.predictScalar("corrosion_rate", alloy.RegressionFeatures(c)); ok {
		props.CorrosionRateMMYear = round4(math.Max(0.0001, v))
		s.recordPrediction("corrosion", true)
		return props, []string{"corrosion_rate"}, nil
	}
	s.recordPrediction("corrosion", false)
	return props, nil, []string{"corrosion from the PREN relation"}
}

func (s *Service) heatTreatment(c alloy.Composition) (alloy.HeatTreatmentProperties, []string, []string) {
	props := alloy.EstimateHeatTreatment(c)
	features := alloy.RegressionFeatures(c)
	used := []string{}

	if v, ok := s.predictScalar("ac1_temp", features); ok {
		props.Ac1TempC = math.Round(v)
		used = append(used, "ac1_temp")
	}
	if v, ok := s.predictScalar("ac3_temp", features); ok {
		props.Ac3TempC = math.Round(v)
		props.RecommendedQuenchTempC = ptr(props.Ac3TempC + 50)
		used = append(used, "ac3_temp")
	}
	if v, ok := s.predictScalar("ms_temp", features); ok {
		props.MsTempC = math.Round(v)
		props.MfTempC = nil
		if props.MsTempC > 200 {
			props.MfTempC = ptr(props.MsTempC - 200)
		}
		used = append(used, "ms_temp")
	}
	if v, ok := s.predictScalar("quench_hardness", features); ok {
		props.QuenchHardnessHRC = ptr(round1(math.Min(67, math.Max(0, v))))
		used = append(used, "quench_hardness")
	}

	if len(used) == 0 {
		s.recordPrediction("heat_treatment", false)
		return props, nil, []string{"heat treatment from the Andrews relations"}
	}
	s.recordPrediction("heat_treatment", true)
	return props, used, nil
}

func (s *Service) wear(c alloy.Composition, hardnessHV float64) (alloy.WearProperties, []string, []string) {
	props := alloy.EstimateWear(c, hardnessHV)
	if v, ok := s.predictScalar("wear_index", alloy.RegressionFeatures(c)); ok {
		idx := math.Min(10, math.Max(0, v))
		props.WearResistanceIndex = round2(idx)
		props.MassLossMg = round1(100 / (idx + 1))
		props.VolumeLossMm3 = round2(props.MassLossMg / 7.85)
		props.AbrasionResistanceClass = abrasionClass(idx)
		s.recordPrediction("wear", true)
		return props, []string{"wear_index"}, nil
	}
	s.recordPrediction("wear", false)
	return props, nil, []string{"wear from empirical formulas"}
}

func abrasionClass(index float64) string {
	switch {
	case index > 5:
		return "very_high"
	case index > 3:
		return "high"
	case index > 1.5:
		return "medium"
	default:
		return "low"
	}
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
