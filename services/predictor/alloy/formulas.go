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

// Empirical metallurgical formulas. These serve as the fallback
// estimators when no trained regression model is available, and as
// inputs to the feature engineering. Sources: Andrews (1965) for the
// critical temperatures, Pickering for the transition temperature,
// the IIW carbon equivalent, and the standard PREN definition.

// typicalPhosphorus is assumed when the composition does not state a
// phosphorus content. Real steels always carry some P as an impurity.
const typicalPhosphorus = 0.02

// charpySpecimenCm2 is the cross section of the standard Charpy
// V-notch specimen.
const charpySpecimenCm2 = 0.8

// PREN computes the pitting resistance equivalent number,
// Cr + 3.3*Mo + 16*N.
func PREN(c Composition) float64 {
	return c.Cr + 3.3*c.Mo + 16*c.N
}

// CarbonEquivalent computes the IIW carbon equivalent,
// C + Mn/6 + (Cr+Mo+V)/5 + (Ni+Cu)/15.
func CarbonEquivalent(c Composition) float64 {
	return c.C + c.Mn/6 + (c.Cr+c.Mo+c.V)/5 + (c.Ni+c.Cu)/15
}

// ChromiumEquivalent computes the Schaeffler chromium equivalent,
// Cr + Mo + 1.5*Si + 0.5*Nb.
func ChromiumEquivalent(c Composition) float64 {
	return c.Cr + c.Mo + 1.5*c.Si + 0.5*c.Nb
}

// NickelEquivalent computes the Schaeffler nickel equivalent,
// Ni + 30*C + 0.5*Mn.
func NickelEquivalent(c Composition) float64 {
	return c.Ni + 30*c.C + 0.5*c.Mn
}

// Ac1 estimates the lower critical temperature in degrees C.
func Ac1(c Composition) float64 {
	return 727 - 10.7*c.Mn - 16.9*c.Ni + 29.1*c.Si + 16.9*c.Cr + 6.38*c.W
}

// Ac3 estimates the upper critical temperature in degrees C.
func Ac3(c Composition) float64 {
	return 910 - 203*sqrt0(c.C) - 15.2*c.Ni + 44.7*c.Si + 104*c.V + 31.5*c.Mo
}

// Ms estimates the martensite start temperature in degrees C.
func Ms(c Composition) float64 {
	return 539 - 423*c.C - 30.4*c.Mn - 17.7*c.Ni - 12.1*c.Cr - 7.5*c.Mo
}

// TransitionTemp estimates the ductile-to-brittle transition
// temperature in degrees C using Pickering's relation.
func TransitionTemp(c Composition) float64 {
	p := c.P
	if p == 0 {
		p = typicalPhosphorus
	}
	return -19 +
		44*c.Si +
		700*sqrt0(p) +
		2.2*sqrt0(100*c.C) -
		11.5*sqrt0(c.Ni) -
		5*c.Mn
}

// CarbideVolume estimates the carbide phase fraction in volume
// percent, clamped to [0, 40].
func CarbideVolume(c Composition) float64 {
	v := c.C*15 + c.Cr*0.3 + c.Mo*1 + c.V*3 + c.W*0.5
	return clamp(v, 0, 40)
}

// EstimateMechanical estimates static mechanical properties from
// per-element strengthening contributions, anchored at the properties
// of pure iron. Used when no trained mechanical model is loaded.
func EstimateMechanical(c Composition) MechanicalProperties {
	ys := 250.0 +
		c.C*800 + c.Mn*30 + c.Cr*20 + c.Ni*15 +
		c.Mo*40 + c.V*100 + c.Si*80
	ts := 400.0 +
		c.C*1000 + c.Mn*40 + c.Cr*25 + c.Ni*20 +
		c.Mo*50 + c.V*120 + c.Si*100

	el := math.Max(5, 30-c.C*25-c.Si*5-c.Mn*2-c.Cr*1)

	hrc := clamp(ts/30-5, 0, 65)

	props := MechanicalProperties{
		YieldStrengthMPa:   round1(ys),
		TensileStrengthMPa: round1(ts),
		ElongationPercent:  round1(el),
		YoungsModulusGPa:   round1(210 - c.Ni*0.5 + c.Mo*0.3),
		DensityGCm3:        round2(7.85 - c.Al*0.03 + c.W*0.05 + c.Mo*0.01),
	}
	if hrc > 20 {
		props.HardnessHRC = ptr(round1(hrc))
	}
	if hrc > 0 {
		props.HardnessHV = ptr(math.Round(hrc*10 + 200))
	}
	return props
}

// EstimateFatigue estimates fatigue properties from the tensile
// strength. The fatigue ratio k in sigma_-1 = k * sigma_B shifts with
// alloying: alloyed steels ride higher, high-carbon steels lower.
func EstimateFatigue(c Composition, tensileStrengthMPa float64) FatigueProperties {
	ratio := 0.45
	if c.Cr > 1 || c.Ni > 1 || c.Mo > 0.2 {
		ratio = 0.48
	}
	if c.C > 0.5 {
		ratio = 0.42
	}
	limit := tensileStrengthMPa * ratio

	actualRatio := 0.45
	if tensileStrengthMPa > 0 {
		actualRatio = limit / tensileStrengthMPa
	}

	basquin := -0.08
	if c.Ni > 5 {
		basquin = -0.06
	} else if c.C > 0.6 {
		basquin = -0.10
	}

	return FatigueProperties{
		FatigueLimitMPa:      round1(limit),
		FatigueRatio:         round3(actualRatio),
		CyclesToFailureLog:   7.0,
		BasquinExponent:      round3(basquin),
		EnduranceLimitCycles: 1e7,
	}
}

// EstimateImpact estimates Charpy impact behavior. Nickel and
// manganese raise toughness, carbon, silicon, and phosphorus lower it.
func EstimateImpact(c Composition) ImpactProperties {
	transition := TransitionTemp(c)

	p := c.P
	if p == 0 {
		p = typicalPhosphorus
	}
	kcv := 150.0 + c.Ni*10 + c.Mn*5 - c.C*200 - c.Si*20 - p*5000
	kcv = clamp(kcv, 10, 300)

	energy := kcv * charpySpecimenCm2

	ductile := 50.0
	if transition < 0 {
		ductile = 80.0
	}

	return ImpactProperties{
		ImpactEnergyJ:          round1(math.Max(5, energy)),
		KCVJCm2:                round1(math.Max(5, kcv)),
		TransitionTempC:        math.Round(transition),
		UpperShelfEnergyJ:      round1(energy * 1.3),
		LowerShelfEnergyJ:      round1(energy * 0.1),
		DuctileFractionPercent: ductile,
	}
}

// EstimateCorrosion estimates quantitative corrosion properties. The
// critical pitting temperature and the electrochemical potentials are
// only meaningful above PREN 20.
func EstimateCorrosion(c Composition) CorrosionProperties {
	pren := PREN(c)

	var rate float64
	switch {
	case c.Cr >= 12 && c.C < 0.1:
		rate = 0.01
	case c.Cr >= 10:
		rate = 0.05
	case c.Cr >= 5:
		rate = 0.1
	default:
		rate = 0.5 - c.Cr*0.03 - c.Ni*0.02
	}
	rate = math.Max(0.001, rate)

	props := CorrosionProperties{
		PREN:                round1(pren),
		CorrosionRateMMYear: round4(rate),
	}
	if pren > 20 {
		props.CPTC = ptr(math.Round(2.5*pren - 30))
		props.PittingPotentialV = ptr(0.3 + pren*0.01)
	}
	if c.Cr > 12 {
		props.PassivationPotentialV = ptr(0.2)
	}
	return props
}

// EstimateHeatTreatment estimates the critical temperatures and
// hardenability.
func EstimateHeatTreatment(c Composition) HeatTreatmentProperties {
	ac1 := Ac1(c)
	ac3 := Ac3(c)
	ms := Ms(c)

	props := HeatTreatmentProperties{
		CarbonEquivalent:       round3(CarbonEquivalent(c)),
		Ac1TempC:               math.Round(ac1),
		Ac3TempC:               math.Round(ac3),
		MsTempC:                math.Round(ms),
		HardenabilityMM:        10 + c.Cr*2 + c.Mo*5 + c.Mn*1,
		RecommendedQuenchTempC: ptr(math.Round(ac3 + 50)),
		RecommendedTemperTempC: math.Round(200 + c.C*100),
	}
	if ms > 200 {
		props.MfTempC = ptr(math.Round(ms - 200))
	}
	if c.C > 0.1 {
		hrc := math.Min(67, 20+60*sqrt0(c.C))
		props.QuenchHardnessHRC = ptr(round1(hrc))
	}
	return props
}

// EstimateWear estimates abrasive wear resistance from hardness and
// the carbide phase fraction.
func EstimateWear(c Composition, hardnessHV float64) WearProperties {
	carbide := CarbideVolume(c)

	index := math.Pow(hardnessHV/200, 1.5)
	index *= 1 + carbide*0.02
	index = math.Min(10, index)

	massLoss := 100 / (index + 1)

	var class string
	switch {
	case index > 5:
		class = "very_high"
	case index > 3:
		class = "high"
	case index > 1.5:
		class = "medium"
	default:
		class = "low"
	}

	return WearProperties{
		WearResistanceIndex:     round2(index),
		MassLossMg:              round1(massLoss),
		VolumeLossMm3:           round2(massLoss / 7.85),
		CarbideVolumePercent:    round1(carbide),
		AbrasionResistanceClass: class,
	}
}

// sqrt0 is a square root with the radicand clamped at zero. The
// empirical formulas are only defined for non-negative contents.
func sqrt0(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
