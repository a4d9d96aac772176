// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command alloypredictor serves and queries the alloy property
// predictor.
//
// The predictor estimates mechanical, fatigue, impact, corrosion, heat
// treatment, and wear properties from an elemental composition, using
// trained gradient-boosting models when their dumps are present and
// metallurgical formulas otherwise. It can also search for a
// composition meeting target properties.
//
// Usage:
//
//	alloypredictor serve
//	alloypredictor serve --config config.yaml
//	alloypredictor predict --composition "Fe:97.5,C:0.45,Si:0.25,Mn:0.65"
//	alloypredictor predict --composition "Fe:70,Cr:18,Ni:10" --full
//	alloypredictor optimize --min-yield 600 --max-cost low
//	alloypredictor grades --search stainless
//	alloypredictor grades "AISI 304"
//
// Example requests against a running server:
//
//	# Health check
//	curl http://localhost:8000/v1/predict/health
//
//	# Predict properties of a plain carbon steel
//	curl -X POST http://localhost:8000/v1/predict \
//	  -H "Content-Type: application/json" \
//	  -d '{"composition": {"Fe": 97.5, "C": 0.45, "Si": 0.25, "Mn": 0.65}}'
//
//	# Search for a composition with 600 MPa yield strength
//	curl -X POST http://localhost:8000/v1/predict/optimize \
//	  -H "Content-Type: application/json" \
//	  -d '{"target_properties": {"min_yield_strength": 600}}'
package main

import (
	"os"

	"github.com/AleutianAI/AlloyPredictor/pkg/ux"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		ux.Errorf("%v", err)
		os.Exit(1)
	}
}
