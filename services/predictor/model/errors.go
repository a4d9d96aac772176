// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

import "errors"

var (
	// ErrModelNotLoaded indicates a prediction was requested for a
	// property with no loaded model.
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrMalformedModel indicates a model or scaler file that could
	// not be parsed or fails structural validation.
	ErrMalformedModel = errors.New("malformed model file")

	// ErrFeatureMismatch indicates a feature vector whose length does
	// not match what the scaler was fitted for.
	ErrFeatureMismatch = errors.New("feature length mismatch")
)
