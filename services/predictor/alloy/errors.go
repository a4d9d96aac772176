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

import "errors"

var (
	// ErrUnknownElement indicates an element symbol outside the
	// supported set.
	ErrUnknownElement = errors.New("unknown element")

	// ErrNegativePercent indicates a negative weight percent.
	ErrNegativePercent = errors.New("negative element percent")

	// ErrAboveLimit indicates a weight percent above the element's
	// physical limit.
	ErrAboveLimit = errors.New("element percent above limit")
)
