// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package optimize

import "errors"

var (
	// ErrInfeasible indicates a constraint set that no composition can
	// satisfy, detected before any search generation runs.
	ErrInfeasible = errors.New("infeasible constraint set")

	// ErrBadConstraint indicates a constraint referencing unknown
	// elements or an unknown cost tier.
	ErrBadConstraint = errors.New("invalid constraint")

	// ErrNoTargets indicates a constraint with no target property at
	// all, leaving the search nothing to optimize.
	ErrNoTargets = errors.New("no optimization targets")
)
