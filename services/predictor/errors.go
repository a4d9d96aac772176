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

import "errors"

var (
	// ErrEmptyBatch indicates a batch request with no compositions.
	ErrEmptyBatch = errors.New("batch contains no compositions")

	// ErrBatchTooLarge indicates a batch request above the configured
	// composition limit.
	ErrBatchTooLarge = errors.New("batch exceeds the composition limit")

	// ErrUnknownTarget indicates an optimization target key that is not
	// one of the supported property goals.
	ErrUnknownTarget = errors.New("unknown optimization target")
)
