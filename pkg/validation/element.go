// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for user-supplied data.
//
// This package contains validators for inputs that flow into the prediction
// and optimization pipelines. Compositions arrive as free-form JSON maps, so
// element symbols must be checked before they are used as lookup keys.
package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// supportedElements is the fixed set of element symbols the predictor
// understands. It matches the feature order used by the trained models.
var supportedElements = map[string]struct{}{
	"Fe": {}, "C": {}, "Si": {}, "Mn": {}, "Cr": {}, "Ni": {},
	"Mo": {}, "V": {}, "W": {}, "Co": {}, "Ti": {}, "Al": {},
	"Cu": {}, "Nb": {}, "P": {}, "S": {}, "N": {},
}

// ValidateElement validates a chemical element symbol.
//
// Valid symbols:
//   - 1-2 characters in standard notation (uppercase first letter,
//     lowercase second letter): "Fe", "C", "Mo"
//   - Must be one of the 17 elements supported by the predictor
//
// Returns an error if the symbol is malformed or unsupported.
//
// Example:
//
//	if err := validation.ValidateElement(sym); err != nil {
//	    return fmt.Errorf("invalid composition key: %w", err)
//	}
func ValidateElement(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("element symbol cannot be empty")
	}
	if _, ok := supportedElements[symbol]; !ok {
		return fmt.Errorf("unsupported element symbol: %q", symbol)
	}
	return nil
}

// NormalizeElement normalizes a symbol to standard chemical notation and
// validates it. "fe" and "FE" both become "Fe".
//
// Use this when accepting compositions from external callers:
//
//	sym, err := validation.NormalizeElement(userKey)
//	if err != nil {
//	    return err
//	}
func NormalizeElement(symbol string) (string, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return "", fmt.Errorf("element symbol cannot be empty")
	}
	if len(s) > 2 {
		return "", fmt.Errorf("invalid element symbol: %q", symbol)
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	normalized := string(runes)
	if err := ValidateElement(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// SupportedElements returns the supported symbols in no particular order.
func SupportedElements() []string {
	out := make([]string, 0, len(supportedElements))
	for sym := range supportedElements {
		out = append(out, sym)
	}
	return out
}
