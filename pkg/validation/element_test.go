// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import "testing"

func TestValidateElement(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		wantErr bool
	}{
		{name: "iron", symbol: "Fe", wantErr: false},
		{name: "carbon single letter", symbol: "C", wantErr: false},
		{name: "nitrogen", symbol: "N", wantErr: false},
		{name: "empty", symbol: "", wantErr: true},
		{name: "lowercase not normalized", symbol: "fe", wantErr: true},
		{name: "unsupported element", symbol: "Zr", wantErr: true},
		{name: "not an element", symbol: "Xx", wantErr: true},
		{name: "full name", symbol: "Iron", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateElement(tc.symbol)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateElement(%q) error = %v, wantErr %v", tc.symbol, err, tc.wantErr)
			}
		})
	}
}

func TestNormalizeElement(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Fe", want: "Fe"},
		{in: "fe", want: "Fe"},
		{in: "FE", want: "Fe"},
		{in: " mo ", want: "Mo"},
		{in: "c", want: "C"},
		{in: "zr", wantErr: true},
		{in: "", wantErr: true},
		{in: "iron", wantErr: true},
	}

	for _, tc := range tests {
		got, err := NormalizeElement(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeElement(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeElement(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeElement(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSupportedElements(t *testing.T) {
	elems := SupportedElements()
	if len(elems) != 17 {
		t.Errorf("expected 17 supported elements, got %d", len(elems))
	}
	for _, sym := range elems {
		if err := ValidateElement(sym); err != nil {
			t.Errorf("SupportedElements returned invalid symbol %q: %v", sym, err)
		}
	}
}
