// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package reference

import (
	"errors"
	"testing"

	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStoreLoadsEmbeddedCatalog(t *testing.T) {
	s := newTestStore(t)
	if got := len(s.All()); got != 12 {
		t.Errorf("catalog has %d grades, want 12", got)
	}
}

func TestStoreGet(t *testing.T) {
	s := newTestStore(t)

	g, err := s.Get("AISI 304")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if g.TensileStrength != 505 {
		t.Errorf("tensile = %v, want 505", g.TensileStrength)
	}
	if g.Alloy().Cr != 19 {
		t.Errorf("Cr = %v, want 19", g.Alloy().Cr)
	}

	// Case-insensitive.
	if _, err := s.Get("aisi 304"); err != nil {
		t.Errorf("lowercase Get: %v", err)
	}

	if _, err := s.Get("AISI 9999"); !errors.Is(err, ErrUnknownGrade) {
		t.Errorf("Get unknown = %v, want ErrUnknownGrade", err)
	}
}

func TestStoreTypes(t *testing.T) {
	s := newTestStore(t)
	types := s.Types()
	if len(types) == 0 {
		t.Fatal("no types")
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Errorf("types not sorted unique: %v", types)
		}
	}
}

func TestStoreSearch(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name      string
		filter    Filter
		wantGrade string
		wantCount int
	}{
		{
			name:      "by type substring",
			filter:    Filter{Type: "stainless"},
			wantGrade: "AISI 304",
			wantCount: 3,
		},
		{
			name:      "by min strength",
			filter:    Filter{MinStrength: 1000},
			wantGrade: "40ХН",
			wantCount: 2,
		},
		{
			name:      "by cyrillic grade fragment",
			filter:    Filter{Search: "18Н10"},
			wantGrade: "12Х18Н10Т",
			wantCount: 1,
		},
		{
			name:      "by application",
			filter:    Filter{Search: "bearings"},
			wantGrade: "ШХ15",
			wantCount: 1,
		},
		{
			name:      "combined filters",
			filter:    Filter{Type: "stainless", Search: "marine"},
			wantGrade: "AISI 316",
			wantCount: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Search(tc.filter)
			if len(got) != tc.wantCount {
				t.Fatalf("got %d grades, want %d: %v", len(got), tc.wantCount, gradeNames(got))
			}
			found := false
			for _, g := range got {
				if g.Name == tc.wantGrade {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q among %v", tc.wantGrade, gradeNames(got))
			}
		})
	}
}

func gradeNames(grades []Grade) []string {
	names := make([]string, len(grades))
	for i, g := range grades {
		names[i] = g.Name
	}
	return names
}

func TestStoreSearchExcludesUnpublishedStrength(t *testing.T) {
	s := newTestStore(t)
	// Р6М5 and ШХ15 have no published tensile strength and must not
	// pass a strength filter.
	for _, g := range s.Search(Filter{MinStrength: 1}) {
		if g.Name == "Р6М5" || g.Name == "ШХ15" {
			t.Errorf("grade %s without tensile data passed the strength filter", g.Name)
		}
	}
}

func TestStoreNearest(t *testing.T) {
	s := newTestStore(t)

	// Nominal grade 45 composition should match itself first.
	c := alloy.Composition{Fe: 97.5, C: 0.45, Si: 0.25, Mn: 0.65}
	got := s.Nearest(c, 3)
	if len(got) != 3 {
		t.Fatalf("got %d grades, want 3", len(got))
	}
	if got[0].Name != "45" {
		t.Errorf("nearest = %q, want 45", got[0].Name)
	}

	// An 18-10 austenitic composition lands among the stainless grades.
	ss := alloy.Composition{Fe: 70, C: 0.05, Cr: 18, Ni: 10}
	got = s.Nearest(ss, 1)
	if got[0].Type != "stainless austenitic" {
		t.Errorf("nearest type = %q, want stainless austenitic", got[0].Type)
	}

	// k above catalog size is capped.
	if got := s.Nearest(c, 100); len(got) != 12 {
		t.Errorf("got %d, want full catalog of 12", len(got))
	}
}
