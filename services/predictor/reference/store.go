// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package reference serves the embedded catalog of known steel grades:
// lookup, filtered search, and nearest-composition matching.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/AlloyPredictor/services/predictor/alloy"
)

//go:embed grades.yaml
var gradesYAML []byte

// ErrUnknownGrade indicates a grade name absent from the catalog.
var ErrUnknownGrade = errors.New("unknown grade")

// Grade is one catalog entry. Strength fields are zero when the grade
// has no published tensile data.
type Grade struct {
	Name            string             `yaml:"grade" json:"grade"`
	Standard        string             `yaml:"standard" json:"standard"`
	Composition     map[string]float64 `yaml:"composition" json:"composition"`
	YieldStrength   float64            `yaml:"yield_strength" json:"yield_strength,omitempty"`
	TensileStrength float64            `yaml:"tensile_strength" json:"tensile_strength,omitempty"`
	Applications    []string           `yaml:"applications" json:"applications"`
	Type            string             `yaml:"type" json:"type"`

	comp alloy.Composition
}

// Alloy returns the grade's nominal composition as a typed value.
func (g Grade) Alloy() alloy.Composition { return g.comp }

// Filter narrows a catalog search. Zero values mean "no constraint".
type Filter struct {
	// Type matches as a case-insensitive substring of the grade type.
	Type string
	// MinStrength keeps only grades with published tensile strength at
	// or above this value.
	MinStrength float64
	// Search matches the grade name or any application, substring,
	// case-insensitive.
	Search string
}

// Store is the immutable in-memory grade catalog.
type Store struct {
	grades []Grade
	byName map[string]int
}

// NewStore parses the embedded catalog. It fails only if the embedded
// data is malformed, which a test catches at build time.
func NewStore() (*Store, error) {
	var doc struct {
		Grades []Grade `yaml:"grades"`
	}
	if err := yaml.Unmarshal(gradesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parsing embedded grade catalog: %w", err)
	}

	s := &Store{
		grades: doc.Grades,
		byName: make(map[string]int, len(doc.Grades)),
	}
	for i := range s.grades {
		comp, err := alloy.FromMap(s.grades[i].Composition)
		if err != nil {
			return nil, fmt.Errorf("grade %q: %w", s.grades[i].Name, err)
		}
		s.grades[i].comp = comp
		s.byName[strings.ToLower(s.grades[i].Name)] = i
	}
	return s, nil
}

// All returns every grade in catalog order.
func (s *Store) All() []Grade {
	out := make([]Grade, len(s.grades))
	copy(out, s.grades)
	return out
}

// Get looks up a grade by name, case-insensitively.
func (s *Store) Get(name string) (Grade, error) {
	idx, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return Grade{}, fmt.Errorf("%w: %q", ErrUnknownGrade, name)
	}
	return s.grades[idx], nil
}

// Names returns every grade name in catalog order.
func (s *Store) Names() []string {
	names := make([]string, len(s.grades))
	for i, g := range s.grades {
		names[i] = g.Name
	}
	return names
}

// Types returns the sorted set of grade types.
func (s *Store) Types() []string {
	seen := make(map[string]bool)
	var types []string
	for _, g := range s.grades {
		if !seen[g.Type] {
			seen[g.Type] = true
			types = append(types, g.Type)
		}
	}
	sort.Strings(types)
	return types
}

// Search applies a filter, keeping catalog order.
func (s *Store) Search(f Filter) []Grade {
	typeQ := strings.ToLower(f.Type)
	searchQ := strings.ToLower(f.Search)

	var out []Grade
	for _, g := range s.grades {
		if typeQ != "" && !strings.Contains(strings.ToLower(g.Type), typeQ) {
			continue
		}
		if f.MinStrength > 0 && g.TensileStrength < f.MinStrength {
			continue
		}
		if searchQ != "" && !matchesSearch(g, searchQ) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesSearch(g Grade, query string) bool {
	if strings.Contains(strings.ToLower(g.Name), query) {
		return true
	}
	for _, app := range g.Applications {
		if strings.Contains(strings.ToLower(app), query) {
			return true
		}
	}
	return false
}

// Nearest returns up to k grades ordered by compositional distance to
// the given composition.
func (s *Store) Nearest(c alloy.Composition, k int) []Grade {
	type scored struct {
		grade    Grade
		distance float64
	}
	ranked := make([]scored, len(s.grades))
	for i, g := range s.grades {
		ranked[i] = scored{grade: g, distance: c.Distance(g.comp)}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]Grade, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].grade
	}
	return out
}
