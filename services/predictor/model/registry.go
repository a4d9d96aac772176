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

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AleutianAI/AlloyPredictor/pkg/logging"
)

// Categories groups property model names by the prediction group they
// serve. A group counts as loaded when at least one of its models is.
var Categories = map[string][]string{
	"mechanical":     {"yield_strength", "tensile_strength", "elongation", "hardness"},
	"fatigue":        {"fatigue_limit"},
	"impact":         {"impact_energy", "transition_temp"},
	"corrosion":      {"pren", "corrosion_rate"},
	"heat_treatment": {"ac1_temp", "ac3_temp", "ms_temp", "quench_hardness"},
	"wear":           {"wear_index"},
}

// Registry holds the loaded property regressors and their scalers.
// The set is immutable after LoadRegistry, so reads need no locking.
type Registry struct {
	dir     string
	models  map[string]*TreeEnsemble
	scalers map[string]*Scaler
	groups  map[string]bool
}

// LoadRegistry scans dir for "<name>_model.json" and
// "<name>_scaler.json" pairs covering every name in Categories.
// Missing or unreadable files are logged and skipped so the service
// can still start and fall back to empirical estimates; an absent
// directory yields an empty registry.
func LoadRegistry(dir string, log *logging.Logger) (*Registry, error) {
	if log == nil {
		log = logging.Default()
	}

	r := &Registry{
		dir:     dir,
		models:  make(map[string]*TreeEnsemble),
		scalers: make(map[string]*Scaler),
		groups:  make(map[string]bool),
	}

	if _, err := os.Stat(dir); err != nil {
		log.Warn("model directory unavailable, using empirical estimates only",
			"dir", dir, "error", err)
		return r, nil
	}

	for group, names := range Categories {
		for _, name := range names {
			modelPath := filepath.Join(dir, name+"_model.json")
			scalerPath := filepath.Join(dir, name+"_scaler.json")

			ensemble, err := loadEnsemble(modelPath)
			if err != nil {
				if os.IsNotExist(err) {
					log.Debug("model not present", "name", name)
				} else {
					log.Warn("skipping unreadable model", "name", name, "error", err)
				}
				continue
			}

			scaler, err := loadScaler(scalerPath)
			if err != nil {
				log.Warn("model has no usable scaler, skipping", "name", name, "error", err)
				continue
			}

			r.models[name] = ensemble
			r.scalers[name] = scaler
			r.groups[group] = true
			log.Info("loaded model", "name", name, "trees", len(ensemble.Trees))
		}
	}

	log.Info("model registry ready",
		"loaded", len(r.models), "groups", r.LoadedGroups())
	return r, nil
}

// Has reports whether a model for the named property is loaded.
func (r *Registry) Has(name string) bool {
	_, ok := r.models[name]
	return ok
}

// LoadedNames returns the sorted names of all loaded models.
func (r *Registry) LoadedNames() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadedGroups returns the sorted prediction groups with at least one
// loaded model.
func (r *Registry) LoadedGroups() []string {
	groups := make([]string, 0, len(r.groups))
	for group := range r.groups {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// GroupLoaded reports whether any model of the named group is loaded.
func (r *Registry) GroupLoaded(group string) bool {
	return r.groups[group]
}

// Predict scales the feature vector and evaluates the named model.
func (r *Registry) Predict(name string, features []float64) (float64, error) {
	ensemble, ok := r.models[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrModelNotLoaded, name)
	}
	scaled, err := r.scalers[name].Transform(features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return ensemble.Predict(scaled), nil
}
