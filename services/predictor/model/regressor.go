// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package model loads trained property regressors exported as JSON
// tree dumps and evaluates them without any native ML runtime. Each
// property has a gradient-boosted tree ensemble plus a standard scaler
// for its input features.
package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Regressor predicts a scalar property from a feature vector.
type Regressor interface {
	Predict(features []float64) float64
}

// Node is a single decision node of a regression tree. Leaf nodes
// carry Value and have Left and Right set to -1.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a regression tree stored as a flat node array rooted at
// index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// evaluate walks the tree for one feature vector. Comparison is
// feature <= threshold goes left, matching how the trees were trained.
func (t *Tree) evaluate(features []float64) float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Left < 0 {
			return node.Value
		}
		if node.Feature < len(features) && features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// TreeEnsemble is a gradient-boosted ensemble of regression trees:
// prediction = init + learning_rate * sum of tree outputs.
type TreeEnsemble struct {
	Init         float64 `json:"init"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []Tree  `json:"trees"`
}

// Predict evaluates the ensemble for one feature vector.
func (e *TreeEnsemble) Predict(features []float64) float64 {
	sum := e.Init
	for i := range e.Trees {
		sum += e.LearningRate * e.Trees[i].evaluate(features)
	}
	return sum
}

// validate rejects ensembles whose child indices point outside the
// node array, which would otherwise panic at prediction time.
func (e *TreeEnsemble) validate() error {
	for ti := range e.Trees {
		nodes := e.Trees[ti].Nodes
		if len(nodes) == 0 {
			return fmt.Errorf("%w: tree %d has no nodes", ErrMalformedModel, ti)
		}
		for ni, node := range nodes {
			if node.Left < 0 {
				continue
			}
			if node.Left >= len(nodes) || node.Right < 0 || node.Right >= len(nodes) {
				return fmt.Errorf("%w: tree %d node %d child out of range",
					ErrMalformedModel, ti, ni)
			}
		}
	}
	return nil
}

// Scaler standardizes features as (x - mean) / scale, mirroring the
// scaler fitted at training time.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform standardizes a feature vector. The input is not modified.
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("%w: got %d features, scaler fitted for %d",
			ErrFeatureMismatch, len(features), len(s.Mean))
	}
	out := make([]float64, len(features))
	for i, x := range features {
		div := s.Scale[i]
		if div == 0 {
			div = 1
		}
		out[i] = (x - s.Mean[i]) / div
	}
	return out, nil
}

// loadEnsemble reads a JSON tree dump from disk.
func loadEnsemble(path string) (*TreeEnsemble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ensemble TreeEnsemble
	if err := json.Unmarshal(data, &ensemble); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedModel, path, err)
	}
	if err := ensemble.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ensemble, nil
}

// loadScaler reads a JSON scaler dump from disk.
func loadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scaler Scaler
	if err := json.Unmarshal(data, &scaler); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedModel, path, err)
	}
	if len(scaler.Mean) != len(scaler.Scale) {
		return nil, fmt.Errorf("%w: %s: mean/scale length mismatch",
			ErrMalformedModel, path)
	}
	return &scaler, nil
}
