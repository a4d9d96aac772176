// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AlloyPredictor/pkg/logging"
	"github.com/AleutianAI/AlloyPredictor/pkg/ux"
	"github.com/AleutianAI/AlloyPredictor/services/predictor"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/config"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/model"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/reference"
)

// buildService assembles the prediction service from configuration.
func buildService(cfg *config.Config, log *logging.Logger) (*predictor.Service, error) {
	registry, err := model.LoadRegistry(cfg.Models.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("loading models from %s: %w", cfg.Models.Dir, err)
	}
	store, err := reference.NewStore()
	if err != nil {
		return nil, fmt.Errorf("loading grade catalog: %w", err)
	}
	return predictor.NewService(registry, store, log, cfg.Optimize.MaxBatchSize), nil
}

// localService builds a service for one-shot CLI queries. Logging is
// kept to warnings so JSON output stays clean on stdout.
func localService() (*predictor.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	log := logging.New(logging.Config{
		Level:   logging.LevelWarn,
		Service: "cli",
	})
	return buildService(cfg, log)
}

// parseCompositionSpec parses "Fe:97.5,C:0.45,Mn:0.65" into a
// composition map.
func parseCompositionSpec(spec string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		sym, val, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed composition entry %q, want symbol:percent", pair)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed percentage in %q: %w", pair, err)
		}
		out[strings.TrimSpace(sym)] = pct
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("composition %q contains no elements", spec)
	}
	return out, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runPredict predicts properties for a single composition and prints
// the result as JSON.
func runPredict(cmd *cobra.Command, args []string) error {
	svc, err := localService()
	if err != nil {
		return err
	}
	m, err := parseCompositionSpec(compositionSpec)
	if err != nil {
		return err
	}
	comp, err := svc.ParseComposition(m)
	if err != nil {
		return err
	}
	if fullReport {
		resp := svc.PredictFull(comp)
		for _, w := range resp.Warnings {
			ux.Warnf("%s", w)
		}
		return printJSON(resp)
	}
	resp := svc.Predict(comp)
	for _, w := range resp.Warnings {
		ux.Warnf("%s", w)
	}
	return printJSON(resp)
}

// runOptimize searches for a composition meeting the target flags and
// prints the result as JSON.
func runOptimize(cmd *cobra.Command, args []string) error {
	svc, err := localService()
	if err != nil {
		return err
	}

	targets := make(map[string]float64)
	if minYield > 0 {
		targets["min_yield_strength"] = minYield
	}
	if minTensile > 0 {
		targets["min_tensile_strength"] = minTensile
	}
	if minElongation > 0 {
		targets["min_elongation"] = minElongation
	}
	if targetHardness > 0 {
		targets["target_hardness"] = targetHardness
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets given, set at least one of --min-yield, --min-tensile, --min-elongation, --target-hardness")
	}

	req := predictor.OptimizeRequest{
		TargetProperties: targets,
		Constraints: predictor.OptimizeConstraints{
			BaseElement:       baseElement,
			MaxCost:           maxCost,
			ForbiddenElements: forbidden,
		},
		Seed: searchSeed,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid constraints: %w", err)
	}

	result, err := svc.Optimize(context.Background(), req)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		ux.Warnf("%s", w)
	}
	ux.Mutedf("search converged=%v after %d generations",
		result.Stats.Converged, result.Stats.Generations)
	return printJSON(result)
}

// runGrades lists matching reference grades, or prints one grade when
// a name argument is given.
func runGrades(cmd *cobra.Command, args []string) error {
	svc, err := localService()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		grade, err := svc.Grade(args[0])
		if err != nil {
			return err
		}
		return printJSON(grade)
	}
	grades := svc.Grades(reference.Filter{
		Type:        gradeType,
		MinStrength: minStrength,
		Search:      gradeSearch,
	})
	return printJSON(grades)
}
