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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	modelsDir  string // CLI override for models.dir
	logLevel   string // CLI override for logging.level
	debugMode  bool

	compositionSpec string
	fullReport      bool

	minYield       float64
	minTensile     float64
	minElongation  float64
	targetHardness float64
	baseElement    string
	maxCost        string
	forbidden      []string
	searchSeed     int64

	gradeSearch string
	gradeType   string
	minStrength float64

	rootCmd = &cobra.Command{
		Use:   "alloypredictor",
		Short: "Predict alloy properties from elemental composition",
		Long: `AlloyPredictor estimates mechanical, fatigue, impact, corrosion,
				heat treatment, and wear properties of metal alloys from their
				elemental composition, and searches for compositions meeting
				target properties.`,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the prediction API server",
		RunE:  runServe, // Defined in cmd_serve.go
	}

	predictCmd = &cobra.Command{
		Use:   "predict",
		Short: "Predict properties for a single composition",
		RunE:  runPredict, // Defined in cmd_query.go
	}

	optimizeCmd = &cobra.Command{
		Use:   "optimize",
		Short: "Search for a composition meeting target properties",
		RunE:  runOptimize, // Defined in cmd_query.go
	}

	gradesCmd = &cobra.Command{
		Use:   "grades [grade]",
		Short: "Look up reference grades, or one grade by name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGrades, // Defined in cmd_query.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models", "",
		"Directory holding trained model dumps (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, or error (overrides config)")

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVarP(&compositionSpec, "composition", "c", "",
		`Composition as symbol:percent pairs, e.g. "Fe:97.5,C:0.45,Mn:0.65"`)
	predictCmd.Flags().BoolVar(&fullReport, "full", false,
		"Report every property group, not just mechanical")
	_ = predictCmd.MarkFlagRequired("composition")

	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().Float64Var(&minYield, "min-yield", 0, "Minimum yield strength (MPa)")
	optimizeCmd.Flags().Float64Var(&minTensile, "min-tensile", 0, "Minimum tensile strength (MPa)")
	optimizeCmd.Flags().Float64Var(&minElongation, "min-elongation", 0, "Minimum elongation (%)")
	optimizeCmd.Flags().Float64Var(&targetHardness, "target-hardness", 0, "Target hardness (HV)")
	optimizeCmd.Flags().StringVar(&baseElement, "base", "", "Base element symbol (default Fe)")
	optimizeCmd.Flags().StringVar(&maxCost, "max-cost", "",
		"Raw-material budget: low, medium, high, or unlimited")
	optimizeCmd.Flags().StringSliceVar(&forbidden, "forbid", nil,
		"Element symbols to exclude from the search")
	optimizeCmd.Flags().Int64Var(&searchSeed, "seed", 0, "Random seed for a reproducible search")

	rootCmd.AddCommand(gradesCmd)
	gradesCmd.Flags().StringVar(&gradeSearch, "search", "", "Substring to match in grade names and applications")
	gradesCmd.Flags().StringVar(&gradeType, "type", "", "Filter by alloy type (e.g. stainless_steel)")
	gradesCmd.Flags().Float64Var(&minStrength, "min-strength", 0, "Minimum tensile strength (MPa)")
}
