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
	"testing"

	"github.com/AleutianAI/AlloyPredictor/pkg/logging"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/config"
)

func TestParseCompositionSpec(t *testing.T) {
	m, err := parseCompositionSpec("Fe:97.5, C:0.45,Mn:0.65")
	if err != nil {
		t.Fatalf("parseCompositionSpec() error = %v", err)
	}
	if len(m) != 3 {
		t.Fatalf("parsed %d elements, want 3", len(m))
	}
	if m["Fe"] != 97.5 {
		t.Errorf("Fe = %v, want 97.5", m["Fe"])
	}
	if m["C"] != 0.45 {
		t.Errorf("C = %v, want 0.45", m["C"])
	}
}

func TestParseCompositionSpecRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{name: "missing colon", spec: "Fe97.5"},
		{name: "bad number", spec: "Fe:iron"},
		{name: "empty", spec: ""},
		{name: "only separators", spec: ",,,"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseCompositionSpec(tc.spec); err == nil {
				t.Errorf("parseCompositionSpec(%q) succeeded, want error", tc.spec)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{in: "debug", want: logging.LevelDebug},
		{in: "info", want: logging.LevelInfo},
		{in: "warn", want: logging.LevelWarn},
		{in: "error", want: logging.LevelError},
		{in: "", want: logging.LevelInfo},
		{in: "verbose", want: logging.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLogLevel(tc.in); got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	modelsDir = "/tmp/override-models"
	logLevel = "error"
	t.Cleanup(func() {
		modelsDir = ""
		logLevel = ""
	})

	cfg := &config.Config{}
	cfg.Models.Dir = "./models"
	cfg.Logging.Level = "info"

	applyOverrides(cfg)
	if cfg.Models.Dir != "/tmp/override-models" {
		t.Errorf("models dir = %q, want override", cfg.Models.Dir)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("log level = %q, want error", cfg.Logging.Level)
	}
}
