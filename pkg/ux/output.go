// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the alloypredictor
// CLI. Styled text goes to stderr so stdout stays parseable JSON.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette - furnace oranges over cold steel grays
var (
	ColorEmber    = lipgloss.Color("#E8833A") // Highlights, headings
	ColorSteel    = lipgloss.Color("#8A97A0") // Muted text
	ColorChromium = lipgloss.Color("#B8C4CC") // Secondary text

	// Semantic colors
	ColorSuccess = lipgloss.Color("#4CAF7D")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorEmber),
	Muted:   lipgloss.NewStyle().Foreground(ColorSteel),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorError),
}

// styled reports whether stderr is a terminal worth coloring.
// NO_COLOR is honored per https://no-color.org.
func styled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

// render applies the style only when stderr is a terminal.
func render(s lipgloss.Style, msg string) string {
	if !styled() {
		return msg
	}
	return s.Render(msg)
}

// Successf prints a success line to stderr.
func Successf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, render(Styles.Success, "✓ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, render(Styles.Warning, "⚠ "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, render(Styles.Error, "✗ "+fmt.Sprintf(format, args...)))
}

// Mutedf prints a de-emphasized line to stderr.
func Mutedf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, render(Styles.Muted, fmt.Sprintf(format, args...)))
}
