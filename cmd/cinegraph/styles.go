package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Status colors.
var (
	colorPass = lipgloss.Color("#10b981") // green-500
	colorFail = lipgloss.Color("#ef4444") // red-500
	colorDim  = lipgloss.Color("#6b7280") // gray-500
)

// Styles holds the lipgloss styles for CLI status output.
type Styles struct {
	Pass lipgloss.Style
	Fail lipgloss.Style
	Dim  lipgloss.Style
}

// newStyles builds the style set, dropping color when stdout is not a
// terminal.
func newStyles() Styles {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return Styles{
			Pass: lipgloss.NewStyle(),
			Fail: lipgloss.NewStyle(),
			Dim:  lipgloss.NewStyle(),
		}
	}

	return Styles{
		Pass: lipgloss.NewStyle().Foreground(colorPass).Bold(true),
		Fail: lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		Dim:  lipgloss.NewStyle().Foreground(colorDim),
	}
}
