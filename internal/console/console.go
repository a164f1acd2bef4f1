// Package console decides how dtrex presents itself on the terminal: plain
// text when output is piped or captured, styled text when a human is looking.
package console

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Mode represents the presentation mode for dtrex.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, scripts, and piped output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is at the terminal.
	ModeStyled
)

// DetectMode determines whether diagnostics and summaries should be styled.
//
// Returns ModePlain if:
//   - stderr is not a terminal (piped or redirected diagnostics)
//   - DTREX_NO_COLOR=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//
// Returns ModeStyled otherwise. Only stderr matters here: stdout carries the
// compiled output stream and is never styled.
func DetectMode() Mode {
	if os.Getenv("DTREX_NO_COLOR") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// Color palette - keeping it minimal and accessible.
var (
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Styles for run summaries and diagnostics.
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Render applies the style to s in ModeStyled and returns s unchanged in
// ModePlain.
func Render(mode Mode, style lipgloss.Style, s string) string {
	if mode != ModeStyled {
		return s
	}
	return style.Render(s)
}
