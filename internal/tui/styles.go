package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles for the configure wizard
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Label style for form field labels
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// Success style for positive feedback
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error style for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Warning style for warnings
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// Muted style for secondary text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Subtle style for hints and descriptions
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)

	// Box style for bordered containers
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)
)

const logoASCII = `
          _     _       _         _
__      _| |__ (_)___ _ __ | |_ _   _| |__   ___
\ \ /\ / / '_ \| / __| '_ \| __| | | | '_ \ / _ \
 \ V  V /| | | | \__ \ |_) | |_| |_| | |_) |  __/
  \_/\_/ |_| |_|_|___/ .__/ \__|\__,_|_.__/ \___|
                     |_|                         `

// Logo returns the whisptube ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}
