/* pkg/ui/styles.go */

// Package ui holds the lipgloss styles and small renderers glimpse prints
// with: the banner, the commit preview and the commit type table.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Common color palette for consistent styling
var (
	ColorPrimary = lipgloss.Color("#00ffff") // Cyan
	ColorSuccess = lipgloss.Color("#00ff00") // Green
	ColorWarning = lipgloss.Color("#ffaa00") // Orange
	ColorInfo    = lipgloss.Color("#0099ff") // Blue
	ColorMuted   = lipgloss.Color("#666666") // Gray
	ColorBorder  = lipgloss.Color("#3d5a80") // Medium blue
)

// Styles is the set of styles shared by every command.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Prompt   lipgloss.Style
	Hint     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style

	Selected lipgloss.Style
	Cursor   lipgloss.Style

	Separator lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
}

// NewStyles builds the palette; with color off every style renders plain text.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title: plain, Subtitle: plain, Prompt: plain, Hint: plain,
			Success: plain, Warning: plain, Muted: plain,
			Selected: plain, Cursor: plain,
			Separator: plain, Header: plain, Cell: plain.PaddingRight(2),
		}
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Subtitle: lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true),

		Prompt: lipgloss.NewStyle().
			Bold(true),

		Hint: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		Separator: lipgloss.NewStyle().
			Foreground(ColorBorder),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInfo).
			PaddingRight(2),

		Cell: lipgloss.NewStyle().
			PaddingRight(2),
	}
}
