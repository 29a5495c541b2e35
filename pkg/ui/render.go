/* pkg/ui/render.go */

package ui

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/charmbracelet/lipgloss"
)

// RuleWidth is the width of the lines framing the commit preview.
const RuleWidth = 37

// Banner is printed before the composer starts.
func (s Styles) Banner() string {
	return s.Title.Render("🚀 Semantic Commit Generator") + "\n"
}

// Rule is a horizontal separator line.
func (s Styles) Rule() string {
	return s.Separator.Render(strings.Repeat("─", RuleWidth))
}

// Preview frames the final message between two rules.
func (s Styles) Preview(message string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(s.Subtitle.Render("📝 Commit message preview:"))
	sb.WriteString("\n\n")
	sb.WriteString(s.Rule())
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(message, "\n"))
	sb.WriteString("\n")
	sb.WriteString(s.Rule())
	sb.WriteString("\n")
	return sb.String()
}

// TypesTable lists the commit types with their emoji and label.
func (s Styles) TypesTable(types []conventional.TypeInfo) string {
	width := 0
	for _, t := range types {
		if w := lipgloss.Width(string(t.Type)); w > width {
			width = w
		}
	}
	width += 2

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.Header.Width(width).Render("TYPE"),
			s.Header.Render("DESCRIPTION"),
		),
	}
	for _, t := range types {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			s.Selected.Width(width).Render(string(t.Type)),
			s.Cell.Render(t.Display()),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// SuccessLine and friends prefix a status line with its marker.
func (s Styles) SuccessLine(msg string) string { return s.Success.Render("✅ "+msg) + "\n" }
func (s Styles) WarnLine(msg string) string { return s.Warning.Render("⚠️  "+msg) + "\n" }
