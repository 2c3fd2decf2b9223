package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-snake/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorGrass:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6ee7b7")),
	core.ColorGrassAlt: lipgloss.NewStyle().Foreground(lipgloss.Color("#a7f3d0")),
	core.ColorTrunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("#92400e")),
	core.ColorLeaves:   lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")).Bold(true),
	core.ColorStone:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
	core.ColorApple:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f43f5e")).Bold(true),
	core.ColorHead:     lipgloss.NewStyle().Foreground(lipgloss.Color("#fcd34d")).Bold(true),
	core.ColorBody:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("#fda4af")).Bold(true),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorDanger:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
