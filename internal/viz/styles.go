package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Table renders rows under a header with right-aligned numeric columns.
// Column widths fit the widest cell.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	cells := func(row []string, style lipgloss.Style) string {
		parts := make([]string, len(row))
		for i, c := range row {
			parts[i] = style.Width(widths[i]).Align(lipgloss.Right).Render(c)
		}
		return strings.Join(parts, "  ")
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(cells(header, lipgloss.NewStyle())))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(cells(row, MetricValue))
		sb.WriteString("\n")
	}
	return sb.String()
}

// EnhancementBar draws ratio-1 as a bar scaled against maxRatio-1.
func EnhancementBar(ratio, maxRatio float64, width int) string {
	frac := 0.0
	if maxRatio > 1 {
		frac = (ratio - 1) / (maxRatio - 1)
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if frac > 0.66 {
		return SparkHigh.Render(bar)
	} else if frac > 0.33 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

func FormatPercent(v float64) string {
	return fmt.Sprintf("%.3f%%", v)
}
