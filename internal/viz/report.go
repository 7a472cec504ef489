package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nanomix/internal/mixing"
	"github.com/san-kum/nanomix/internal/sweep"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.DodgerBlue,
	asciigraph.Orange,
	asciigraph.Green,
	asciigraph.Red,
	asciigraph.Purple,
	asciigraph.Yellow,
}

// SweepTable lists each level with the conductivity ratio of every stage.
func SweepTable(res *sweep.Result) string {
	header := []string{"vol %"}
	for _, s := range res.Species {
		header = append(header, "+"+s.Name)
	}

	rows := make([][]string, len(res.Stages))
	for i, st := range res.Stages {
		row := []string{fmt.Sprintf("%g", st.Level)}
		for _, r := range st.Ratios(res.Base.Conductivity) {
			row = append(row, fmt.Sprintf("%.6f", r))
		}
		rows[i] = row
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("thermal conductivity ratio k/k_%s (k_%s = %g W/mK)",
		res.Base.Name, res.Base.Name, res.Base.Conductivity)))
	sb.WriteString("\n\n")
	sb.WriteString(Table(header, rows))
	for i, label := range res.Labels() {
		sb.WriteString(MetricLabel.Render(fmt.Sprintf("  +%s  %s", res.Species[i].Name, label)))
		sb.WriteString("\n")
	}
	for _, sk := range res.Skipped {
		sb.WriteString(WarnStyle.Render(fmt.Sprintf("skipped %g%%: %v", sk.Level, sk.Err)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ConversionTable lists weight percent per species for each volume percent.
func ConversionTable(rows []sweep.ConversionRow, species []mixing.Species, base string) string {
	header := []string{"vol %"}
	for _, s := range species {
		header = append(header, s.Name+" wt %")
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		row := []string{fmt.Sprintf("%g", r.Level)}
		for _, w := range r.Weights {
			row = append(row, FormatPercent(w))
		}
		cells[i] = row
	}

	return TitleStyle.Render("volume % to weight % in "+base) + "\n\n" + Table(header, cells)
}

// PlotCurves draws one series per stage. The x axis is the level index, so
// the caption lists the levels.
func PlotCurves(curves [][]float64, labels []string, levels []float64, height, width int) string {
	if len(curves) == 0 || len(levels) == 0 {
		return ""
	}

	data := curves
	if len(levels) == 1 {
		// asciigraph needs two points to draw a line
		data = make([][]float64, len(curves))
		for i, c := range curves {
			data[i] = []float64{c[0], c[0]}
		}
	}

	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range colors {
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	lv := make([]string, len(levels))
	for i, l := range levels {
		lv[i] = fmt.Sprintf("%g", l)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(labels...),
		asciigraph.Caption("k/k_base vs solid volume % ["+strings.Join(lv, ", ")+"]"),
	)
}
