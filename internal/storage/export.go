package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/nanomix/internal/mixing"
)

type ExportData struct {
	Run            RunMetadata `json:"run"`
	Levels         []float64   `json:"levels"`
	Conductivities [][]float64 `json:"conductivities"`
	Ratios         [][]float64 `json:"ratios"`
}

// ExportJSON writes a stored run with its curves as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, curves *Curves) error {
	data := ExportData{
		Run:            *meta,
		Levels:         curves.Levels,
		Conductivities: curves.Conductivities,
		Ratios:         curves.Ratios,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCurvesCSV writes level, k_<species>..., ratio_<species>... rows.
func WriteCurvesCSV(w *csv.Writer, species []mixing.Species, stages []mixing.StageResult, kBase float64) error {
	header := []string{"level"}
	for _, s := range species {
		header = append(header, "k_"+s.Name)
	}
	for _, s := range species {
		header = append(header, "ratio_"+s.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, st := range stages {
		if len(st.Conductivities) != len(species) {
			return fmt.Errorf("level %g has %d stages, want %d", st.Level, len(st.Conductivities), len(species))
		}
		row := []string{formatFloat(st.Level)}
		for _, k := range st.Conductivities {
			row = append(row, formatFloat(k))
		}
		for _, r := range st.Ratios(kBase) {
			row = append(row, formatFloat(r))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteStoredCSV re-emits a stored run in the same layout as curves.csv.
func WriteStoredCSV(w *csv.Writer, meta *RunMetadata, curves *Curves) error {
	species := make([]mixing.Species, len(meta.Species))
	for i, s := range meta.Species {
		species[i] = mixing.Species{Name: s.Name, Density: s.Density, Conductivity: s.Conductivity}
	}
	stages := make([]mixing.StageResult, len(curves.Levels))
	for i, level := range curves.Levels {
		stages[i] = mixing.StageResult{Level: level, Conductivities: curves.Conductivities[i]}
	}
	return WriteCurvesCSV(w, species, stages, meta.BaseConductivity)
}
