package sweep

import "github.com/san-kum/nanomix/internal/mixing"

// ConversionRow is the weight fraction (percent) of each species at one level.
type ConversionRow struct {
	Level   float64
	Weights []float64
}

// ConversionTable converts every level for every species against the base
// fluid density. It fails on the first invalid input.
func ConversionTable(levels []float64, species []mixing.Species, rhoBase float64) ([]ConversionRow, error) {
	rows := make([]ConversionRow, 0, len(levels))
	for _, level := range levels {
		row := ConversionRow{Level: level, Weights: make([]float64, len(species))}
		for i, s := range species {
			w, err := mixing.VolumeToWeightFraction(level, s.Density, rhoBase)
			if err != nil {
				return nil, &mixing.StageError{Level: level, Stage: i, Species: s.Name, Wrapped: err}
			}
			row.Weights[i] = w
		}
		rows = append(rows, row)
	}
	return rows, nil
}
