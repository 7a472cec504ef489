package sweep

import (
	"strings"

	"github.com/san-kum/nanomix/internal/mixing"
)

var stageNames = []string{"Nanofluid", "Hybrid Nanofluid", "Tri-Hybrid Nanofluid", "Tetra-Hybrid Nanofluid"}

// StageName names the mixture after n species (1-based).
func StageName(n int) string {
	if n >= 1 && n <= len(stageNames) {
		return stageNames[n-1]
	}
	return "Hybrid Nanofluid"
}

// Labels returns "Ag/EG (Nanofluid)", "Ag-TiO2/EG (Hybrid Nanofluid)", ...
func Labels(species []mixing.Species, base string) []string {
	labels := make([]string, len(species))
	names := make([]string, 0, len(species))
	for i, s := range species {
		names = append(names, s.Name)
		labels[i] = strings.Join(names, "-") + "/" + base + " (" + StageName(i+1) + ")"
	}
	return labels
}
