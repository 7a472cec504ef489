package config

// Presets are named variations of DefaultConfig. Each one is applied with
// GetPreset, which returns a fresh copy.
var Presets = map[string]func(*Config){
	"nanofluid": func(c *Config) {
		c.SpeciesOrder = []string{"Ag"}
	},
	"hybrid": func(c *Config) {
		c.SpeciesOrder = []string{"Ag", "TiO2"}
	},
	"tri-hybrid": func(c *Config) {
		c.SpeciesOrder = []string{"Ag", "TiO2", "GO"}
	},
	"tetra-hybrid": func(c *Config) {
		c.SpeciesOrder = []string{"Ag", "TiO2", "GO", "Co"}
	},
	"fine": func(c *Config) {
		c.Levels = linspace(0, 1, 21)
	},
	"reversed": func(c *Config) {
		c.SpeciesOrder = []string{"Co", "GO", "TiO2", "Ag"}
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
