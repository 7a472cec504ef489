package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nanomix/internal/mixing"
)

const (
	DefaultBaseFluid        = "EG"
	DefaultBaseConductivity = 0.253
	DefaultWorkers          = 4
)

// Error policies for a failing loading level.
const (
	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

var ErrInvalidConfig = errors.New("invalid config")

// DefaultLevels is the loading sweep in volume percent.
var DefaultLevels = []float64{0.005, 0.05, 0.1, 0.5, 1.0}

type Config struct {
	BaseFluidName     string             `yaml:"base_fluid_name"`
	BaseConductivity  float64            `yaml:"base_conductivity,omitempty"`
	SpeciesOrder      []string           `yaml:"species_order"`
	DensityTable      map[string]float64 `yaml:"density_table"`
	ConductivityTable map[string]float64 `yaml:"conductivity_table"`
	Levels            []float64          `yaml:"levels"`
	OnError           string             `yaml:"on_error"`
	Workers           int                `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseFluidName:    DefaultBaseFluid,
		BaseConductivity: DefaultBaseConductivity,
		SpeciesOrder:     []string{"Ag", "TiO2", "GO", "Co"},
		DensityTable: map[string]float64{
			"Co":   8900,
			"GO":   1800,
			"Ag":   10500,
			"TiO2": 4250,
			"EG":   1115,
		},
		ConductivityTable: map[string]float64{
			"Ag":   429,
			"TiO2": 8.9538,
			"GO":   5000,
			"Co":   100,
		},
		Levels:  append([]float64(nil), DefaultLevels...),
		OnError: PolicyAbort,
		Workers: DefaultWorkers,
	}
}

// Load reads a YAML file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of base, which is left untouched. Table
// entries in the file are merged into the base tables; lists replace them.
// When the file omits base_conductivity, the inherited value is dropped in
// favour of the conductivity table if the file names another base fluid or
// the table carries an entry for it.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var set struct {
		BaseConductivity *float64 `yaml:"base_conductivity"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if set.BaseConductivity == nil {
		_, inTable := cfg.ConductivityTable[cfg.BaseFluidName]
		if inTable || cfg.BaseFluidName != base.BaseFluidName {
			cfg.BaseConductivity = 0
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets and defaults are never mutated.
func (c *Config) Clone() *Config {
	out := *c
	out.SpeciesOrder = append([]string(nil), c.SpeciesOrder...)
	out.Levels = append([]float64(nil), c.Levels...)
	out.DensityTable = make(map[string]float64, len(c.DensityTable))
	for k, v := range c.DensityTable {
		out.DensityTable[k] = v
	}
	out.ConductivityTable = make(map[string]float64, len(c.ConductivityTable))
	for k, v := range c.ConductivityTable {
		out.ConductivityTable[k] = v
	}
	return &out
}

// BaseK returns the base fluid conductivity, falling back to the
// conductivity table when base_conductivity is unset.
func (c *Config) BaseK() float64 {
	if c.BaseConductivity != 0 {
		return c.BaseConductivity
	}
	return c.ConductivityTable[c.BaseFluidName]
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks structure only: names resolve, values are present and the
// sweep options are usable. Physical ranges are checked by the mixing package.
func (c *Config) Validate() error {
	if c.BaseFluidName == "" {
		return invalid("base_fluid_name is empty")
	}
	if _, ok := c.DensityTable[c.BaseFluidName]; !ok {
		return invalid("no density for base fluid %q", c.BaseFluidName)
	}
	if c.BaseK() == 0 {
		return invalid("no conductivity for base fluid %q", c.BaseFluidName)
	}
	if len(c.SpeciesOrder) == 0 {
		return invalid("species_order is empty")
	}

	seen := make(map[string]bool, len(c.SpeciesOrder))
	for _, name := range c.SpeciesOrder {
		if name == c.BaseFluidName {
			return invalid("base fluid %q listed in species_order", name)
		}
		if seen[name] {
			return invalid("species %q listed twice", name)
		}
		seen[name] = true
		if _, ok := c.DensityTable[name]; !ok {
			return invalid("no density for species %q", name)
		}
		if _, ok := c.ConductivityTable[name]; !ok {
			return invalid("no conductivity for species %q", name)
		}
	}

	if len(c.Levels) == 0 {
		return invalid("levels is empty")
	}
	for _, l := range c.Levels {
		if math.IsNaN(l) || l < 0 || l > 100 {
			return invalid("level %g not in [0,100]", l)
		}
	}

	switch c.OnError {
	case PolicyAbort, PolicySkip:
	default:
		return invalid("unknown on_error policy %q", c.OnError)
	}
	if c.Workers <= 0 {
		return invalid("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// Resolve turns the registry tables into the values the mixing package takes.
func (c *Config) Resolve() (mixing.BaseFluid, []mixing.Species, error) {
	if err := c.Validate(); err != nil {
		return mixing.BaseFluid{}, nil, err
	}

	base := mixing.BaseFluid{
		Name:         c.BaseFluidName,
		Density:      c.DensityTable[c.BaseFluidName],
		Conductivity: c.BaseK(),
	}

	species := make([]mixing.Species, len(c.SpeciesOrder))
	for i, name := range c.SpeciesOrder {
		species[i] = mixing.Species{
			Name:         name,
			Density:      c.DensityTable[name],
			Conductivity: c.ConductivityTable[name],
		}
	}
	return base, species, nil
}

// Particles returns every species with a density and conductivity, sorted
// in species_order first and then by name.
func (c *Config) Particles() []string {
	names := append([]string(nil), c.SpeciesOrder...)
	inOrder := make(map[string]bool, len(names))
	for _, n := range names {
		inOrder[n] = true
	}

	var rest []string
	for name := range c.DensityTable {
		if name == c.BaseFluidName || inOrder[name] {
			continue
		}
		if _, ok := c.ConductivityTable[name]; ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
