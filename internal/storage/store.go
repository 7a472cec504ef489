package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/nanomix/internal/sweep"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SpeciesMeta struct {
	Name         string  `json:"name"`
	Density      float64 `json:"density"`
	Conductivity float64 `json:"conductivity"`
}

type SkippedMeta struct {
	Level float64 `json:"level"`
	Error string  `json:"error"`
}

type RunMetadata struct {
	ID               string        `json:"id"`
	Preset           string        `json:"preset,omitempty"`
	Timestamp        time.Time     `json:"timestamp"`
	BaseFluid        string        `json:"base_fluid"`
	BaseDensity      float64       `json:"base_density"`
	BaseConductivity float64       `json:"base_conductivity"`
	Species          []SpeciesMeta `json:"species"`
	Labels           []string      `json:"labels"`
	Levels           []float64     `json:"levels"`
	Skipped          []SkippedMeta `json:"skipped,omitempty"`
	Policy           string        `json:"policy"`
	Workers          int           `json:"workers"`
	ElapsedMs        float64       `json:"elapsed_ms"`
}

// Curves is the tabular form of a stored run.
type Curves struct {
	Levels         []float64
	Conductivities [][]float64 // [level][stage]
	Ratios         [][]float64 // [level][stage]
}

// Stage returns the ratio curve of one stage across levels.
func (c *Curves) Stage(i int) []float64 {
	out := make([]float64, len(c.Ratios))
	for j, row := range c.Ratios {
		if i < len(row) {
			out[j] = row[i]
		}
	}
	return out
}

// Save writes metadata.json and curves.csv for a sweep under a new run id.
func (s *Store) Save(preset, policy string, workers int, result *sweep.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("sweep_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Preset:           preset,
		Timestamp:        now,
		BaseFluid:        result.Base.Name,
		BaseDensity:      result.Base.Density,
		BaseConductivity: result.Base.Conductivity,
		Labels:           result.Labels(),
		Levels:           result.Levels(),
		Policy:           policy,
		Workers:          workers,
		ElapsedMs:        float64(result.Elapsed.Microseconds()) / 1000,
	}
	for _, sp := range result.Species {
		meta.Species = append(meta.Species, SpeciesMeta{Name: sp.Name, Density: sp.Density, Conductivity: sp.Conductivity})
	}
	for _, sk := range result.Skipped {
		meta.Skipped = append(meta.Skipped, SkippedMeta{Level: sk.Level, Error: sk.Err.Error()})
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeCurves(filepath.Join(runDir, "curves.csv"), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCurves(path string, result *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteCurvesCSV(w, result.Species, result.Stages, result.Base.Conductivity); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadCurves reads curves.csv back. The header tells how many stages there are.
func (s *Store) LoadCurves(runID string) (*Curves, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "curves.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	c := &Curves{}
	if len(records) < 2 {
		return c, nil
	}

	stages := (len(records[0]) - 1) / 2
	for _, record := range records[1:] {
		level, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad level %q: %w", record[0], err)
		}

		ks := make([]float64, stages)
		ratios := make([]float64, stages)
		for i := 0; i < stages; i++ {
			if ks[i], err = strconv.ParseFloat(record[1+i], 64); err != nil {
				return nil, err
			}
			if ratios[i], err = strconv.ParseFloat(record[1+stages+i], 64); err != nil {
				return nil, err
			}
		}

		c.Levels = append(c.Levels, level)
		c.Conductivities = append(c.Conductivities, ks)
		c.Ratios = append(c.Ratios, ratios)
	}
	return c, nil
}
