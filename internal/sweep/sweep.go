package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/nanomix/internal/mixing"
)

type Policy int

const (
	// PolicyAbort stops the sweep at the first failing level.
	PolicyAbort Policy = iota
	// PolicySkip drops failing levels and keeps going.
	PolicySkip
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "abort", "":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	}
	return PolicyAbort, fmt.Errorf("unknown policy: %s", s)
}

func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "abort"
}

// Skipped records a level dropped under PolicySkip.
type Skipped struct {
	Level float64
	Err   error
}

type Result struct {
	Base    mixing.BaseFluid
	Species []mixing.Species
	Stages  []mixing.StageResult // one per successful level, in input order
	Skipped []Skipped
	Elapsed time.Duration
}

// Levels returns the loading levels that produced a result.
func (r *Result) Levels() []float64 {
	out := make([]float64, len(r.Stages))
	for i, s := range r.Stages {
		out[i] = s.Level
	}
	return out
}

// Curves returns k/k_base per stage: Curves()[i][j] is stage i at level j.
func (r *Result) Curves() [][]float64 {
	curves := make([][]float64, len(r.Species))
	for i := range curves {
		curves[i] = make([]float64, len(r.Stages))
	}
	for j, s := range r.Stages {
		for i, ratio := range s.Ratios(r.Base.Conductivity) {
			curves[i][j] = ratio
		}
	}
	return curves
}

// Labels returns the mixture label for each stage.
func (r *Result) Labels() []string {
	return Labels(r.Species, r.Base.Name)
}

type Runner struct {
	policy  Policy
	workers int
	logger  *slog.Logger
}

func NewRunner(policy Policy, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{policy: policy, workers: workers, logger: logger}
}

// Run evaluates every level concurrently. Stages inside a level stay
// sequential; output order matches levels.
func (r *Runner) Run(ctx context.Context, levels []float64, base mixing.BaseFluid, species []mixing.Species) (*Result, error) {
	if err := mixing.ValidateChain(species, base.Conductivity, base.Density); err != nil {
		return nil, err
	}

	start := time.Now()
	stages := make([]mixing.StageResult, len(levels))
	errs := make([]error, len(levels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, level := range levels {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := mixing.ChainLevel(level, species, base.Conductivity, base.Density)
			if err != nil {
				errs[i] = err
				if r.policy == PolicyAbort {
					return err
				}
				return nil
			}
			stages[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Base:    base,
		Species: species,
		Stages:  make([]mixing.StageResult, 0, len(levels)),
	}
	for i, level := range levels {
		if errs[i] != nil {
			r.logger.Warn("level skipped", "level", level, "err", errs[i])
			result.Skipped = append(result.Skipped, Skipped{Level: level, Err: errs[i]})
			continue
		}
		result.Stages = append(result.Stages, stages[i])
	}
	result.Elapsed = time.Since(start)

	r.logger.Debug("sweep finished",
		"levels", len(levels),
		"skipped", len(result.Skipped),
		"stages", len(species),
		"elapsed", result.Elapsed)

	return result, nil
}
