package main

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/garden"
	"github.com/pthm-cable/sprout/telemetry"
)

// Target is the plant shape the tuner aims for, averaged over seeds.
type Target struct {
	Nodes    float64
	MaxDepth float64
}

// FitnessEvaluator grows headless plants and scores their shape.
type FitnessEvaluator struct {
	params         *ParamVector
	baseConfig     *config.Config
	seeds          []int64
	target         Target
	maxGenerations int
	logger         *slog.Logger

	mu        sync.Mutex
	lastNodes float64
	lastDepth float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, target Target, maxGenerations int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		baseConfig:     baseCfg,
		seeds:          seeds,
		target:         target,
		maxGenerations: maxGenerations,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Last returns the mean shape from the most recent evaluation.
func (fe *FitnessEvaluator) Last() (nodes, depth float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastNodes, fe.lastDepth
}

// Evaluate scores raw parameter values; lower is better. The score is the
// squared relative error of mean node count and mean depth.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	// Shallow copy is enough: only scalar and array gene fields change.
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, raw)

	results := make([]telemetry.GenerationStats, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = fe.grow(&cfg, seed)
		}()
	}
	wg.Wait()

	var nodes, depth float64
	for i, err := range errs {
		if err != nil {
			return math.Inf(1)
		}
		nodes += float64(results[i].Nodes)
		depth += float64(results[i].MaxDepth)
	}
	nodes /= float64(len(fe.seeds))
	depth /= float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastNodes, fe.lastDepth = nodes, depth
	fe.mu.Unlock()

	return score(nodes, fe.target.Nodes) + score(depth, fe.target.MaxDepth)
}

// grow runs one plant until it stops growing.
func (fe *FitnessEvaluator) grow(cfg *config.Config, seed int64) (telemetry.GenerationStats, error) {
	s, err := garden.New(cfg, seed, seed, fe.logger)
	if err != nil {
		return telemetry.GenerationStats{}, err
	}
	for gen := 0; gen < fe.maxGenerations; gen++ {
		if err := s.Grow(); err != nil {
			if errors.Is(err, garden.ErrNodeLimit) {
				break
			}
			return telemetry.GenerationStats{}, err
		}
		if s.Stats().Done() {
			break
		}
	}
	return s.Stats(), nil
}

// score is the squared relative error; a zero target scores the raw square.
func score(got, want float64) float64 {
	d := got - want
	if want != 0 {
		d /= want
	}
	return d * d
}
