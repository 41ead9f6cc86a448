package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sprout/plant"
)

// GenerationStats summarizes a plant after one growth cycle.
type GenerationStats struct {
	PlantID     string `csv:"plant_id"`
	SpeciesSeed int64  `csv:"species_seed"`
	PlantSeed   int64  `csv:"plant_seed"`
	Generation  int    `csv:"generation"`

	// Tree shape
	Nodes      int `csv:"nodes"`
	Tips       int `csv:"tips"`       // leaves of the growth tree
	Terminated int `csv:"terminated"` // tips too thin to grow
	MaxDepth   int `csv:"max_depth"`
	Forks      int `csv:"forks"` // nodes with two children
	Twigs      int `csv:"twigs"`

	TotalLength float64 `csv:"total_length"`

	// Tip radius distribution over all nodes
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Samples consumed from the plant's stream so far
	Draws int `csv:"draws"`
}

// Collect walks the plant and fills the shape and radius fields. Identity
// fields are left for the caller.
func Collect(root *plant.Node) GenerationStats {
	var s GenerationStats
	if root == nil {
		return s
	}

	radii := make([]float64, 0, 64)
	root.Walk(func(n *plant.Node) bool {
		s.Nodes++
		s.TotalLength += n.Length()
		radii = append(radii, n.Radius())

		if n.Depth() > s.MaxDepth {
			s.MaxDepth = n.Depth()
		}
		if n.IsLeaf() {
			s.Tips++
			if n.Terminated() {
				s.Terminated++
			}
		}
		if n.NumChildren() == 2 {
			s.Forks++
		}
		if _, ok := n.Twig(); ok {
			s.Twigs++
		}
		return true
	})

	s.RadiusMean, s.RadiusStd, s.RadiusP10, s.RadiusP50, s.RadiusP90 = distribution(radii)
	s.Draws = root.Stream().Draws()
	return s
}

// distribution returns mean, standard deviation and empirical percentiles.
// values is sorted in place.
func distribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	sort.Float64s(values)
	if len(values) == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}
	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("plant_id", s.PlantID),
		slog.Int64("species_seed", s.SpeciesSeed),
		slog.Int64("plant_seed", s.PlantSeed),
		slog.Int("generation", s.Generation),
		slog.Int("nodes", s.Nodes),
		slog.Int("tips", s.Tips),
		slog.Int("terminated", s.Terminated),
		slog.Int("max_depth", s.MaxDepth),
		slog.Int("forks", s.Forks),
		slog.Int("twigs", s.Twigs),
		slog.Float64("total_length", s.TotalLength),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Int("draws", s.Draws),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"plant_id", s.PlantID,
		"generation", s.Generation,
		"nodes", s.Nodes,
		"tips", s.Tips,
		"terminated", s.Terminated,
		"max_depth", s.MaxDepth,
		"forks", s.Forks,
		"twigs", s.Twigs,
		"total_length", s.TotalLength,
		"radius_mean", s.RadiusMean,
		"radius_p10", s.RadiusP10,
		"radius_p90", s.RadiusP90,
		"draws", s.Draws,
	)
}

// Done reports whether every tip has terminated, so further growth changes
// nothing but ages.
func (s GenerationStats) Done() bool {
	return s.Nodes > 0 && s.Tips == s.Terminated
}
