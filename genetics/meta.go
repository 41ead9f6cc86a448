package genetics

import "math"

// Meta holds the ranges a gene's own ranges are sampled from.
type Meta struct {
	BaseRadius       Range              `yaml:"base_radius"`        // reference trunk radius; its min scales lengths
	LengthFloorScale Range              `yaml:"length_floor_scale"` // length min = base_radius.min * sample
	LengthSpread     Range              `yaml:"length_spread"`      // length max = length min + sample
	PitchFloor       float64            `yaml:"pitch_floor"`        // radians
	PitchSpread      Range              `yaml:"pitch_spread"`       // pitch max = floor + sample
	RadiusReduction  Range              `yaml:"radius_reduction"`
	Color            ColorRanges        `yaml:"color"`
	ColorJitter      float64            `yaml:"color_jitter"` // max inward shift of each channel bound
	MinRadius        float64            `yaml:"min_radius"`
	ForkFloor        float64            `yaml:"fork_floor"`
	ShrubFork        Range              `yaml:"shrub_fork"`
	TypeLengthScale  map[string]float64 `yaml:"type_length_scale"`
}

// DefaultMeta returns the parameters the viewer ships with.
func DefaultMeta() Meta {
	return Meta{
		BaseRadius:       Range{1, 5},
		LengthFloorScale: Range{1, 7},
		LengthSpread:     Range{0, 4},
		PitchFloor:       math.Pi / 16,
		PitchSpread:      Range{0, math.Pi / 4},
		RadiusReduction:  Range{0.6, 0.7},
		Color: ColorRanges{
			R: Range{0.0, 0.4},
			G: Range{0.6, 1.0},
			B: Range{0.0, 0.4},
		},
		ColorJitter: 0.1,
		MinRadius:   0.2,
		ForkFloor:   0.2,
		ShrubFork:   Range{0.05, 0.15},
		TypeLengthScale: map[string]float64{
			Root.String():        1.0,
			Grass.String():       0.5,
			TallTrunk.String():   1.3,
			ShrubTrunk.String():  0.7,
			LongBranch.String():  1.2,
			ShortBranch.String(): 0.6,
		},
	}
}

func (m Meta) lengthScale(t PlantType) float64 {
	if s, ok := m.TypeLengthScale[t.String()]; ok && s > 0 {
		return s
	}
	return 1
}
