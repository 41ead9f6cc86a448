package genetics

// PlantType tags the growth habit a gene was derived for.
type PlantType uint8

const (
	Root PlantType = iota
	Grass
	TallTrunk
	ShrubTrunk
	LongBranch
	ShortBranch
)

var typeNames = [...]string{
	Root:        "root",
	Grass:       "grass",
	TallTrunk:   "tall-trunk",
	ShrubTrunk:  "shrub-trunk",
	LongBranch:  "long-branch",
	ShortBranch: "short-branch",
}

// AllTypes lists every known plant type in declaration order.
var AllTypes = []PlantType{Root, Grass, TallTrunk, ShrubTrunk, LongBranch, ShortBranch}

// String returns the type's grammar symbol.
func (t PlantType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Known reports whether t is one of the grammar's symbols.
func (t PlantType) Known() bool {
	return int(t) < len(typeNames)
}

// ParseType looks up a type by its grammar symbol.
func ParseType(s string) (PlantType, bool) {
	for i, name := range typeNames {
		if name == s {
			return PlantType(i), true
		}
	}
	return Root, false
}

// NextType applies the transition table to a uniform draw p.
// Grass and ShortBranch are absorbing; unknown types fall back to Root.
func NextType(parent PlantType, p float64) PlantType {
	switch parent {
	case Root:
		switch {
		case p <= 0.33:
			return Grass
		case p <= 0.66:
			return TallTrunk
		default:
			return ShrubTrunk
		}
	case ShrubTrunk:
		if p <= 0.5 {
			return ShrubTrunk
		}
		return ShortBranch
	case TallTrunk:
		switch {
		case p <= 0.5:
			return TallTrunk
		case p <= 0.75:
			return LongBranch
		default:
			return ShortBranch
		}
	case Grass:
		return Grass
	case LongBranch:
		if p <= 0.8 {
			return LongBranch
		}
		return ShortBranch
	case ShortBranch:
		return ShortBranch
	default:
		return Root
	}
}
