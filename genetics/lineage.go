package genetics

// Lineage holds one derived gene per plant type for a single species seed.
// All genes are sampled up front so lookups during growth cannot fail.
type Lineage struct {
	seed  int64
	genes map[PlantType]*Gene
}

// NewLineage derives the gene of every plant type from seed.
func NewLineage(seed int64, meta Meta) (*Lineage, error) {
	l := &Lineage{
		seed:  seed,
		genes: make(map[PlantType]*Gene, len(AllTypes)),
	}
	for _, t := range AllTypes {
		g, err := NewGene(seed, t, meta)
		if err != nil {
			return nil, err
		}
		l.genes[t] = g
	}
	return l, nil
}

// Seed returns the species seed.
func (l *Lineage) Seed() int64 { return l.seed }

// Gene returns the gene derived for t; unknown types map to Root.
func (l *Lineage) Gene(t PlantType) *Gene {
	if g, ok := l.genes[t]; ok {
		return g
	}
	return l.genes[Root]
}
