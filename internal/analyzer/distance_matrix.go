package analyzer

// DistanceMatrix stores the pairwise Jaccard distances of the movable entities
// of a class. Only the upper triangle is kept. The matrix is read-only once built.
type DistanceMatrix struct {
	entities []*Entity
	values   []float64
}

// BuildDistanceMatrix computes the distance between every pair of movable entities.
//
// The entity set of x is the set of members x accesses. An entity that accesses
// nothing (fields, leaf methods) is represented by itself, so that
// d(x,y) = 1 - |S(x) ∩ S(y)| / |S(x) ∪ S(y)| stays in [0,1] for every pair and
// two methods touching exactly the same members are at distance 0.
func BuildDistanceMatrix(model *ClassModel) *DistanceMatrix {
	entities := model.Movable()
	n := len(entities)

	sets := make([]map[int]struct{}, n)
	for i, e := range entities {
		sets[i] = entitySet(e)
	}

	m := &DistanceMatrix{
		entities: entities,
		values:   make([]float64, n*(n-1)/2),
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.values[m.offset(i, j)] = jaccardDistance(sets[i], sets[j])
		}
	}
	return m
}

func entitySet(e *Entity) map[int]struct{} {
	if len(e.accesses) == 0 {
		return map[int]struct{}{e.ID: {}}
	}
	set := make(map[int]struct{}, len(e.accesses))
	for _, id := range e.accesses {
		set[id] = struct{}{}
	}
	return set
}

func jaccardDistance(a, b map[int]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for id := range a {
		if _, ok := b[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return 1 - float64(inter)/float64(union)
}

// offset maps a pair i < j to its slot in the condensed triangle
func (m *DistanceMatrix) offset(i, j int) int {
	n := len(m.entities)
	return i*n - i*(i+1)/2 + (j - i - 1)
}

// Size returns the number of clustered entities
func (m *DistanceMatrix) Size() int { return len(m.entities) }

// Entities returns the clustered entities; matrix index i is Entities()[i]
func (m *DistanceMatrix) Entities() []*Entity { return m.entities }

// Entity returns the entity at matrix index i
func (m *DistanceMatrix) Entity(i int) *Entity { return m.entities[i] }

// Distance returns d(i, j) for matrix indices
func (m *DistanceMatrix) Distance(i, j int) float64 {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return m.values[m.offset(i, j)]
}

// StoredValues returns the number of distances held, n(n-1)/2
func (m *DistanceMatrix) StoredValues() int { return len(m.values) }

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
