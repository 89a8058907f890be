package analyzer

import (
	"math"
	"sort"
)

// ExtractClassCandidateRefactoring is one ranked Extract Class opportunity
type ExtractClassCandidateRefactoring struct {
	SourceClass       string
	SourceFile        string
	SourceFingerprint string
	TargetClass       string

	// Extracted entities in declaration order
	Entities []*Entity

	Score         float64
	CohesionGain  float64
	IntraDistance float64
	CrossDistance float64
	Coupling      float64

	ExtractedFieldsCount  int
	ExtractedMethodsCount int

	// Retained members accessed by the extracted side
	SourceAccessedMembers int
	// Extracted members accessed by the retained side
	TargetAccessedMembers int

	group *ExtractClassCandidateGroup
}

// Group returns the group that owns the candidate
func (c *ExtractClassCandidateRefactoring) Group() *ExtractClassCandidateGroup { return c.group }

// ExtractedNames returns the names of the extracted members in declaration order
func (c *ExtractClassCandidateRefactoring) ExtractedNames() []string {
	names := make([]string, len(c.Entities))
	for i, e := range c.Entities {
		names[i] = e.Name
	}
	return names
}

// ExtractedFields returns the names of the extracted fields
func (c *ExtractClassCandidateRefactoring) ExtractedFields() []string {
	var names []string
	for _, e := range c.Entities {
		if e.IsField() {
			names = append(names, e.Name)
		}
	}
	return names
}

// ExtractedMethods returns the names of the extracted methods
func (c *ExtractClassCandidateRefactoring) ExtractedMethods() []string {
	var names []string
	for _, e := range c.Entities {
		if e.IsMethod() {
			names = append(names, e.Name)
		}
	}
	return names
}

// ExtractClassCandidateGroup holds the candidates for one source class, best first
type ExtractClassCandidateGroup struct {
	SourceClass   string
	FilePath      string
	StartLine     int
	EndLine       int
	Fingerprint   string
	TotalMembers  int
	PinnedMembers int
	Candidates    []*ExtractClassCandidateRefactoring
}

// Best returns the top-ranked candidate
func (g *ExtractClassCandidateGroup) Best() *ExtractClassCandidateRefactoring {
	if g == nil || len(g.Candidates) == 0 {
		return nil
	}
	return g.Candidates[0]
}

// Candidate returns the candidate with the given 1-based rank
func (g *ExtractClassCandidateGroup) Candidate(rank int) (*ExtractClassCandidateRefactoring, bool) {
	if g == nil || rank < 1 || rank > len(g.Candidates) {
		return nil, false
	}
	return g.Candidates[rank-1], true
}

// RankingOptions are the thresholds applied by the CandidateRanker
type RankingOptions struct {
	MinCohesionGain       float64
	MinScore              float64
	MaxCandidatesPerClass int
	TargetSuffix          string
}

// CandidateRanker scores bipartitions and orders them into a candidate group
type CandidateRanker struct {
	options *RankingOptions
}

// NewCandidateRanker creates a ranker
func NewCandidateRanker(options *RankingOptions) *CandidateRanker {
	if options == nil {
		options = &RankingOptions{}
	}
	return &CandidateRanker{options: options}
}

// Rank scores every split and returns the group, or nil when nothing qualifies.
// The resulting order is total: score desc, then extracted size desc, then the
// sorted declaration indices of the extracted side.
func (r *CandidateRanker) Rank(model *ClassModel, matrix *DistanceMatrix, splits []Bipartition) *ExtractClassCandidateGroup {
	group := &ExtractClassCandidateGroup{
		SourceClass:   model.ClassName,
		FilePath:      model.FilePath,
		StartLine:     model.StartLine,
		EndLine:       model.EndLine,
		Fingerprint:   model.Fingerprint,
		TotalMembers:  model.Len(),
		PinnedMembers: model.PinnedCount(),
	}

	for _, split := range splits {
		c := r.score(model, matrix, split)
		if c == nil {
			continue
		}
		c.group = group
		group.Candidates = append(group.Candidates, c)
	}
	if len(group.Candidates) == 0 {
		return nil
	}

	sort.SliceStable(group.Candidates, func(i, j int) bool {
		return candidateLess(group.Candidates[i], group.Candidates[j])
	})

	if limit := r.options.MaxCandidatesPerClass; limit > 0 && len(group.Candidates) > limit {
		group.Candidates = group.Candidates[:limit]
	}
	return group
}

func (r *CandidateRanker) score(model *ClassModel, matrix *DistanceMatrix, split Bipartition) *ExtractClassCandidateRefactoring {
	intra := meanPairwise(matrix, split.Extracted)
	cross := meanCross(matrix, split.Extracted, split.Retained)
	gain := cross - intra
	if gain < r.options.MinCohesionGain && !almostEqual(gain, r.options.MinCohesionGain) {
		return nil
	}

	extracted := make(map[int]bool, len(split.Extracted))
	entities := make([]*Entity, 0, len(split.Extracted))
	for _, idx := range split.Extracted {
		e := matrix.Entity(idx)
		extracted[e.ID] = true
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })

	// the source class must keep an instance member besides its constructors
	retainedInstance := 0
	for _, e := range model.Entities() {
		if !extracted[e.ID] && !e.Static && !e.Constructor {
			retainedInstance++
		}
	}
	if retainedInstance == 0 {
		return nil
	}

	touching, crossing := 0, 0
	sourceAccessed := make(map[int]bool)
	targetAccessed := make(map[int]bool)
	for _, e := range model.Entities() {
		for _, target := range e.accesses {
			from, to := extracted[e.ID], extracted[target]
			if !from && !to {
				continue
			}
			touching++
			if from == to {
				continue
			}
			crossing++
			if from {
				sourceAccessed[target] = true
			} else {
				targetAccessed[target] = true
			}
		}
	}
	coupling := 0.0
	if touching > 0 {
		coupling = float64(crossing) / float64(touching)
	}

	score := gain * (1 - coupling)
	if score < r.options.MinScore && !almostEqual(score, r.options.MinScore) {
		return nil
	}

	c := &ExtractClassCandidateRefactoring{
		SourceClass:           model.ClassName,
		SourceFile:            model.FilePath,
		SourceFingerprint:     model.Fingerprint,
		TargetClass:           model.ClassName + r.options.TargetSuffix,
		Entities:              entities,
		Score:                 score,
		CohesionGain:          gain,
		IntraDistance:         intra,
		CrossDistance:         cross,
		Coupling:              coupling,
		SourceAccessedMembers: len(sourceAccessed),
		TargetAccessedMembers: len(targetAccessed),
	}
	for _, e := range entities {
		if e.IsField() {
			c.ExtractedFieldsCount++
		} else {
			c.ExtractedMethodsCount++
		}
	}
	return c
}

// scoreKey quantizes a score so that near-equal scores compare as equal
// while keeping the comparison transitive
func scoreKey(score float64) float64 {
	return math.Round(score * 1e9)
}

func candidateLess(a, b *ExtractClassCandidateRefactoring) bool {
	if ka, kb := scoreKey(a.Score), scoreKey(b.Score); ka != kb {
		return ka > kb
	}
	if len(a.Entities) != len(b.Entities) {
		return len(a.Entities) > len(b.Entities)
	}
	for i := range a.Entities {
		if a.Entities[i].ID != b.Entities[i].ID {
			return a.Entities[i].ID < b.Entities[i].ID
		}
	}
	return false
}

func meanPairwise(m *DistanceMatrix, idx []int) float64 {
	pairs := 0
	sum := 0.0
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			sum += m.Distance(idx[i], idx[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func meanCross(m *DistanceMatrix, a, b []int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range a {
		for _, j := range b {
			sum += m.Distance(i, j)
		}
	}
	return sum / float64(len(a)*len(b))
}
