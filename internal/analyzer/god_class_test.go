package analyzer

import (
	"context"
	"testing"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProject []*source.Class

func (p staticProject) Classes() []*source.Class { return p }

func TestNewGodClassDetector(t *testing.T) {
	d := NewGodClassDetector(nil)
	require.NotNil(t, d)
	assert.Equal(t, domain.DefaultTargetSuffix, d.Options().TargetSuffix)
	assert.Equal(t, domain.DefaultMinCohesionGain, d.Options().MinCohesionGain)

	custom := NewGodClassDetector(&GodClassOptions{TargetSuffix: "Part"})
	assert.Equal(t, "Part", custom.Options().TargetSuffix)
}

func TestGodClassDetector_TwoDisjointGroups(t *testing.T) {
	group, err := NewGodClassDetector(nil).DetectClass(context.Background(), twoGroupClass())
	require.NoError(t, err)
	require.NotNil(t, group)

	high := 0
	for _, c := range group.Candidates {
		if c.Score >= 0.5 {
			high++
		}
	}
	assert.Equal(t, 1, high, "exactly one high-score candidate")

	best := group.Best()
	assert.Equal(t, []string{"mB1", "mB2", "mB3"}, best.ExtractedMethods())
	assert.Equal(t, []string{"f3", "f4"}, best.ExtractedFields())
	assert.Equal(t, "TestProduct", best.TargetClass)
	assert.Equal(t, "Test", group.SourceClass)
	assert.Equal(t, twoGroupClass().Fingerprint(), best.SourceFingerprint)
}

func TestGodClassDetector_UniformClass(t *testing.T) {
	group, err := NewGodClassDetector(nil).DetectClass(context.Background(), uniformClass())
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestGodClassDetector_IsolatedMethod(t *testing.T) {
	c := twoGroupClass()
	c.Members = append(c.Members, method("unrelated"))

	group, err := NewGodClassDetector(nil).DetectClass(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, group)

	for _, cand := range group.Candidates {
		assert.GreaterOrEqual(t, len(cand.Entities), 2)
		assert.NotContains(t, cand.ExtractedNames(), "unrelated")
	}
}

func TestGodClassDetector_TooFewMembers(t *testing.T) {
	c := class("Tiny", field("a"), ctor("Tiny", "a"))

	_, err := NewGodClassDetector(nil).DetectClass(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrUnmovableModel)

	groups, err := NewGodClassDetector(nil).Detect(context.Background(), staticProject{c})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGodClassDetector_PinnedMembersNeverExtracted(t *testing.T) {
	c := twoGroupClass()
	c.Members = append(c.Members,
		ctor("Test", "f3", "f4"),
		&source.Member{Name: "hashCode", Kind: source.MemberMethod, Overrides: true,
			Accesses: []source.Access{{Target: "f3"}, {Target: "f4"}}},
	)

	group, err := NewGodClassDetector(nil).DetectClass(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, 2, group.PinnedMembers)
	for _, cand := range group.Candidates {
		assert.NotContains(t, cand.ExtractedNames(), "Test")
		assert.NotContains(t, cand.ExtractedNames(), "hashCode")
	}
	// pinned accessors of f3/f4 make that split coupled
	assert.Greater(t, group.Best().Coupling, 0.0)
}

func TestGodClassDetector_Detect(t *testing.T) {
	project := staticProject{
		twoGroupClass(),
		{Name: "Shape", Kind: source.ClassKindInterface, Members: []*source.Member{method("area"), method("perimeter")}},
		uniformClass(),
	}

	groups, err := NewGodClassDetector(nil).Detect(context.Background(), project)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Test", groups[0].SourceClass)
}

func TestGodClassDetector_Deterministic(t *testing.T) {
	d := NewGodClassDetector(nil)
	first, err := d.DetectClass(context.Background(), twoGroupClass())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := d.DetectClass(context.Background(), twoGroupClass())
		require.NoError(t, err)
		require.Len(t, again.Candidates, len(first.Candidates))
		for j := range first.Candidates {
			assert.Equal(t, first.Candidates[j].ExtractedNames(), again.Candidates[j].ExtractedNames())
			assert.Equal(t, first.Candidates[j].Score, again.Candidates[j].Score)
		}
	}
}

func TestGodClassDetector_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	groups, err := NewGodClassDetector(nil).Detect(ctx, staticProject{twoGroupClass()})
	assert.Nil(t, groups)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.True(t, IsCancelled(ctx))
	assert.False(t, IsCancelled(context.Background()))
}
