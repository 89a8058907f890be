package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
)

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"TestProduct": true, "TestProduct2": true}
	isTaken := func(name string) bool { return taken[name] }

	name, err := uniqueName("Free", 10, isTaken)
	require.NoError(t, err)
	assert.Equal(t, "Free", name)

	name, err = uniqueName("TestProduct", 10, isTaken)
	require.NoError(t, err)
	assert.Equal(t, "TestProduct3", name)

	_, err = uniqueName("TestProduct", 2, isTaken)
	assert.ErrorIs(t, err, domain.ErrNamingConflict)

	// non-positive attempts still tries the base name
	name, err = uniqueName("Free", 0, isTaken)
	require.NoError(t, err)
	assert.Equal(t, "Free", name)
}

func TestLowerCamel(t *testing.T) {
	tests := map[string]string{
		"TestProduct":  "testProduct",
		"HTTPClient":   "httpClient",
		"URL":          "url",
		"already":      "already",
		"A":            "a",
		"":             "",
		"ShopProduct2": "shopProduct2",
	}
	for in, want := range tests {
		assert.Equal(t, want, lowerCamel(in), in)
	}
}

func TestReferencedType(t *testing.T) {
	assert.Equal(t, "List", referencedType("java.util.List<Foo>"))
	assert.Equal(t, "Foo", referencedType("Foo[]"))
	assert.Equal(t, "Foo", referencedType(" Foo "))
	assert.Equal(t, "", referencedType(""))
}

func TestCycles(t *testing.T) {
	classes := []*source.Class{
		{Name: "A", Members: []*source.Member{{Name: "b", Kind: source.MemberField, Type: "B"}}},
		{Name: "B", Members: []*source.Member{{Name: "a", Kind: source.MemberField, Type: "A"}}},
		{Name: "C", Members: []*source.Member{{Name: "a", Kind: source.MemberField, Type: "A"}}},
	}
	cycles, err := Cycles(classes)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, cycles)

}

func TestVerifyNoNewCycles(t *testing.T) {
	classes := []*source.Class{
		{Name: "A", Members: []*source.Member{{Name: "b", Kind: source.MemberField, Type: "B"}}},
		{Name: "B", Members: []*source.Member{{Name: "a", Kind: source.MemberField, Type: "A"}}},
	}

	tests := []struct {
		name    string
		before  [][]string
		created string
		source  string
		wantErr bool
	}{
		{"cycle already present", [][]string{{"A", "B"}}, "X", "A", false},
		{"created class reads as source", [][]string{{"A", "C"}}, "B", "C", false},
		{"no cycle before", nil, "X", "A", true},
		{"collapses to a self reference", nil, "B", "A", true},
		{"unrelated earlier cycle", [][]string{{"C", "D"}}, "X", "A", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyNoNewCycles(tt.before, classes, tt.created, tt.source)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrReferenceCycle)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRefactoringVariants(t *testing.T) {
	variants := []struct {
		r     Refactoring
		kind  Kind
		class string
	}{
		{ExtractClass{}, KindExtractClass, ""},
		{MoveMethod{Class: "A"}, KindMoveMethod, "A"},
		{ExtractMethod{Class: "B"}, KindExtractMethod, "B"},
		{ReplaceTypeCheck{Class: "C"}, KindReplaceTypeCheck, "C"},
	}
	for _, v := range variants {
		assert.Equal(t, v.kind, v.r.Kind())
		assert.Equal(t, v.class, v.r.SourceClass())
	}
}
