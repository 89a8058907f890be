package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/godscn/internal/source"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{".java", ".json", ".py", ".yaml", ".yml"}, r.Extensions())

	f, ok := r.For("src/Shop.JAVA")
	require.True(t, ok)
	assert.Equal(t, "java", f.Name())

	f, ok = r.For("models/shop.yml")
	require.True(t, ok)
	assert.Equal(t, "model", f.Name())

	assert.True(t, r.Supports("app/order.py"))
	assert.False(t, r.Supports("README.md"))
	assert.False(t, r.Supports("Makefile"))
}

func TestRegistry_ParseFile(t *testing.T) {
	r := DefaultRegistry()
	ctx := context.Background()

	classes, err := r.ParseFile(ctx, "Shop.java", []byte(shopJava))
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Shop", classes[0].Name)

	_, err = r.ParseFile(ctx, "notes.txt", []byte("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no frontend")

	_, err = r.ParseFile(ctx, "Broken.java", []byte("class {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "java frontend")
}

func TestModelFrontend(t *testing.T) {
	data, err := source.EncodeModel([]*source.Class{{
		Name: "Invoice",
		Kind: source.ClassKindClass,
		Members: []*source.Member{
			{Name: "total", Kind: source.MemberField},
			{Name: "sum", Kind: source.MemberMethod, Accesses: []source.Access{{Target: "total", Kind: source.AccessRead}}},
		},
	}}, "json")
	require.NoError(t, err)

	classes, err := NewModelFrontend().ParseClasses(context.Background(), "invoice.json", data)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "invoice.json", classes[0].File)
	assert.Len(t, classes[0].Members, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewModelFrontend().ParseClasses(ctx, "invoice.json", data)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_LaterFrontendWins(t *testing.T) {
	r := NewRegistry(NewModelFrontend(), stubFrontend{})
	f, ok := r.For("a.json")
	require.True(t, ok)
	assert.Equal(t, "stub", f.Name())
}

type stubFrontend struct{}

func (stubFrontend) Name() string         { return "stub" }
func (stubFrontend) Extensions() []string { return []string{".JSON"} }
func (stubFrontend) ParseClasses(context.Context, string, []byte) ([]*source.Class, error) {
	return nil, nil
}

func TestMemberTable_MergesRedeclarations(t *testing.T) {
	table := newMemberTable()
	assert.True(t, table.add(&source.Member{Name: "print", Kind: source.MemberMethod,
		Accesses: []source.Access{{Target: "prefix", Kind: source.AccessRead}}}))
	assert.False(t, table.add(&source.Member{Name: "print", Kind: source.MemberMethod,
		Accesses: []source.Access{{Target: "suffix", Kind: source.AccessRead}}}))

	require.Len(t, table.members, 1)
	assert.True(t, table.has("print"))
	assert.False(t, table.has("prefix"))
	assert.Len(t, table.get("print").Accesses, 2)
}

func TestDedupeAccesses(t *testing.T) {
	in := []source.Access{
		{Target: "a", Kind: source.AccessRead},
		{Target: "b", Kind: source.AccessWrite},
		{Target: "a", Kind: source.AccessRead},
		{Target: "a", Kind: source.AccessWrite},
	}
	assert.Equal(t, []source.Access{
		{Target: "a", Kind: source.AccessRead},
		{Target: "b", Kind: source.AccessWrite},
		{Target: "a", Kind: source.AccessWrite},
	}, dedupeAccesses(in))
	assert.Nil(t, dedupeAccesses(nil))
}

func TestSimpleType(t *testing.T) {
	assert.Equal(t, "List", simpleType("java.util.List<Foo>"))
	assert.Equal(t, "Foo", simpleType("Foo[]"))
	assert.Equal(t, "Optional", simpleType("Optional[Foo]"))
	assert.Equal(t, "", simpleType(""))
}

func TestParser_UnsupportedLanguage(t *testing.T) {
	_, err := New(Language("cobol"))
	assert.Error(t, err)

	p, err := New(LangPython)
	require.NoError(t, err)
	assert.Equal(t, LangPython, p.Language())
	assert.Len(t, FindNodes(mustParse(t, p, "class A:\n    pass\n"), "class_definition"), 1)
}

func mustParse(t *testing.T, p *Parser, src string) *sitter.Node {
	t.Helper()
	result, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return result.RootNode
}
