package analyzer

import (
	"testing"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassModelExtractor(t *testing.T) {
	x := NewClassModelExtractor(nil)
	require.NotNil(t, x)
	assert.True(t, x.options.PinOverridingMethods)
	assert.True(t, x.options.SkipSerializable)

	custom := NewClassModelExtractor(&ModelOptions{})
	assert.False(t, custom.options.PinOverridingMethods)
}

func TestClassModelExtractor_Entities(t *testing.T) {
	c := class("Order",
		field("total"),
		field("items"),
		&source.Member{Name: "Order", Kind: source.MemberConstructor, Accesses: []source.Access{{Target: "items", Kind: source.AccessWrite}}},
		method("addItem", "items", "total", "total", "addItem"),
		&source.Member{Name: "toString", Kind: source.MemberMethod, Overrides: true},
		&source.Member{Name: "describe", Kind: source.MemberMethod, Accesses: []source.Access{{Target: "describe", Kind: source.AccessCall, Super: true}}},
		method("print", "total", "format"),
	)
	c.Members[6].Accesses = append(c.Members[6].Accesses, source.Access{Target: "format", Class: "Printer", Kind: source.AccessCall})

	model, err := NewClassModelExtractor(nil).Extract(c)
	require.NoError(t, err)

	assert.Equal(t, 7, model.Len())
	assert.Equal(t, 3, model.PinnedCount())
	assert.Equal(t, []string{"total", "items", "addItem", "print"}, names(model.Movable()))

	constructor, _ := model.Lookup("Order")
	assert.True(t, constructor.Pinned)
	assert.True(t, constructor.Constructor)
	assert.Equal(t, PinConstructor, constructor.PinReason)

	toString, _ := model.Lookup("toString")
	assert.Equal(t, PinOverride, toString.PinReason)

	describe, _ := model.Lookup("describe")
	assert.Equal(t, PinInheritedReach, describe.PinReason)

	// duplicates and self calls dropped, sorted by declaration index
	addItem, _ := model.Lookup("addItem")
	assert.Equal(t, []int{0, 1}, addItem.Accesses())

	// unknown targets and other classes dropped
	printer, _ := model.Lookup("print")
	assert.Equal(t, []int{0}, printer.Accesses())

	assert.Equal(t, c.Fingerprint(), model.Fingerprint)
}

func TestClassModelExtractor_OverridesNotPinnedWhenDisabled(t *testing.T) {
	c := class("Shape",
		field("w"),
		&source.Member{Name: "area", Kind: source.MemberMethod, Overrides: true, Accesses: []source.Access{{Target: "w"}}},
	)
	model, err := NewClassModelExtractor(&ModelOptions{PinOverridingMethods: false}).Extract(c)
	require.NoError(t, err)
	area, _ := model.Lookup("area")
	assert.False(t, area.Pinned)
}

func TestClassModelExtractor_Unmovable(t *testing.T) {
	tests := []struct {
		name    string
		class   *source.Class
		options *ModelOptions
	}{
		{
			name:  "interface",
			class: &source.Class{Name: "Shape", Kind: source.ClassKindInterface, Members: []*source.Member{method("a"), method("b")}},
		},
		{
			name:  "enum",
			class: &source.Class{Name: "Color", Kind: source.ClassKindEnum, Members: []*source.Member{field("RED"), field("GREEN")}},
		},
		{
			name: "serializable",
			class: &source.Class{Name: "Dto", Serializable: true, Members: []*source.Member{
				field("a"), method("getA", "a"),
			}},
		},
		{
			name:  "single member",
			class: class("Tiny", field("a")),
		},
		{
			name: "only constructor and one field",
			class: class("Holder", field("a"),
				&source.Member{Name: "Holder", Kind: source.MemberConstructor}),
		},
		{
			name: "only static members",
			class: class("Util",
				&source.Member{Name: "CACHE", Kind: source.MemberField, Static: true},
				&source.Member{Name: "get", Kind: source.MemberMethod, Static: true}),
		},
		{
			name:  "nil class",
			class: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassModelExtractor(tt.options).Extract(tt.class)
			assert.ErrorIs(t, err, domain.ErrUnmovableModel)
		})
	}
}

func TestClassModelExtractor_SerializableAllowedWhenNotSkipped(t *testing.T) {
	c := &source.Class{Name: "Dto", Serializable: true, Members: []*source.Member{field("a"), method("getA", "a")}}
	_, err := NewClassModelExtractor(&ModelOptions{SkipSerializable: false}).Extract(c)
	assert.NoError(t, err)
}

func TestClassModelExtractor_StaticMembersAreMovable(t *testing.T) {
	c := class("Mixed",
		&source.Member{Name: "COUNT", Kind: source.MemberField, Static: true},
		field("value"),
		method("get", "value"),
	)
	model, err := NewClassModelExtractor(nil).Extract(c)
	require.NoError(t, err)
	assert.Len(t, model.Movable(), 3)
}
