package analyzer

import (
	"github.com/ludo-technologies/godscn/internal/source"
)

func field(name string) *source.Member {
	return &source.Member{Name: name, Kind: source.MemberField, Type: "int"}
}

func method(name string, accesses ...string) *source.Member {
	m := &source.Member{Name: name, Kind: source.MemberMethod}
	for _, a := range accesses {
		m.Accesses = append(m.Accesses, source.Access{Target: a, Kind: source.AccessRead})
	}
	return m
}

func class(name string, members ...*source.Member) *source.Class {
	return &source.Class{Name: name, Kind: source.ClassKindClass, File: name + ".java", Members: members}
}

// twoGroupClass has two disjoint method groups over disjoint field pairs
func twoGroupClass() *source.Class {
	return class("Test",
		field("f1"), field("f2"), field("f3"), field("f4"),
		method("mA1", "f1", "f2"), method("mA2", "f1", "f2"), method("mA3", "f1", "f2"),
		method("mB1", "f3", "f4"), method("mB2", "f3", "f4"), method("mB3", "f3", "f4"),
	)
}

// uniformClass has every method accessing every field
func uniformClass() *source.Class {
	return class("Uniform",
		field("f1"), field("f2"), field("f3"),
		method("m1", "f1", "f2", "f3"), method("m2", "f1", "f2", "f3"),
		method("m3", "f1", "f2", "f3"), method("m4", "f1", "f2", "f3"),
	)
}

func mustModel(c *source.Class) *ClassModel {
	model, err := NewClassModelExtractor(nil).Extract(c)
	if err != nil {
		panic(err)
	}
	return model
}

func names(entities []*Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name
	}
	return out
}
