package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/godscn/internal/source"
)

const shopJava = `package com.example.shop;

import java.util.List;

public class Shop extends Base implements Comparable<Shop> {
    private String address;
    private String carrier;
    private int count, total;
    private static int instances;
    private Inventory inventory;

    public Shop(String address) {
        this.address = address;
        instances++;
    }

    public void ship(int items) {
        int local = items;
        carrier = "ups";
        count += local;
        track();
    }

    public String track() {
        return address + carrier;
    }

    @Override
    public String toString() {
        return super.toString() + total;
    }

    public void restock() {
        inventory.refill(count);
        Shop.instances = 0;
        helper(this.total);
    }

    private static void helper(int v) {
    }
}
`

func parseJava(t *testing.T, content string) []*source.Class {
	t.Helper()
	classes, err := NewJavaFrontend().ParseClasses(context.Background(), "Shop.java", []byte(content))
	require.NoError(t, err)
	return classes
}

func memberNames(c *source.Class) []string {
	names := make([]string, len(c.Members))
	for i, m := range c.Members {
		names[i] = m.Name
	}
	return names
}

func TestJavaFrontend_ClassHeader(t *testing.T) {
	classes := parseJava(t, shopJava)
	require.Len(t, classes, 1)

	shop := classes[0]
	assert.Equal(t, "Shop", shop.Name)
	assert.Equal(t, "com.example.shop", shop.Package)
	assert.Equal(t, "Shop.java", shop.File)
	assert.Equal(t, source.ClassKindClass, shop.Kind)
	assert.Equal(t, "Base", shop.Superclass)
	assert.Equal(t, []string{"Comparable<Shop>"}, shop.Interfaces)
	assert.False(t, shop.Serializable)
	assert.Equal(t, 5, shop.StartLine)
	require.NoError(t, shop.Validate())
}

func TestJavaFrontend_Members(t *testing.T) {
	shop := parseJava(t, shopJava)[0]

	assert.Equal(t, []string{
		"address", "carrier", "count", "total", "instances", "inventory",
		"Shop", "ship", "track", "toString", "restock", "helper",
	}, memberNames(shop))

	count := shop.Member("count")
	assert.Equal(t, source.MemberField, count.Kind)
	assert.Equal(t, "int", count.Type)
	assert.True(t, shop.Member("instances").Static)
	assert.Equal(t, source.MemberConstructor, shop.Member("Shop").Kind)
	assert.True(t, shop.Member("toString").Overrides)

	helper := shop.Member("helper")
	assert.True(t, helper.Static)
	assert.Equal(t, []string{"int v"}, helper.Parameters)
	assert.Empty(t, helper.Accesses)
	assert.Equal(t, "void", helper.Type)
}

func TestJavaFrontend_Accesses(t *testing.T) {
	shop := parseJava(t, shopJava)[0]

	tests := []struct {
		member string
		want   []source.Access
	}{
		{"Shop", []source.Access{
			{Target: "address", Kind: source.AccessWrite},
			{Target: "instances", Kind: source.AccessWrite},
		}},
		{"ship", []source.Access{
			{Target: "carrier", Kind: source.AccessWrite},
			{Target: "count", Kind: source.AccessWrite},
			{Target: "track", Kind: source.AccessCall},
		}},
		{"track", []source.Access{
			{Target: "address", Kind: source.AccessRead},
			{Target: "carrier", Kind: source.AccessRead},
		}},
		{"toString", []source.Access{
			{Target: "toString", Kind: source.AccessCall, Super: true},
			{Target: "total", Kind: source.AccessRead},
		}},
		{"restock", []source.Access{
			{Target: "inventory", Kind: source.AccessRead},
			{Target: "refill", Kind: source.AccessCall, Class: "Inventory", Via: "inventory"},
			{Target: "count", Kind: source.AccessRead},
			{Target: "instances", Kind: source.AccessWrite, Class: "Shop"},
			{Target: "helper", Kind: source.AccessCall},
			{Target: "total", Kind: source.AccessRead},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			m := shop.Member(tt.member)
			require.NotNil(t, m)
			assert.ElementsMatch(t, tt.want, m.Accesses)
		})
	}
}

func TestJavaFrontend_LocalsShadowFields(t *testing.T) {
	classes := parseJava(t, `class Counter {
    int value;
    int step;

    void add(int value) {
        int step = 2;
        this.value += step * value;
    }
}`)
	add := classes[0].Member("add")
	require.NotNil(t, add)
	assert.ElementsMatch(t, []source.Access{
		{Target: "value", Kind: source.AccessWrite},
	}, add.Accesses)
}

func TestJavaFrontend_FieldAndMethodWithSameName(t *testing.T) {
	classes := parseJava(t, `class Box {
    int size;

    int size() {
        return size;
    }

    boolean isEmpty() {
        return size() == 0;
    }
}`)
	box := classes[0]
	require.NoError(t, box.Validate())
	assert.Equal(t, []string{"size", "size()", "isEmpty"}, memberNames(box))
	assert.Equal(t, []source.Access{{Target: "size()", Kind: source.AccessCall}}, box.Member("isEmpty").Accesses)
}

func TestJavaFrontend_OverloadsShareAMember(t *testing.T) {
	classes := parseJava(t, `class Printer {
    String prefix;
    String suffix;

    void print(String s) {
        System.out.println(prefix + s);
    }

    void print(int i) {
        System.out.println(suffix + i);
    }
}`)
	printer := classes[0]
	require.NoError(t, printer.Validate())
	assert.Equal(t, []string{"prefix", "suffix", "print"}, memberNames(printer))

	var targets []string
	for _, a := range printer.Member("print").Accesses {
		if a.IsLocal("Printer") {
			targets = append(targets, a.Target)
		}
	}
	assert.ElementsMatch(t, []string{"prefix", "suffix"}, targets)
}

func TestJavaFrontend_KindsAndSerializable(t *testing.T) {
	classes := parseJava(t, `
interface Shape {
    int SIDES = 0;
    double area();
}

enum Color {
    RED, GREEN;

    private int shade;

    int shade() { return shade; }
}

class Point implements java.io.Serializable {
    int x;
}
`)
	require.Len(t, classes, 3)

	shape := classes[0]
	assert.Equal(t, source.ClassKindInterface, shape.Kind)
	assert.True(t, shape.Member("SIDES").Static)
	assert.True(t, shape.Member("area").Abstract)

	color := classes[1]
	assert.Equal(t, source.ClassKindEnum, color.Kind)
	assert.Equal(t, []string{"shade", "shade()"}, memberNames(color))

	point := classes[2]
	assert.True(t, point.Serializable)
}

func TestJavaFrontend_SyntaxError(t *testing.T) {
	_, err := NewJavaFrontend().ParseClasses(context.Background(), "Broken.java", []byte("class {"))
	assert.Error(t, err)
}
