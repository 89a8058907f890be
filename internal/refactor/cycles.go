package refactor

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
)

// ReferenceGraph builds the class graph of mandatory references: an edge A -> B
// for every field of A whose declared type is class B.
func ReferenceGraph(classes []*source.Class) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		if err := g.AddVertex(c.Name); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("add class %s: %w", c.Name, err)
		}
		known[c.Name] = true
	}
	for _, c := range classes {
		for _, m := range c.Members {
			if !m.IsField() {
				continue
			}
			ref := referencedType(m.Type)
			if ref == "" || ref == c.Name || !known[ref] {
				continue
			}
			if err := g.AddEdge(c.Name, ref); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("add reference %s -> %s: %w", c.Name, ref, err)
			}
		}
	}
	return g, nil
}

// Cycles returns the strongly connected components with more than one class,
// each sorted by name
func Cycles(classes []*source.Class) ([][]string, error) {
	g, err := ReferenceGraph(classes)
	if err != nil {
		return nil, err
	}
	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, err
	}
	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		sort.Strings(scc)
		cycles = append(cycles, scc)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles, nil
}

// verifyNoNewCycles fails on a cycle of classes that was not present in
// before. The created class reads as source, so a cycle that already ran
// through source and now also passes through the created class is not new.
// A cycle that collapses to source alone is new: it used to be a self
// reference.
func verifyNoNewCycles(before [][]string, classes []*source.Class, created, sourceClass string) error {
	after, err := Cycles(classes)
	if err != nil {
		return fmt.Errorf("verify references: %w", err)
	}
	for _, cycle := range after {
		members := make(map[string]bool, len(cycle))
		for _, name := range cycle {
			if name == created {
				name = sourceClass
			}
			members[name] = true
		}
		if len(members) < 2 || !coveredBy(members, before) {
			return domain.NewReferenceCycleError(created, cycle)
		}
	}
	return nil
}

// coveredBy reports whether one of cycles contains every class in members
func coveredBy(members map[string]bool, cycles [][]string) bool {
	for _, cycle := range cycles {
		in := make(map[string]bool, len(cycle))
		for _, name := range cycle {
			in[name] = true
		}
		all := true
		for name := range members {
			if !in[name] {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// referencedType strips generic arguments, array brackets and qualifiers
// from a declared type: java.util.List<Foo> -> List, Foo[] -> Foo.
func referencedType(t string) string {
	t = strings.TrimSpace(t)
	if i := strings.IndexAny(t, "<["); i >= 0 {
		t = t[:i]
	}
	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}
	return strings.TrimSpace(t)
}
