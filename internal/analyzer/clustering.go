package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ClusterState is the lifecycle state of a ClusteringEngine
type ClusterState int

const (
	ClusterInitialized ClusterState = iota
	ClusterMerging
	ClusterComplete
)

func (s ClusterState) String() string {
	switch s {
	case ClusterInitialized:
		return "initialized"
	case ClusterMerging:
		return "merging"
	case ClusterComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ClusterNode is a dendrogram node. Leaves have Left == Right == -1.
type ClusterNode struct {
	ID      int
	Members []int // matrix indices, sorted
	Left    int
	Right   int
	Height  float64
}

// IsLeaf reports whether the node is a single entity
func (c ClusterNode) IsLeaf() bool { return c.Left < 0 }

// Dendrogram is the merge tree of an average-linkage clustering, stored in an
// arena: leaves occupy 0..n-1, merge k creates node n+k.
type Dendrogram struct {
	nodes  []ClusterNode
	root   int
	leaves int
}

// Root returns the root node ID
func (d *Dendrogram) Root() int { return d.root }

// Node returns the node with the given ID
func (d *Dendrogram) Node(id int) ClusterNode { return d.nodes[id] }

// Nodes returns all nodes in creation order
func (d *Dendrogram) Nodes() []ClusterNode { return d.nodes }

// Leaves returns the number of clustered entities
func (d *Dendrogram) Leaves() int { return d.leaves }

// Bipartition splits the clustered entities into an extracted and a retained side
type Bipartition struct {
	Extracted []int // matrix indices, sorted
	Retained  []int // matrix indices, sorted
	Node      int
	Height    float64
}

// Key identifies the partition independently of the node that produced it
func (b Bipartition) Key() string {
	parts := make([]string, len(b.Extracted))
	for i, idx := range b.Extracted {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// SplitPolicy decides whether a bipartition may be emitted
type SplitPolicy func(extracted, retained []int) bool

// Bipartitions derives one (C, rest) split from every non-root node. The
// smaller side is extracted; on equal sizes the side holding matrix index 0
// stays in the source class. Rejected and duplicate splits are dropped.
func (d *Dendrogram) Bipartitions(accept SplitPolicy) []Bipartition {
	var splits []Bipartition
	seen := make(map[string]bool)
	for _, node := range d.nodes {
		if node.ID == d.root {
			continue
		}
		inside := node.Members
		outside := complement(inside, d.leaves)
		if len(outside) == 0 {
			continue
		}

		extracted, retained := inside, outside
		switch {
		case len(outside) < len(inside):
			extracted, retained = outside, inside
		case len(outside) == len(inside) && inside[0] == 0:
			extracted, retained = outside, inside
		}

		if accept != nil && !accept(extracted, retained) {
			continue
		}
		split := Bipartition{
			Extracted: append([]int(nil), extracted...),
			Retained:  append([]int(nil), retained...),
			Node:      node.ID,
			Height:    node.Height,
		}
		key := split.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		splits = append(splits, split)
	}
	return splits
}

func complement(members []int, n int) []int {
	in := make([]bool, n)
	for _, m := range members {
		in[m] = true
	}
	out := make([]int, 0, n-len(members))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}

// ClusteringEngine runs average-linkage agglomerative clustering over a
// DistanceMatrix. An engine runs once.
type ClusteringEngine struct {
	matrix *DistanceMatrix
	state  ClusterState
}

// NewClusteringEngine creates an engine in the Initialized state
func NewClusteringEngine(matrix *DistanceMatrix) *ClusteringEngine {
	return &ClusteringEngine{matrix: matrix, state: ClusterInitialized}
}

// State returns the current lifecycle state
func (e *ClusteringEngine) State() ClusterState { return e.state }

// Run performs the n-1 merges. Cancellation is checked once per merge; a
// cancelled run returns no dendrogram.
//
// Each step merges the closest pair of active clusters. Ties go to the pair
// whose earliest declared members come first. Distances to a merged cluster
// follow the Lance-Williams update for average linkage:
// d(k, i∪j) = (|i|·d(k,i) + |j|·d(k,j)) / (|i|+|j|).
func (e *ClusteringEngine) Run(ctx context.Context) (*Dendrogram, error) {
	if e.state != ClusterInitialized {
		return nil, fmt.Errorf("clustering engine already %s", e.state)
	}
	n := e.matrix.Size()
	if n == 0 {
		return nil, fmt.Errorf("nothing to cluster")
	}
	e.state = ClusterMerging

	total := 2*n - 1
	d := &Dendrogram{nodes: make([]ClusterNode, 0, total), leaves: n}
	for i := 0; i < n; i++ {
		d.nodes = append(d.nodes, ClusterNode{ID: i, Members: []int{i}, Left: -1, Right: -1})
	}

	// dist is indexed by node ID; only active nodes are read
	dist := make([][]float64, total)
	for i := range dist {
		dist[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := e.matrix.Distance(i, j)
			dist[i][j], dist[j][i] = v, v
		}
	}

	// active stays ordered by each cluster's earliest member
	active := make([]int, n)
	for i := range active {
		active[i] = i
	}

	for len(active) > 1 {
		if err := CheckCancelled(ctx); err != nil {
			return nil, err
		}

		bi, bj := 0, 1
		best := dist[active[0]][active[1]]
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				v := dist[active[i]][active[j]]
				if v < best && !almostEqual(v, best) {
					best, bi, bj = v, i, j
				}
			}
		}

		a, b := active[bi], active[bj]
		na, nb := float64(len(d.nodes[a].Members)), float64(len(d.nodes[b].Members))
		merged := ClusterNode{
			ID:      len(d.nodes),
			Members: mergeSorted(d.nodes[a].Members, d.nodes[b].Members),
			Left:    a,
			Right:   b,
			Height:  best,
		}
		for _, k := range active {
			if k == a || k == b {
				continue
			}
			v := (na*dist[k][a] + nb*dist[k][b]) / (na + nb)
			dist[k][merged.ID], dist[merged.ID][k] = v, v
		}
		d.nodes = append(d.nodes, merged)

		// merged inherits a's position; a precedes b so the order holds
		active[bi] = merged.ID
		active = append(active[:bj], active[bj+1:]...)
	}

	d.root = active[0]
	e.state = ClusterComplete
	return d, nil
}

func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.Ints(out)
	return out
}
