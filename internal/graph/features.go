// Package graph computes structural node features of a snapshot.
package graph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Snapshot undirected simple graph over dense node ids 0..N-1.
// Repeated pairs collapse to one edge; a self-loop counts twice towards degree and is
// ignored by clustering.
type Snapshot struct {
	g         *simple.UndirectedGraph
	selfLoops map[int64]bool
	n         int
}

// NewSnapshot graph of the given edges over n nodes
func NewSnapshot(n int, edges [][2]int) *Snapshot {
	s := &Snapshot{
		g:         simple.NewUndirectedGraph(),
		selfLoops: make(map[int64]bool),
		n:         n,
	}
	for _, e := range edges {
		u, v := int64(e[0]), int64(e[1])
		if u == v {
			s.selfLoops[u] = true
			continue
		}
		s.g.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
	}
	return s
}

func (s *Snapshot) neighbors(id int64) []int64 {
	if s.g.Node(id) == nil {
		return nil
	}
	it := s.g.From(id)
	out := make([]int64, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	return out
}

// Degree of a node, 0 for nodes without edges
func (s *Snapshot) Degree(id int) int {
	d := len(s.neighbors(int64(id)))
	if s.selfLoops[int64(id)] {
		d += 2
	}
	return d
}

// Clustering local clustering coefficient, 0 below two neighbours
func (s *Snapshot) Clustering(id int) float64 {
	nbrs := s.neighbors(int64(id))
	k := len(nbrs)
	if k < 2 {
		return 0
	}
	links := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if s.g.HasEdgeBetween(nbrs[i], nbrs[j]) {
				links++
			}
		}
	}
	return 2 * float64(links) / float64(k*(k-1))
}

// Features [degree, clustering] for every node 0..N-1
func (s *Snapshot) Features() [][]float64 {
	out := make([][]float64, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = []float64{float64(s.Degree(i)), s.Clustering(i)}
	}
	return out
}

// NodeFeatures shortcut for NewSnapshot(n, edges).Features()
func NodeFeatures(n int, edges [][2]int) [][]float64 {
	return NewSnapshot(n, edges).Features()
}
