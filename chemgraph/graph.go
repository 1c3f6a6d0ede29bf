package chemgraph

import (
	"sort"

	chem "github.com/rmera/mdprep"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph is the covalent bond graph of a molecular system. Each atom is a node,
// with the atom's index in the Topology as ID, and each bond an undirected edge.
// Hydrogen bonds are not part of the graph.
type Graph struct {
	g *simple.UndirectedGraph
	n int
}

// New builds the bond graph for n atoms and the given bonds. It fails if a
// bond refers to a non-existent atom or bonds an atom to itself.
func New(n int, bonds []*chem.Bond) (*Graph, error) {
	G := &Graph{g: simple.NewUndirectedGraph(), n: n}
	for i := 0; i < n; i++ {
		G.g.AddNode(simple.Node(i))
	}
	for i, b := range bonds {
		if b.Order == chem.Hydrogen {
			continue
		}
		if b.At1 < 0 || b.At2 < 0 || b.At1 >= n || b.At2 >= n || b.At1 == b.At2 {
			return nil, chem.NewError(nil, "chemgraph.New", "bond %d (%d-%d) is not valid for %d atoms", i, b.At1, b.At2, n)
		}
		G.g.SetEdge(G.g.NewEdge(simple.Node(b.At1), simple.Node(b.At2)))
	}
	return G, nil
}

// FromTopology builds the bond graph of a Topology.
func FromTopology(T *chem.Topology) (*Graph, error) {
	return New(T.Len(), T.Bonds)
}

// Len returns the number of atoms (nodes) in the graph.
func (G *Graph) Len() int {
	return G.n
}

// Undirected returns the underlying gonum graph.
func (G *Graph) Undirected() graph.Undirected {
	return G.g
}

// Neighbors returns the indexes of the atoms bonded to i, in ascending order.
func (G *Graph) Neighbors(i int) []int {
	ret := make([]int, 0, 4)
	it := G.g.From(int64(i))
	for it.Next() {
		ret = append(ret, int(it.Node().ID()))
	}
	sort.Ints(ret)
	return ret
}

// Adjacency returns the adjacency list of the graph: for each atom, the
// sorted indexes of the atoms bonded to it. The list is symmetric.
func (G *Graph) Adjacency() [][]int {
	ret := make([][]int, G.n)
	for i := range ret {
		ret[i] = G.Neighbors(i)
	}
	return ret
}

// Bonded returns true if the atoms i and j are bonded.
func (G *Graph) Bonded(i, j int) bool {
	return G.g.HasEdgeBetween(int64(i), int64(j))
}

// Fragments returns the connected components (molecules) of the graph, each
// one as a sorted slice of atom indexes. Fragments are sorted by their first atom.
func (G *Graph) Fragments() [][]int {
	cc := topo.ConnectedComponents(G.g)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		f := make([]int, 0, len(c))
		for _, n := range c {
			f = append(f, int(n.ID()))
		}
		sort.Ints(f)
		ret = append(ret, f)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Separation returns the number of bonds in the shortest path between atoms i and j,
// 0 if i==j, or -1 if they are not connected.
func (G *Graph) Separation(i, j int) int {
	if i == j {
		return 0
	}
	s := path.DijkstraFrom(simple.Node(i), G.g)
	p, _ := s.To(int64(j))
	if len(p) == 0 {
		return -1
	}
	return len(p) - 1
}
