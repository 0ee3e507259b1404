// Package graph builds bipartite association graphs and finds their connected components
package graph

import (
	"sort"
	"strconv"
	"strings"
)

// Side is one of the two node classes of a bipartite graph
type Side byte

const (
	// SideA is the class of first IDs
	SideA Side = 'A'
	// SideB is the class of second IDs
	SideB Side = 'B'
)

// Node is a vertex of a bipartite graph: a key tuple on one side
type Node struct {
	Side Side
	Key  string
}

// NewNode builds a Node from a key tuple
func NewNode(side Side, key []string) Node {
	return Node{Side: side, Key: strings.Join(key, "\x00")}
}

func (n Node) less(o Node) bool {
	if n.Side != o.Side {
		return n.Side < o.Side
	}
	return n.Key < o.Key
}

// Bipartite is an undirected graph whose edges always join an A node to a B node
type Bipartite struct {
	adj map[Node]map[Node]struct{}
}

// New creates an empty Bipartite graph
func New() *Bipartite {
	return &Bipartite{adj: make(map[Node]map[Node]struct{})}
}

func (g *Bipartite) node(n Node) map[Node]struct{} {
	ns, ok := g.adj[n]
	if !ok {
		ns = make(map[Node]struct{})
		g.adj[n] = ns
	}
	return ns
}

// Add adds an edge between a and b. Either may be nil, in which case the other is added
// as a (possibly isolated) node.
func (g *Bipartite) Add(a, b *Node) {
	if a != nil {
		ns := g.node(*a)
		if b != nil {
			ns[*b] = struct{}{}
		}
	}
	if b != nil {
		ns := g.node(*b)
		if a != nil {
			ns[*a] = struct{}{}
		}
	}
}

// Len returns the number of nodes
func (g *Bipartite) Len() int {
	return len(g.adj)
}

// Component describes a connected component
type Component struct {
	ID int // 1-based, in order of discovery
	NA int // number of A nodes
	NB int // number of B nodes
}

// Bucket returns the "na-nb" member counts of this Component
func (c Component) Bucket() string {
	return strconv.Itoa(c.NA) + "-" + strconv.Itoa(c.NB)
}

// BucketID classifies this Component as one of Buckets
func (c Component) BucketID() string {
	first := class(c.NA)
	second := class(c.NB)
	if second == "n" && first == "n" {
		second = "m"
	}
	return first + "-" + second
}

func class(n int) string {
	switch n {
	case 0:
		return "0"
	case 1:
		return "1"
	}
	return "n"
}

// Buckets lists every bucket id, in output order
var Buckets = []string{"0-1", "1-0", "1-1", "n-1", "1-n", "n-m"}

// Components finds the connected components of g. Nodes are visited in sorted order,
// so component ids are deterministic.
func (g *Bipartite) Components() map[Node]*Component {
	nodes := make([]Node, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].less(nodes[j]) })

	result := make(map[Node]*Component, len(nodes))
	nextID := 0
	for _, start := range nodes {
		if _, visited := result[start]; visited {
			continue
		}
		nextID++
		c := &Component{ID: nextID}
		stack := []Node{start}
		result[start] = c
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.Side == SideA {
				c.NA++
			} else {
				c.NB++
			}
			for m := range g.adj[n] {
				if _, visited := result[m]; !visited {
					result[m] = c
					stack = append(stack, m)
				}
			}
		}
	}
	return result
}
