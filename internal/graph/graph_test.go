package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func node(side Side, k string) *Node {
	n := NewNode(side, []string{k})
	return &n
}

func TestComponents(t *testing.T) {
	g := New()
	// a1-b1: 1-1
	g.Add(node(SideA, "a1"), node(SideB, "b1"))
	// a2-b2, a2-b3: 1-n
	g.Add(node(SideA, "a2"), node(SideB, "b2"))
	g.Add(node(SideA, "a2"), node(SideB, "b3"))
	// a3-b4, a4-b4, a4-b5: n-m
	g.Add(node(SideA, "a3"), node(SideB, "b4"))
	g.Add(node(SideA, "a4"), node(SideB, "b4"))
	g.Add(node(SideA, "a4"), node(SideB, "b5"))
	// unassociated
	g.Add(node(SideA, "a5"), nil)
	g.Add(nil, node(SideB, "b6"))
	// duplicate edge
	g.Add(node(SideA, "a1"), node(SideB, "b1"))
	require.Equal(t, 11, g.Len())

	cc := g.Components()
	c := cc[*node(SideA, "a1")]
	require.Equal(t, 1, c.ID)
	require.Equal(t, "1-1", c.Bucket())
	require.Equal(t, "1-1", c.BucketID())

	c = cc[*node(SideB, "b3")]
	require.Equal(t, 2, c.ID)
	require.Equal(t, "1-2", c.Bucket())
	require.Equal(t, "1-n", c.BucketID())

	c = cc[*node(SideA, "a4")]
	require.Equal(t, 3, c.ID)
	require.Equal(t, "2-2", c.Bucket())
	require.Equal(t, "n-m", c.BucketID())
	require.Same(t, c, cc[*node(SideB, "b5")])

	require.Equal(t, "1-0", cc[*node(SideA, "a5")].BucketID())
	require.Equal(t, 4, cc[*node(SideA, "a5")].ID)
	require.Equal(t, "0-1", cc[*node(SideB, "b6")].BucketID())
	require.Equal(t, 5, cc[*node(SideB, "b6")].ID)
}

func TestBucketIDs(t *testing.T) {
	require.Equal(t, "n-1", Component{NA: 3, NB: 1}.BucketID())
	require.Equal(t, "1-n", Component{NA: 1, NB: 7}.BucketID())
	require.Equal(t, "n-m", Component{NA: 2, NB: 2}.BucketID())
	require.Equal(t, "0-1", Component{NA: 0, NB: 1}.BucketID())
}
