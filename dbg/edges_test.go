// elasm: a de Bruijn graph assembler for sequencing reads.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elasm/blob/master/LICENSE.txt>.

package dbg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireDegrees recomputes the degrees of every vertex from the edges
// it reports and compares them with the counters.
func requireDegrees(t *testing.T, edges *Edges) {
	t.Helper()
	require.NotPanics(t, edges.CheckInvariants)
	degIn := make([]int, edges.Len())
	total := 0
	for v := int32(0); v < int32(edges.Len()); v++ {
		type key struct {
			to    int32
			label string
		}
		distinct := make(map[key]bool)
		for _, e := range edges.Out(v) {
			require.Equal(t, v, e.From)
			distinct[key{e.To, e.Label}] = true
			degIn[e.To]++
			total++
		}
		require.Equal(t, len(distinct), edges.DegOut(v), "out-degree of %v", v)
	}
	for v := int32(0); v < int32(edges.Len()); v++ {
		require.Equal(t, degIn[v], edges.DegIn(v), "in-degree of %v", v)
		require.Len(t, edges.In(v), degIn[v])
	}
	require.Equal(t, total, edges.NumEdges())
}

func TestEdgesPut(t *testing.T) {
	edges := NewEdges()
	a, b := edges.AddVertex(), edges.AddVertex()
	require.Equal(t, int32(0), a)
	require.Equal(t, int32(1), b)
	require.True(t, edges.IsEmpty(a))

	edges.Put(a, b, "ACG", 1)
	edges.Put(a, b, "ACG", 1)
	e, ok := edges.Get(a, b, "ACG")
	require.True(t, ok)
	require.Equal(t, 2.0, e.Coverage)
	require.Equal(t, 1, edges.DegOut(a))
	require.Equal(t, 1, edges.DegIn(b))
	requireDegrees(t, edges)

	edges.Put(a, b, "ACT", 0.5)
	require.Equal(t, 2, edges.DegOut(a))
	require.Equal(t, 2, edges.DegIn(b))
	require.Equal(t, []int32{b}, edges.Neighbors(a))
	require.False(t, edges.IsEmpty(a))
	require.False(t, edges.IsEmpty(b))
	requireDegrees(t, edges)
}

func TestEdgesRemove(t *testing.T) {
	edges := NewEdges()
	a, b, c := edges.AddVertex(), edges.AddVertex(), edges.AddVertex()
	edges.Put(a, b, "ACG", 1)
	edges.Put(a, b, "ACT", 1)
	edges.Put(a, c, "AGG", 1)

	edges.Remove(a, b, "TTT")
	edges.Remove(b, a, "ACG")
	require.Equal(t, 3, edges.NumEdges())
	requireDegrees(t, edges)

	edges.Remove(a, b, "ACG")
	_, ok := edges.Get(a, b, "ACG")
	require.False(t, ok)
	require.Equal(t, 2, edges.DegOut(a))
	require.Equal(t, 1, edges.DegIn(b))
	requireDegrees(t, edges)

	edges.Put(a, b, "ACG", 3)
	require.Equal(t, 2, edges.RemoveAll(a, b))
	require.Equal(t, 0, edges.RemoveAll(a, b))
	require.True(t, edges.IsEmpty(b))
	require.Equal(t, []int32{c}, edges.Neighbors(a))
	requireDegrees(t, edges)
}

func TestEdgesStaleVertex(t *testing.T) {
	edges := NewEdges()
	a := edges.AddVertex()
	require.Panics(t, func() { edges.Put(a, 1, "AAA", 1) })
	require.Panics(t, func() { edges.DegIn(-1) })
}

func TestEdgesCompact(t *testing.T) {
	edges := NewEdges()
	for i := 0; i < 6; i++ {
		edges.AddVertex()
	}
	edges.Put(0, 2, "AAC", 1)
	edges.Put(2, 4, "ACG", 3)
	edges.Put(4, 2, "CGA", 2.5)
	edges.Put(5, 5, "GGG", 1)
	edges.Put(3, 1, "TTT", 1)
	edges.RemoveAll(3, 1)

	require.Equal(t, 2, edges.Compact())
	require.Equal(t, 4, edges.Len())
	requireDegrees(t, edges)
	for v := int32(0); v < int32(edges.Len()); v++ {
		require.False(t, edges.IsEmpty(v))
	}
	require.Equal(t, []Edge{
		{From: 0, To: 1, Label: "AAC", Coverage: 1},
		{From: 1, To: 2, Label: "ACG", Coverage: 3},
		{From: 2, To: 1, Label: "CGA", Coverage: 2.5},
		{From: 3, To: 3, Label: "GGG", Coverage: 1},
	}, edges.All())

	require.Equal(t, 0, edges.Compact())
	require.Equal(t, 4, edges.Len())
}

func TestEdgesCompactLeadingEmptyVertices(t *testing.T) {
	edges := NewEdges()
	for i := 0; i < 5; i++ {
		edges.AddVertex()
	}
	edges.Put(3, 4, "ACG", 1)
	require.Equal(t, 3, edges.Compact())
	require.Equal(t, []Edge{{From: 0, To: 1, Label: "ACG", Coverage: 1}}, edges.All())
	requireDegrees(t, edges)
}

func TestEdgesDegreeInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	labels := []string{"AAA", "AAC", "ACG", "CGT"}
	edges := NewEdges()
	const n = 8
	for i := 0; i < n; i++ {
		edges.AddVertex()
	}
	for i := 0; i < 2000; i++ {
		v, u := int32(rng.Intn(n)), int32(rng.Intn(n))
		label := labels[rng.Intn(len(labels))]
		switch rng.Intn(4) {
		case 0, 1:
			edges.Put(v, u, label, float64(1+rng.Intn(3)))
		case 2:
			edges.Remove(v, u, label)
		case 3:
			edges.RemoveAll(v, u)
		}
		if i%100 == 0 {
			requireDegrees(t, edges)
		}
	}
	requireDegrees(t, edges)
	before := edges.All()
	removed := edges.Compact()
	requireDegrees(t, edges)
	require.Equal(t, n-removed, edges.Len())
	require.Len(t, edges.All(), len(before))
}
