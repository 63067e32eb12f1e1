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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCompressMinimal(t *testing.T) {
	g := newTestGraph(t, 3, "ATGGA")
	report := g.Compress()
	require.Equal(t, CompressReport{Contracted: 2, Compacted: 2}, report)
	require.Equal(t, 2, g.NumVertices())
	require.Equal(t, []Edge{{From: 0, To: 1, Label: "ATGGA", Coverage: 1}}, g.Contigs())
	require.Equal(t, "ATGGA", g.Sequence())
	require.NotPanics(t, g.CheckInvariants)
}

func TestCompressRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const k = 21
	for _, readLength := range []int{k, 50} {
		seq := randomSequence(rng, 500)
		g := newTestGraph(t, k, windows(seq, readLength)...)
		g.Compress()
		require.Equal(t, 1, g.NumEdges())
		require.Equal(t, 2, g.NumVertices())
		require.Equal(t, seq, g.Sequence())
		require.NotPanics(t, g.CheckInvariants)
	}
}

func TestCompressBranches(t *testing.T) {
	// AACG branches at CG into CGT and CGA.
	g := newTestGraph(t, 3, "AACGT", "AACGA")
	g.Compress()
	want := []Edge{
		{From: 0, To: 1, Label: "AACG", Coverage: 2},
		{From: 1, To: 2, Label: "CGT", Coverage: 1},
		{From: 1, To: 3, Label: "CGA", Coverage: 1},
	}
	if diff := cmp.Diff(want, g.Contigs()); diff != "" {
		t.Errorf("unexpected contigs (-want +got):\n%s", diff)
	}
}

func TestCompressCycle(t *testing.T) {
	// ACGAC closes the cycle AC -> CG -> GA -> AC.
	g := newTestGraph(t, 3, "ACGAC")
	require.Equal(t, 3, g.NumVertices())
	report := g.Compress()
	require.Equal(t, 2, report.Contracted)
	require.Equal(t, []Edge{{From: 0, To: 0, Label: "ACGAC", Coverage: 1}}, g.Contigs())
	require.NotPanics(t, g.CheckInvariants)
}

// chain builds a graph with the path a -> b -> c -> d.
func chain(t *testing.T, coverage [3]float64) (g *Graph, a, b, c int32) {
	g = newTestGraph(t, 3)
	ids := make([]int32, 4)
	for i, seq := range []string{"AC", "CG", "GT", "TA"} {
		id, err := g.Vertex(seq)
		require.NoError(t, err)
		ids[i] = id
	}
	for i, label := range []string{"ACG", "CGT", "GTA"} {
		g.Edges().Put(ids[i], ids[i+1], label, coverage[i])
	}
	return g, ids[0], ids[1], ids[2]
}

func TestCompressEdgeCoverage(t *testing.T) {
	g := newTestGraph(t, 3)
	a, _ := g.Vertex("AC")
	b, _ := g.Vertex("CG")
	c, _ := g.Vertex("GA")
	g.Edges().Put(a, b, "AACG", 2)
	g.Edges().Put(b, c, "CGA", 9)
	require.Equal(t, 1, g.CompressEdge(a, b))
	e, ok := g.Edges().Get(a, c, "AACGA")
	require.True(t, ok)
	require.InDelta(t, (2.0*4+9.0*3)/7, e.Coverage, 1e-12)
	require.True(t, g.Edges().IsEmpty(b))
}

func TestCompressEdgeOrder(t *testing.T) {
	coverage := [3]float64{2, 5, 2}

	forward, a, _, _ := chain(t, coverage)
	require.Equal(t, 2, forward.CompressEdge(a, a+1))

	backward, a, b, c := chain(t, coverage)
	require.Equal(t, 1, backward.CompressEdge(b, c))
	require.Equal(t, 1, backward.CompressEdge(a, b))

	fc, bc := forward.Contigs(), backward.Contigs()
	require.Len(t, fc, 1)
	require.Len(t, bc, 1)
	require.Equal(t, "ACGTA", fc[0].Label)
	require.Equal(t, fc[0].Label, bc[0].Label)
	require.InDelta(t, fc[0].Coverage, bc[0].Coverage, 1e-12)
	require.InDelta(t, 20.0/7, fc[0].Coverage, 1e-12)
}

func TestCompressEdgeStopsAtBranch(t *testing.T) {
	g := newTestGraph(t, 3, "AACGT", "TTCGA")
	aa, _ := g.Lookup("AA")
	ac, _ := g.Lookup("AC")
	require.Equal(t, 0, g.CompressEdge(aa, ac+1))
	require.Equal(t, 1, g.CompressEdge(aa, ac))
	require.NotPanics(t, g.CheckInvariants)
}
