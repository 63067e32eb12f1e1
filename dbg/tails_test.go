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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// forkedGraph builds AA -> CC with two tails hanging off CC: a long,
// well covered one to CA and a short one with coverage 1 to CT.
func forkedGraph(t *testing.T) *Graph {
	g := newTestGraph(t, 3)
	ids := make(map[string]int32)
	for _, seq := range []string{"AA", "CC", "CA", "CT"} {
		id, err := g.Vertex(seq)
		require.NoError(t, err)
		ids[seq] = id
	}
	g.Edges().Put(ids["AA"], ids["CC"], "AAACC", 1)
	g.Edges().Put(ids["CC"], ids["CA"], "CCGTTTGCA", 10)
	g.Edges().Put(ids["CC"], ids["CT"], "CCT", 1)
	return g
}

func TestRemoveTails(t *testing.T) {
	g := forkedGraph(t)
	report, err := g.RemoveTails(0.5)
	require.NoError(t, err)
	require.Equal(t, 2, report.Candidates)
	require.Equal(t, 1, report.Removed)
	require.Equal(t, CompressReport{Contracted: 1, Compacted: 2}, report.Compress)

	contigs := g.Contigs()
	require.Len(t, contigs, 1)
	require.Equal(t, "AAACCGTTTGCA", contigs[0].Label)
	require.InDelta(t, (1.0*5+10.0*9)/14, contigs[0].Coverage, 1e-12)
	require.NotPanics(t, g.CheckInvariants)
}

func TestRemoveTailsNone(t *testing.T) {
	g := forkedGraph(t)
	report, err := g.RemoveTails(0)
	require.NoError(t, err)
	require.Equal(t, 2, report.Candidates)
	require.Equal(t, 0, report.Removed)
	require.Equal(t, 3, g.NumEdges())
}

func TestRemoveTailsAll(t *testing.T) {
	g := forkedGraph(t)
	report, err := g.RemoveTails(1)
	require.NoError(t, err)
	require.Equal(t, 2, report.Removed)
	require.Equal(t, []Edge{{From: 0, To: 1, Label: "AAACC", Coverage: 1}}, g.Contigs())
}

func TestRemoveTailsRoundsUp(t *testing.T) {
	g := forkedGraph(t)
	report, err := g.RemoveTails(0.01)
	require.NoError(t, err)
	require.Equal(t, 1, report.Removed)
}

func TestRemoveTailsKeepsIsolatedEdges(t *testing.T) {
	g := newTestGraph(t, 3, "ATGGA")
	g.Compress()
	report, err := g.RemoveTails(1)
	require.NoError(t, err)
	require.Equal(t, 0, report.Candidates)
	require.Equal(t, "ATGGA", g.Sequence())
}

func TestRemoveTailsInvalidFraction(t *testing.T) {
	for _, fraction := range []float64{-0.1, 1.5, math.NaN()} {
		g := forkedGraph(t)
		_, err := g.RemoveTails(fraction)
		require.ErrorIs(t, err, ErrInvalidInput)
		require.Equal(t, 3, g.NumEdges())
		require.Equal(t, 4, g.NumVertices())
	}
}
