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

// interpolate returns the average of a and c, weighted by b and d.
func interpolate(a, b, c, d float64) float64 {
	return (a*b + c*d) / (b + d)
}

// CompressReport summarizes a Compress pass.
type CompressReport struct {
	// Contracted is the number of pass-through vertices merged away.
	Contracted int
	// Compacted is the number of empty vertices removed afterwards.
	Compacted int
}

// CompressEdge contracts the non-branching path that starts with the
// edges from v to u. As long as u has exactly one incoming edge, which
// comes from v, and exactly one outgoing edge, to some vertex to, the
// two edges are replaced by a single edge from v to to. Its label is
// the label of the first edge followed by the label of the second edge
// without their k-1 overlapping bases, and its coverage is the
// length-weighted average of both coverages. Contraction stops at a
// vertex that closes a cycle back to v.
//
// CompressEdge returns the number of vertices that were bypassed. They
// stay behind as empty vertices until the next compaction.
func (g *Graph) CompressEdge(v, u int32) (contracted int) {
	edges := g.edges
	edges.checkVertex(v)
	for u != v && edges.degIn[u] == 1 && edges.degOut[u] == 1 {
		vu := edges.arena[edges.in[u][0]]
		if vu.From != v {
			break
		}
		uto := edges.arena[edges.out[u][0]]
		edges.Remove(v, u, vu.Label)
		edges.Remove(u, uto.To, uto.Label)
		edges.Put(
			v, uto.To,
			vu.Label+uto.Label[g.k-1:],
			interpolate(vu.Coverage, float64(len(vu.Label)), uto.Coverage, float64(len(uto.Label))),
		)
		contracted++
		u = uto.To
	}
	return contracted
}

// Compress contracts all non-branching paths of the graph, and then
// compacts the vertex IDs.
func (g *Graph) Compress() (report CompressReport) {
	for v, n := int32(0), int32(g.edges.Len()); v < n; v++ {
		for _, u := range g.edges.Neighbors(v) {
			report.Contracted += g.CompressEdge(v, u)
		}
	}
	report.Compacted = g.compact()
	return report
}
