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
	"fmt"
	"math"
	"sort"
)

// TailReport summarizes a RemoveTails pass.
type TailReport struct {
	// Candidates is the number of tail edges found.
	Candidates int
	// Removed is the number of tail edges removed.
	Removed int
	// Compress summarizes the compression after the removal.
	Compress CompressReport
}

type tail struct {
	score float64
	v, u  int32
}

// tails returns all edges from a vertex with incoming edges to a dead
// end, which is a vertex with exactly one incoming and no outgoing edge.
func (g *Graph) tails() (result []tail) {
	edges := g.edges
	for v, n := int32(0), int32(edges.Len()); v < n; v++ {
		if edges.degIn[v] == 0 {
			continue
		}
		for _, index := range edges.out[v] {
			e := edges.arena[index]
			if edges.degIn[e.To] == 1 && edges.degOut[e.To] == 0 {
				result = append(result, tail{
					score: float64(len(e.Label)) * e.Coverage,
					v:     v,
					u:     e.To,
				})
			}
		}
	}
	return result
}

// RemoveTails removes the given fraction of tail edges with the lowest
// scores, and compresses the graph afterwards. The score of a tail edge
// is the length of its label times its coverage, so that long or well
// supported tails survive. A tail edge leads from a vertex with
// incoming edges to a vertex with exactly one incoming and no outgoing
// edge. The number of removed tails is rounded up.
func (g *Graph) RemoveTails(fraction float64) (report TailReport, err error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return report, fmt.Errorf("%w: tail fraction %v not in [0, 1]", ErrInvalidInput, fraction)
	}
	tails := g.tails()
	sort.Slice(tails, func(i, j int) bool {
		ti, tj := tails[i], tails[j]
		if ti.score != tj.score {
			return ti.score < tj.score
		}
		if ti.v != tj.v {
			return ti.v < tj.v
		}
		return ti.u < tj.u
	})
	report.Candidates = len(tails)
	cut := int(math.Ceil(fraction * float64(len(tails))))
	for _, t := range tails[:cut] {
		report.Removed += g.edges.RemoveAll(t.v, t.u)
	}
	report.Compress = g.Compress()
	return report, nil
}
