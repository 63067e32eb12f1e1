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

import "github.com/willf/bitset"

// BubbleReport summarizes a RemoveBubbles pass.
type BubbleReport struct {
	// Candidates is the number of short edges that were tested.
	Candidates int
	// Removed is the number of short edges that were redundant.
	Removed int
	// Compress summarizes the compression after the removal.
	Compress CompressReport
}

// reachable determines whether there is a directed path of at least one
// edge from v to u.
func (g *Graph) reachable(v, u int32) bool {
	edges := g.edges
	visited := bitset.New(uint(edges.Len()))
	var queue []int32
	enqueue := func(from int32) bool {
		for _, index := range edges.out[from] {
			to := edges.arena[index].To
			if to == u {
				return true
			}
			if !visited.Test(uint(to)) {
				visited.Set(uint(to))
				queue = append(queue, to)
			}
		}
		return false
	}
	if enqueue(v) {
		return true
	}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if enqueue(next) {
			return true
		}
	}
	return false
}

// RemoveBubbles removes every edge with a label of at most maxLength
// bases for which another path between its endpoints exists, and
// compresses the graph afterwards. Such edges are typically one branch
// of a bubble caused by a single sequencing error. Short edges whose
// removal would disconnect their endpoints are kept.
func (g *Graph) RemoveBubbles(maxLength int) (report BubbleReport) {
	edges := g.edges
	for v, n := int32(0), int32(edges.Len()); v < n; v++ {
		for _, e := range edges.Out(v) {
			if len(e.Label) > maxLength {
				continue
			}
			report.Candidates++
			edges.Remove(e.From, e.To, e.Label)
			if g.reachable(e.From, e.To) {
				report.Removed++
			} else {
				edges.Put(e.From, e.To, e.Label, e.Coverage)
			}
		}
	}
	report.Compress = g.Compress()
	return report
}
