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
	"log"

	"github.com/willf/bitset"
)

// emptyVertexShifts returns, for every vertex v, the number of empty
// vertices in [0, v], at index v+1. shifts[0] is 0 and shifts[n] is
// the total number of empty vertices.
func (edges *Edges) emptyVertexShifts() (empty *bitset.BitSet, shifts []int32) {
	n := len(edges.out)
	empty = bitset.New(uint(n))
	for v := 0; v < n; v++ {
		if edges.degIn[v] == 0 && edges.degOut[v] == 0 {
			empty.Set(uint(v))
		}
	}
	shifts = make([]int32, n+1)
	for v := 0; v < n; v++ {
		shifts[v+1] = shifts[v]
		if empty.Test(uint(v)) {
			shifts[v+1]++
		}
	}
	return empty, shifts
}

// Compact removes all vertices without edges and renumbers the
// remaining ones densely, preserving their relative order. Labels and
// coverages of edges are unchanged. All vertex IDs obtained before the
// call are invalid afterwards. Compact returns the number of removed
// vertices.
//
// The renumbering is computed completely from the old state before the
// new store is built, because the new ID of a vertex depends on the
// number of all empty vertices before it.
func (edges *Edges) Compact() (removed int) {
	empty, shifts := edges.emptyVertexShifts()
	n := len(edges.out)
	removed = int(shifts[n])
	if removed == 0 {
		return 0
	}
	snapshot := edges.All()

	newID := func(v int32) int32 {
		if empty.Test(uint(v)) {
			log.Panicf("edge refers to empty vertex %v", v)
		}
		return v - shifts[v+1]
	}
	rebuilt := newEdgesWithVertices(n - removed)
	rebuilt.arena = make([]Edge, 0, len(snapshot))
	for _, e := range snapshot {
		rebuilt.Put(newID(e.From), newID(e.To), e.Label, e.Coverage)
	}
	*edges = *rebuilt
	return removed
}
