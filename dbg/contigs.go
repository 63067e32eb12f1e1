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

import "strings"

// Contigs returns the remaining edges of the graph. After
// simplification, every edge label is a contig.
func (g *Graph) Contigs() []Edge {
	return g.edges.All()
}

// Sequence returns the concatenation of all edge labels, ordered by
// source vertex. For a graph that was simplified down to a single edge,
// this is the assembled sequence.
func (g *Graph) Sequence() string {
	var result strings.Builder
	for _, e := range g.edges.All() {
		result.WriteString(e.Label)
	}
	return result.String()
}
