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

// Package dbg implements a de Bruijn graph assembler engine.
//
// Reads are decomposed into k-mers with AddRead. Every k-mer becomes a
// directed, labeled edge between the vertices for its (k-1)-length
// prefix and suffix, and repeated observations of the same k-mer
// accumulate coverage on that edge. The graph is then simplified in
// place: Compress contracts non-branching paths into single edges,
// RemoveTails prunes low-confidence dead ends, and RemoveBubbles
// removes short redundant parallel paths. Simplify runs these passes in
// the order the assembler uses them, and Contigs reads out the labels of
// the remaining edges.
//
// Vertex IDs are dense int32 values. Every compaction renumbers them,
// so IDs must not be held across a call to Compress, RemoveTails,
// RemoveBubbles, Simplify or Edges.Compact.
//
// A Graph is not safe for concurrent use.
package dbg
