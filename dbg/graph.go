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
	"errors"
	"fmt"
	"log"
)

var (
	// ErrInvalidInput is returned for reads that cannot be added to the
	// graph, and for invalid parameters.
	ErrInvalidInput = errors.New("dbg: invalid input")

	// ErrCompacted is returned when sequences are interned after the
	// vertex IDs have been renumbered by a compaction.
	ErrCompacted = errors.New("dbg: graph has been compacted")
)

// Graph is a de Bruijn graph over k-mers. Its vertices are (k-1)-mers
// and every edge carries the sequence it represents.
type Graph struct {
	k        int
	edges    *Edges
	interner *Interner
}

// NewGraph returns an empty graph for the given k-mer size.
func NewGraph(k int) (*Graph, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: k-mer size %v, must be at least 2", ErrInvalidInput, k)
	}
	return &Graph{
		k:        k,
		edges:    NewEdges(),
		interner: NewInterner(k - 1),
	}, nil
}

// K returns the k-mer size of the graph.
func (g *Graph) K() int {
	return g.k
}

// Edges returns the store of the graph.
func (g *Graph) Edges() *Edges {
	return g.edges
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int {
	return g.edges.Len()
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	return g.edges.NumEdges()
}

func isBase(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T':
		return true
	default:
		return false
	}
}

func (g *Graph) checkRead(read string) error {
	if len(read) < g.k {
		return fmt.Errorf("%w: read of length %v is shorter than k=%v", ErrInvalidInput, len(read), g.k)
	}
	for i := 0; i < len(read); i++ {
		if !isBase(read[i]) {
			return fmt.Errorf("%w: read contains %q at position %v", ErrInvalidInput, read[i], i)
		}
	}
	return nil
}

// Vertex returns the ID of the vertex for the given (k-1)-mer, creating
// the vertex if it does not exist yet.
func (g *Graph) Vertex(seq string) (int32, error) {
	if g.interner == nil {
		return -1, ErrCompacted
	}
	if len(seq) != g.k-1 {
		return -1, fmt.Errorf("%w: vertex sequence %v does not have length %v", ErrInvalidInput, seq, g.k-1)
	}
	for i := 0; i < len(seq); i++ {
		if !isBase(seq[i]) {
			return -1, fmt.Errorf("%w: vertex sequence %v", ErrInvalidInput, seq)
		}
	}
	return g.vertex(seq), nil
}

func (g *Graph) vertex(seq string) int32 {
	id, created := g.interner.Intern(seq)
	if created {
		if v := g.edges.AddVertex(); v != id {
			log.Panicf("interned vertex %v, but store allocated %v", id, v)
		}
	}
	return id
}

// Lookup returns the ID of the vertex for the given (k-1)-mer, if it
// exists and the graph has not been compacted yet.
func (g *Graph) Lookup(seq string) (int32, bool) {
	if g.interner == nil {
		return -1, false
	}
	return g.interner.Lookup(seq)
}

// AddRead adds an edge for every k-mer of read, from left to right,
// incrementing the coverage of k-mers that are already present. Reads
// shorter than k or with symbols other than A, C, G and T are rejected
// as a whole with ErrInvalidInput.
func (g *Graph) AddRead(read string) error {
	if g.interner == nil {
		return ErrCompacted
	}
	if err := g.checkRead(read); err != nil {
		return err
	}
	for i, end := 0, len(read)-g.k; i <= end; i++ {
		s := read[i : i+g.k]
		v := g.vertex(s[:g.k-1])
		u := g.vertex(s[1:])
		g.edges.Put(v, u, s, 1)
	}
	return nil
}

// compact renumbers the vertices and drops the interner, whose IDs are
// stale afterwards.
func (g *Graph) compact() int {
	g.interner = nil
	return g.edges.Compact()
}

// CheckInvariants panics if the graph is corrupt.
func (g *Graph) CheckInvariants() {
	g.edges.CheckInvariants()
	for _, e := range g.edges.All() {
		if len(e.Label) < g.k {
			log.Panicf("edge %v->%v has label %v shorter than k=%v", e.From, e.To, e.Label, g.k)
		}
	}
}
