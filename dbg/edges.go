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

import "log"

// Edge is a directed, labeled, coverage-weighted edge of the graph.
// Edges returned by the store are copies, so modifying them has no
// effect on the graph.
type Edge struct {
	From, To int32
	Label    string
	Coverage float64
}

// Len returns the length of the edge label.
func (e Edge) Len() int {
	return len(e.Label)
}

const freeSlot = -1

// Edges is a directed multigraph store. Edge records live in a single
// arena, and every vertex keeps the arena indices of its incoming and
// outgoing edges in insertion order. Two edges between the same pair of
// vertices are distinct iff their labels differ.
//
// The in- and out-degree of every vertex are kept as running counters
// that always equal the lengths of the adjacency lists.
type Edges struct {
	arena  []Edge
	free   []int32
	out    [][]int32
	in     [][]int32
	degIn  []int32
	degOut []int32
	live   int
}

// NewEdges returns an empty store without vertices.
func NewEdges() *Edges {
	return &Edges{}
}

func newEdgesWithVertices(n int) *Edges {
	return &Edges{
		out:    make([][]int32, n),
		in:     make([][]int32, n),
		degIn:  make([]int32, n),
		degOut: make([]int32, n),
	}
}

// AddVertex registers a new vertex with zero in- and out-degree and
// returns its ID.
func (edges *Edges) AddVertex() int32 {
	id := int32(len(edges.out))
	edges.out = append(edges.out, nil)
	edges.in = append(edges.in, nil)
	edges.degIn = append(edges.degIn, 0)
	edges.degOut = append(edges.degOut, 0)
	return id
}

// Len returns the number of vertices.
func (edges *Edges) Len() int {
	return len(edges.out)
}

// NumEdges returns the number of edges.
func (edges *Edges) NumEdges() int {
	return edges.live
}

func (edges *Edges) checkVertex(v int32) {
	if v < 0 || int(v) >= len(edges.out) {
		log.Panicf("vertex %v out of range [0, %v): stale vertex ID", v, len(edges.out))
	}
}

// DegIn returns the number of edges ending in v.
func (edges *Edges) DegIn(v int32) int {
	edges.checkVertex(v)
	return int(edges.degIn[v])
}

// DegOut returns the number of edges starting in v.
func (edges *Edges) DegOut(v int32) int {
	edges.checkVertex(v)
	return int(edges.degOut[v])
}

// IsEmpty returns true iff v has neither incoming nor outgoing edges.
func (edges *Edges) IsEmpty(v int32) bool {
	edges.checkVertex(v)
	return edges.degIn[v] == 0 && edges.degOut[v] == 0
}

func (edges *Edges) find(v, u int32, label string) int32 {
	for _, index := range edges.out[v] {
		if e := &edges.arena[index]; e.To == u && e.Label == label {
			return index
		}
	}
	return -1
}

func (edges *Edges) adjustDeg(v, u, d int32) {
	edges.degOut[v] += d
	edges.degIn[u] += d
}

func (edges *Edges) allocate(e Edge) int32 {
	if n := len(edges.free); n > 0 {
		index := edges.free[n-1]
		edges.free = edges.free[:n-1]
		edges.arena[index] = e
		return index
	}
	edges.arena = append(edges.arena, e)
	return int32(len(edges.arena) - 1)
}

func (edges *Edges) release(index int32) {
	edges.arena[index] = Edge{From: freeSlot, To: freeSlot}
	edges.free = append(edges.free, index)
}

func removeIndex(list []int32, index int32) []int32 {
	for i, x := range list {
		if x == index {
			copy(list[i:], list[i+1:])
			return list[:len(list)-1]
		}
	}
	log.Panicf("edge %v missing from adjacency list", index)
	return nil
}

// Put adds weight to the coverage of the edge from v to u with the
// given label, creating the edge with coverage weight if it does not
// exist yet.
func (edges *Edges) Put(v, u int32, label string, weight float64) {
	edges.checkVertex(v)
	edges.checkVertex(u)
	if index := edges.find(v, u, label); index >= 0 {
		edges.arena[index].Coverage += weight
		return
	}
	index := edges.allocate(Edge{From: v, To: u, Label: label, Coverage: weight})
	edges.out[v] = append(edges.out[v], index)
	edges.in[u] = append(edges.in[u], index)
	edges.adjustDeg(v, u, +1)
	edges.live++
}

func (edges *Edges) removeAt(index int32) {
	e := &edges.arena[index]
	v, u := e.From, e.To
	edges.out[v] = removeIndex(edges.out[v], index)
	edges.in[u] = removeIndex(edges.in[u], index)
	edges.adjustDeg(v, u, -1)
	edges.live--
	edges.release(index)
}

// Remove deletes the edge from v to u with the given label. It is a
// no-op if there is no such edge.
func (edges *Edges) Remove(v, u int32, label string) {
	edges.checkVertex(v)
	edges.checkVertex(u)
	if index := edges.find(v, u, label); index >= 0 {
		edges.removeAt(index)
	}
}

// RemoveAll deletes every edge from v to u, regardless of label, and
// returns the number of deleted edges.
func (edges *Edges) RemoveAll(v, u int32) (removed int) {
	edges.checkVertex(v)
	edges.checkVertex(u)
	var indices []int32
	for _, index := range edges.out[v] {
		if edges.arena[index].To == u {
			indices = append(indices, index)
		}
	}
	for _, index := range indices {
		edges.removeAt(index)
	}
	return len(indices)
}

// Get returns the edge from v to u with the given label.
func (edges *Edges) Get(v, u int32, label string) (Edge, bool) {
	edges.checkVertex(v)
	edges.checkVertex(u)
	if index := edges.find(v, u, label); index >= 0 {
		return edges.arena[index], true
	}
	return Edge{}, false
}

// Neighbors returns the distinct successors of v in order of their
// first edge. The result is a snapshot that stays valid while the
// store is modified.
func (edges *Edges) Neighbors(v int32) (result []int32) {
	edges.checkVertex(v)
outer:
	for _, index := range edges.out[v] {
		u := edges.arena[index].To
		for _, w := range result {
			if w == u {
				continue outer
			}
		}
		result = append(result, u)
	}
	return result
}

func (edges *Edges) collect(indices []int32) []Edge {
	result := make([]Edge, len(indices))
	for i, index := range indices {
		result[i] = edges.arena[index]
	}
	return result
}

// Out returns copies of the outgoing edges of v.
func (edges *Edges) Out(v int32) []Edge {
	edges.checkVertex(v)
	return edges.collect(edges.out[v])
}

// In returns copies of the incoming edges of v.
func (edges *Edges) In(v int32) []Edge {
	edges.checkVertex(v)
	return edges.collect(edges.in[v])
}

// All returns copies of all edges, ordered by source vertex and then by
// insertion order.
func (edges *Edges) All() []Edge {
	result := make([]Edge, 0, edges.live)
	for _, out := range edges.out {
		for _, index := range out {
			result = append(result, edges.arena[index])
		}
	}
	return result
}

// CheckInvariants verifies that the degree counters agree with the
// adjacency lists and that every edge refers to valid vertices. Any
// violation means the graph is corrupt, so it panics.
func (edges *Edges) CheckInvariants() {
	n := int32(len(edges.out))
	if len(edges.in) != int(n) || len(edges.degIn) != int(n) || len(edges.degOut) != int(n) {
		log.Panicf("inconsistent vertex tables: %v/%v/%v/%v", n, len(edges.in), len(edges.degIn), len(edges.degOut))
	}
	degIn := make([]int32, n)
	live := 0
	for v, out := range edges.out {
		if int32(len(out)) != edges.degOut[v] {
			log.Panicf("vertex %v: out-degree counter %v, but %v outgoing edges", v, edges.degOut[v], len(out))
		}
		for i, index := range out {
			e := edges.arena[index]
			if e.From != int32(v) {
				log.Panicf("edge %v listed at vertex %v, but starts at %v", index, v, e.From)
			}
			if e.To < 0 || e.To >= n {
				log.Panicf("edge %v->%v refers to a stale vertex ID", e.From, e.To)
			}
			for _, other := range out[:i] {
				if o := edges.arena[other]; o.To == e.To && o.Label == e.Label {
					log.Panicf("duplicate edge %v->%v with label %v", e.From, e.To, e.Label)
				}
			}
			degIn[e.To]++
			live++
		}
	}
	for u, in := range edges.in {
		if int32(len(in)) != edges.degIn[u] || degIn[u] != edges.degIn[u] {
			log.Panicf("vertex %v: in-degree counter %v, but %v incoming edges (%v listed)", u, edges.degIn[u], degIn[u], len(in))
		}
		for _, index := range in {
			if edges.arena[index].To != int32(u) {
				log.Panicf("edge %v listed as incoming at vertex %v, but ends at %v", index, u, edges.arena[index].To)
			}
		}
	}
	if live != edges.live {
		log.Panicf("edge counter %v, but %v edges in adjacency lists", edges.live, live)
	}
}
