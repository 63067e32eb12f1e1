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

// Package stats computes diagnostics of a de Bruijn graph after every
// simplification phase.
package stats

import (
	"sort"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/elasm/dbg"
)

// CoverageBins is the number of bins of the coverage histogram.
const CoverageBins = 10

// Bin is a bin of a histogram over [Lower, Upper).
type Bin struct {
	Lower, Upper float64
	Count        int
}

// DegreeCount is the number of vertices with a given degree.
type DegreeCount struct {
	Degree, Count int
}

// Coverage summarizes the coverage of the edges of a graph.
type Coverage struct {
	Min, Max, Mean, StdDev, Median float64
	Histogram                      []Bin
}

// Phase holds the diagnostics of a graph after a simplification phase.
type Phase struct {
	Phase       dbg.Phase
	Vertices    int
	Edges       int
	TotalLength int64
	MaxLength   int
	N50         int
	Coverage    Coverage
	DegIn       []DegreeCount
	DegOut      []DegreeCount
}

// N50 returns the largest length L such that the lengths of at least L
// cover at least half of the total length.
func N50(lengths []int) int {
	if len(lengths) == 0 {
		return 0
	}
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	var total int64
	for _, length := range sorted {
		total += int64(length)
	}
	var sum int64
	for _, length := range sorted {
		sum += int64(length)
		if 2*sum >= total {
			return length
		}
	}
	return sorted[len(sorted)-1]
}

func summarizeCoverage(coverage []float64) (result Coverage) {
	if len(coverage) == 0 {
		return result
	}
	sort.Float64s(coverage)
	result.Min = coverage[0]
	result.Max = floats.Max(coverage)
	result.Mean = stat.Mean(coverage, nil)
	if len(coverage) > 1 {
		result.StdDev = stat.StdDev(coverage, nil)
	}
	result.Median = stat.Quantile(0.5, stat.Empirical, coverage, nil)
	dividers := make([]float64, CoverageBins+1)
	floats.Span(dividers, 0, result.Max+1)
	counts := stat.Histogram(nil, dividers, coverage, nil)
	result.Histogram = make([]Bin, CoverageBins)
	for i := range result.Histogram {
		result.Histogram[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}
	return result
}

func degreeHistogram(degrees []int) (result []DegreeCount) {
	counts := make(map[int]int)
	for _, d := range degrees {
		counts[d]++
	}
	for d, c := range counts {
		result = append(result, DegreeCount{Degree: d, Count: c})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Degree < result[j].Degree
	})
	return result
}

// Compute returns the diagnostics of g. The graph is only read while
// copying its edges and degrees. The summaries are computed in parallel
// on the copies.
func Compute(phase dbg.Phase, g *dbg.Graph) *Phase {
	edges := g.Contigs()
	store := g.Edges()
	n := store.Len()
	degIn, degOut := make([]int, n), make([]int, n)
	for v := int32(0); v < int32(n); v++ {
		degIn[v] = store.DegIn(v)
		degOut[v] = store.DegOut(v)
	}
	coverage := make([]float64, len(edges))
	lengths := make([]int, len(edges))
	for i, e := range edges {
		coverage[i] = e.Coverage
		lengths[i] = e.Len()
	}

	result := &Phase{Phase: phase, Vertices: n, Edges: len(edges)}
	parallel.Do(
		func() { result.Coverage = summarizeCoverage(coverage) },
		func() { result.DegIn = degreeHistogram(degIn) },
		func() { result.DegOut = degreeHistogram(degOut) },
		func() {
			result.N50 = N50(lengths)
			for _, length := range lengths {
				result.TotalLength += int64(length)
				if length > result.MaxLength {
					result.MaxLength = length
				}
			}
		},
	)
	return result
}
