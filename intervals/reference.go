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

package intervals

import (
	"github.com/exascience/pargo/parallel"

	"github.com/exascience/elasm/dbg"
	"github.com/exascience/elasm/fasta"
)

// Coverage reports how much of a reference sequence is covered by exact
// matches of contigs.
type Coverage struct {
	Name   string
	Length int
	// Contigs is the number of contigs that match at least once.
	Contigs int
	// Intervals are the covered ranges, flattened and sorted.
	Intervals []Interval
}

// Covered returns the number of covered reference positions.
func (c Coverage) Covered() int64 {
	return Total(c.Intervals)
}

// Fraction returns the covered fraction of the reference sequence.
func (c Coverage) Fraction() float64 {
	if c.Length == 0 {
		return 0
	}
	return float64(c.Covered()) / float64(c.Length)
}

// ReferenceCoverage matches every contig against every reference
// sequence. Contigs are matched in parallel.
func ReferenceCoverage(reference []fasta.Sequence, contigs []dbg.Edge) []Coverage {
	result := make([]Coverage, len(reference))
	for i, seq := range reference {
		matches := make([][]Interval, len(contigs))
		parallel.Range(0, len(contigs), 0, func(low, high int) {
			for j := low; j < high; j++ {
				matches[j] = Matches(seq.Seq, []byte(contigs[j].Label))
			}
		})
		var all []Interval
		matched := 0
		for _, m := range matches {
			if len(m) > 0 {
				matched++
				all = append(all, m...)
			}
		}
		ParallelSortByStart(all)
		result[i] = Coverage{
			Name:      seq.Name,
			Length:    len(seq.Seq),
			Contigs:   matched,
			Intervals: ParallelFlatten(all),
		}
	}
	return result
}
