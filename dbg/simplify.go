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

import "fmt"

// Phase names a state of the graph during Simplify.
type Phase string

// The phases of Simplify, in order.
const (
	Original       Phase = "original"
	Compressed     Phase = "compressed"
	WithoutTails   Phase = "wo_tails"
	WithoutBubbles Phase = "wo_bubbles"
)

const defaultTailFraction = 0.3

// Options control Simplify.
type Options struct {
	// TailFraction is the fraction of tail edges removed by RemoveTails.
	TailFraction float64

	// BubbleLengthFactor times k is the maximum label length of edges
	// considered by RemoveBubbles.
	BubbleLengthFactor int

	RemoveTails   bool
	RemoveBubbles bool

	// CheckInvariants verifies the graph after every phase.
	CheckInvariants bool

	// Observe, if not nil, is called after every phase.
	Observe func(Phase, *Graph)
}

// DefaultOptions returns the options the assembler uses by default.
func DefaultOptions() Options {
	return Options{
		TailFraction:       defaultTailFraction,
		BubbleLengthFactor: 2,
		RemoveTails:        true,
		RemoveBubbles:      true,
	}
}

// Report summarizes a Simplify run.
type Report struct {
	Compress CompressReport
	Tails    TailReport
	Bubbles  BubbleReport
}

func (g *Graph) observe(opts Options, phase Phase) {
	if opts.CheckInvariants {
		g.CheckInvariants()
	}
	if opts.Observe != nil {
		opts.Observe(phase, g)
	}
}

// Simplify compresses the graph, removes tails, and removes bubbles,
// each pass followed by a compression. The graph cannot take further
// reads afterwards.
func (g *Graph) Simplify(opts Options) (report Report, err error) {
	if opts.BubbleLengthFactor <= 0 {
		return report, fmt.Errorf("%w: bubble length factor %v must be positive", ErrInvalidInput, opts.BubbleLengthFactor)
	}
	if opts.RemoveTails && !(opts.TailFraction >= 0 && opts.TailFraction <= 1) {
		return report, fmt.Errorf("%w: tail fraction %v not in [0, 1]", ErrInvalidInput, opts.TailFraction)
	}
	g.observe(opts, Original)
	report.Compress = g.Compress()
	g.observe(opts, Compressed)
	if opts.RemoveTails {
		if report.Tails, err = g.RemoveTails(opts.TailFraction); err != nil {
			return report, err
		}
		g.observe(opts, WithoutTails)
	}
	if opts.RemoveBubbles {
		report.Bubbles = g.RemoveBubbles(opts.BubbleLengthFactor * g.k)
		g.observe(opts, WithoutBubbles)
	}
	return report, nil
}
