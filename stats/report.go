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

package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/exascience/elasm/dbg"
)

// Report collects the diagnostics of all phases of a run.
type Report struct {
	RunID  uuid.UUID
	K      int
	Phases []*Phase
}

// NewReport returns an empty report for a run with the given ID.
func NewReport(runID uuid.UUID, k int) *Report {
	return &Report{RunID: runID, K: k}
}

// Observe computes the diagnostics of g and adds them to the report.
// It can be used as dbg.Options.Observe.
func (r *Report) Observe(phase dbg.Phase, g *dbg.Graph) {
	r.Phases = append(r.Phases, Compute(phase, g))
}

// WriteSummary writes the human-readable summary of a phase.
func (p *Phase) WriteSummary(w io.Writer, runID uuid.UUID, k int) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "run\t%v\n", runID)
	fmt.Fprintf(out, "phase\t%v\n", p.Phase)
	fmt.Fprintf(out, "k\t%v\n", k)
	fmt.Fprintf(out, "vertices\t%v\n", p.Vertices)
	fmt.Fprintf(out, "edges\t%v\n", p.Edges)
	fmt.Fprintf(out, "total length\t%v\n", p.TotalLength)
	fmt.Fprintf(out, "max length\t%v\n", p.MaxLength)
	fmt.Fprintf(out, "N50\t%v\n", p.N50)
	fmt.Fprintf(out, "coverage min\t%.4f\n", p.Coverage.Min)
	fmt.Fprintf(out, "coverage max\t%.4f\n", p.Coverage.Max)
	fmt.Fprintf(out, "coverage mean\t%.4f\n", p.Coverage.Mean)
	fmt.Fprintf(out, "coverage stddev\t%.4f\n", p.Coverage.StdDev)
	fmt.Fprintf(out, "coverage median\t%.4f\n", p.Coverage.Median)
	return out.Flush()
}

func (p *Phase) writeCoverage(w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "lower\tupper\tcount")
	for _, bin := range p.Coverage.Histogram {
		fmt.Fprintf(out, "%.4f\t%.4f\t%v\n", bin.Lower, bin.Upper, bin.Count)
	}
	return out.Flush()
}

func writeDegrees(w io.Writer, degrees []DegreeCount) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "degree\tcount")
	for _, d := range degrees {
		fmt.Fprintf(out, "%v\t%v\n", d.Degree, d.Count)
	}
	return out.Flush()
}

func writeFile(filename string, write func(io.Writer) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	return write(f)
}

// Write stores every phase in its own subdirectory of dir, as
// stats.txt, coverage.tsv, deg_in.tsv and deg_out.tsv.
func (r *Report) Write(dir string) error {
	for _, p := range r.Phases {
		phaseDir := filepath.Join(dir, string(p.Phase))
		if err := os.MkdirAll(phaseDir, 0o700); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(phaseDir, "stats.txt"), func(w io.Writer) error {
			return p.WriteSummary(w, r.RunID, r.K)
		}); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(phaseDir, "coverage.tsv"), p.writeCoverage); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(phaseDir, "deg_in.tsv"), func(w io.Writer) error {
			return writeDegrees(w, p.DegIn)
		}); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(phaseDir, "deg_out.tsv"), func(w io.Writer) error {
			return writeDegrees(w, p.DegOut)
		}); err != nil {
			return err
		}
	}
	return nil
}
