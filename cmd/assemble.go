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

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/exascience/elasm/config"
	"github.com/exascience/elasm/dbg"
	"github.com/exascience/elasm/export"
	"github.com/exascience/elasm/fasta"
	"github.com/exascience/elasm/internal"
	"github.com/exascience/elasm/intervals"
	"github.com/exascience/elasm/reads"
	"github.com/exascience/elasm/stats"
)

// AssembleHelp is the help string for this command.
const AssembleHelp = "assemble parameters:\n" +
	"elasm assemble reads-file contigs-file\n" +
	"[--k n]\n" +
	"[--config hcl-file]\n" +
	"[--tail-fraction f]\n" +
	"[--bubble-length-factor n]\n" +
	"[--no-tails]\n" +
	"[--no-bubbles]\n" +
	"[--check-invariants]\n" +
	"[--stats-dir path]\n" +
	"[--dot dot-file]\n" +
	"[--reference fasta-file]\n" +
	"[--sites elsites-file]\n" +
	"[--progress]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Assemble implements the elasm assemble command.
func Assemble() error {
	var (
		configFile, statsDir, dotFile, reference, sites, profile, logPath string
		noTails, noBubbles, progress, timed                               bool
		cl                                                                config.Assembly
	)

	var flags flag.FlagSet

	flags.IntVar(&cl.K, "k", 0, "length of the k-mers")
	flags.StringVar(&configFile, "config", "", "read assembly parameters from the given HCL file")
	flags.Float64Var(&cl.TailFraction, "tail-fraction", 0, "fraction of tails to remove")
	flags.IntVar(&cl.BubbleLengthFactor, "bubble-length-factor", 0, "maximum length of bubble edges, in multiples of k")
	flags.BoolVar(&noTails, "no-tails", false, "do not remove tails")
	flags.BoolVar(&noBubbles, "no-bubbles", false, "do not remove bubbles")
	flags.BoolVar(&cl.CheckInvariants, "check-invariants", false, "verify the graph after every phase")
	flags.StringVar(&statsDir, "stats-dir", "", "write graph statistics for every phase to the specified directory")
	flags.StringVar(&dotFile, "dot", "", "write the final graph in Graphviz format")
	flags.StringVar(&reference, "reference", "", "compare the assembly with the given reference")
	flags.StringVar(&sites, "sites", "", "write the reference ranges covered by contigs (requires --reference)")
	flags.BoolVar(&progress, "progress", false, "show a progress bar while reading")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, AssembleHelp)

	input := getFilename(os.Args[2], AssembleHelp)
	output := getFilename(os.Args[3], AssembleHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if configFile != "" && !checkExist("--config", configFile) {
		sanityChecksFailed = true
	}
	if dotFile != "" && !checkCreate("--dot", dotFile) {
		sanityChecksFailed = true
	}
	if reference != "" && !checkExist("--reference", reference) {
		sanityChecksFailed = true
	}
	if sites != "" {
		if reference == "" {
			log.Println("Error: --sites requires --reference.")
			sanityChecksFailed = true
		} else if !checkCreate("--sites", sites) {
			sanityChecksFailed = true
		}
	}
	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	settings := config.Default()
	if configFile != "" {
		var err error
		if settings, err = config.Load(configFile); err != nil {
			log.Println("Error:", err)
			sanityChecksFailed = true
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			settings.K = cl.K
		case "tail-fraction":
			settings.TailFraction = cl.TailFraction
		case "bubble-length-factor":
			settings.BubbleLengthFactor = cl.BubbleLengthFactor
		case "check-invariants":
			settings.CheckInvariants = cl.CheckInvariants
		case "no-tails":
			settings.RemoveTails = !noTails
		case "no-bubbles":
			settings.RemoveBubbles = !noBubbles
		}
	})
	if err := settings.Validate(); err != nil {
		log.Println("Error:", err)
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, AssembleHelp)
		os.Exit(1)
	}

	runID := uuid.New()
	log.Println("Run", runID, "with k =", settings.K)

	g, err := dbg.NewGraph(settings.K)
	if err != nil {
		return err
	}

	var phase int64

	phase++
	if err := timedRun(timed, profile, "Reading reads.", phase, func() error {
		loaded, err := reads.LoadFile(input, g, reads.Options{Progress: progress})
		if err != nil {
			return err
		}
		log.Printf("Read %v reads (%v bases, %v skipped) from %v %v input.\n",
			loaded.Reads, loaded.Bases, loaded.Skipped, loaded.Compression, loaded.Format)
		log.Printf("Graph has %v vertices and %v edges.\n", g.NumVertices(), g.NumEdges())
		return nil
	}); err != nil {
		return err
	}

	opts := settings.Options()
	report := stats.NewReport(runID, settings.K)
	if statsDir != "" {
		opts.Observe = report.Observe
	}

	phase++
	if err := timedRun(timed, profile, "Simplifying graph.", phase, func() error {
		result, err := g.Simplify(opts)
		if err != nil {
			return err
		}
		log.Printf("Compression merged %v vertices.\n", result.Compress.Contracted)
		if settings.RemoveTails {
			log.Printf("Removed %v of %v tails.\n", result.Tails.Removed, result.Tails.Candidates)
		}
		if settings.RemoveBubbles {
			log.Printf("Removed %v of %v bubble candidates.\n", result.Bubbles.Removed, result.Bubbles.Candidates)
		}
		log.Printf("Graph has %v vertices and %v edges.\n", g.NumVertices(), g.NumEdges())
		return nil
	}); err != nil {
		return err
	}

	contigs := g.Contigs()

	phase++
	if err := timedRun(timed, profile, "Writing output.", phase, func() error {
		if err := fasta.WriteContigsFile(output, contigs); err != nil {
			return err
		}
		log.Printf("Wrote %v contigs to %v.\n", len(contigs), output)
		if dotFile != "" {
			if err := export.WriteDotFile(dotFile, g); err != nil {
				return err
			}
		}
		if statsDir != "" {
			return report.Write(statsDir)
		}
		return nil
	}); err != nil {
		return err
	}

	if reference != "" {
		phase++
		return timedRun(timed, profile, "Comparing with reference.", phase, func() error {
			return checkReference(g, contigs, reference, sites)
		})
	}
	return nil
}

func checkReference(g *dbg.Graph, contigs []dbg.Edge, reference, sites string) error {
	ref, err := fasta.ParseFasta(reference, true, false)
	if err != nil {
		return err
	}
	var expected []byte
	for _, seq := range ref {
		expected = append(expected, seq.Seq...)
	}
	if bytes.Equal(expected, []byte(g.Sequence())) {
		log.Println("assembly successful!")
	} else {
		log.Println("assembly failed!")
	}
	coverage := intervals.ReferenceCoverage(ref, contigs)
	for _, c := range coverage {
		log.Printf("%v: %v of %v bases (%.2f%%) covered by %v contigs.\n",
			c.Name, c.Covered(), c.Length, 100*c.Fraction(), c.Contigs)
	}
	if sites == "" {
		return nil
	}
	f, err := internal.FileCreate(sites)
	if err != nil {
		return err
	}
	defer internal.Close(f)
	return intervals.WriteSites(f, coverage)
}
