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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/exascience/elasm/fasta"
	"github.com/exascience/elasm/internal"
	"github.com/exascience/elasm/stats"
)

// ContigStatsHelp is the help string for this command.
const ContigStatsHelp = "contig-stats parameters:\n" +
	"elasm contig-stats contigs-file\n" +
	"[--log-path path]\n"

// ContigStats implements the elasm contig-stats command. The
// contigs-file can also be a directory of FASTA files.
func ContigStats() error {
	var logPath string

	var flags flag.FlagSet
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	parseFlags(&flags, 3, ContigStatsHelp)

	input := getFilename(os.Args[2], ContigStatsHelp)

	setLogOutput(logPath)

	if !checkExist("", input) {
		fmt.Fprint(os.Stderr, ContigStatsHelp)
		os.Exit(1)
	}

	files := []string{input}
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		names, err := internal.Directory(input)
		if err != nil {
			return err
		}
		files = files[:0]
		for _, name := range names {
			files = append(files, filepath.Join(input, name))
		}
	}
	out := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(out, "file\tcount\ttotal\tmin\tmax\tavg\tN50")
	for _, file := range files {
		contigs, err := fasta.ParseFasta(file, false, false)
		if err != nil {
			return err
		}
		writeContigStats(out, file, contigs)
	}
	if err := out.Flush(); err != nil {
		log.Panic(err)
	}
	return nil
}

func writeContigStats(w io.Writer, name string, contigs []fasta.Sequence) {
	lengths := make([]int, len(contigs))
	var total int64
	minLength, maxLength := 0, 0
	for i, contig := range contigs {
		l := len(contig.Seq)
		lengths[i] = l
		total += int64(l)
		if i == 0 || l < minLength {
			minLength = l
		}
		if l > maxLength {
			maxLength = l
		}
	}
	var avg float64
	if len(contigs) > 0 {
		avg = float64(total) / float64(len(contigs))
	}
	fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%.2f\t%v\n", name, len(contigs), total, minLength, maxLength, avg, stats.N50(lengths))
}
