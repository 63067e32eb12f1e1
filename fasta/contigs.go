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

package fasta

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/exascience/elasm/dbg"
	"github.com/exascience/elasm/internal"
	"github.com/exascience/elasm/utils"
)

// DefaultLineWidth is the number of bases per line in contig files.
const DefaultLineWidth = 60

// ContigName returns the FASTA name of the contig with the given index.
func ContigName(index int) string {
	return fmt.Sprintf("contig_%d", index+1)
}

// WriteContigs writes every edge as a FASTA record, in order. The
// description records length, coverage and end vertices.
func WriteContigs(w io.Writer, contigs []dbg.Edge, width int) error {
	out := biofasta.NewWriter(w, width)
	for i, contig := range contigs {
		s := linear.NewSeq(ContigName(i), alphabet.BytesToLetters([]byte(contig.Label)), alphabet.DNA)
		s.Desc = fmt.Sprintf("len=%d cov=%.4f from=%d to=%d", contig.Len(), contig.Coverage, contig.From, contig.To)
		if _, err := out.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// WriteContigsFile writes contigs to the given file, compressed
// according to its extension.
func WriteContigsFile(filename string, contigs []dbg.Edge) (err error) {
	f, err := internal.FileCreate(filename)
	if err != nil {
		return err
	}
	defer internal.Close(f)
	w, err := utils.NewCompressedWriter(f, utils.CompressionFromFilename(filename))
	if err != nil {
		return err
	}
	defer func() {
		if nerr := w.Close(); err == nil {
			err = nerr
		}
	}()
	return WriteContigs(w, contigs, DefaultLineWidth)
}
