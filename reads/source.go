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

// Package reads parses sequencing reads from FASTQ and FASTA files and
// feeds them to a de Bruijn graph.
package reads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// Format is the file format of a read file.
type Format int

// The supported read file formats.
const (
	FASTQ Format = iota
	FASTA
)

func (f Format) String() string {
	switch f {
	case FASTQ:
		return "FASTQ"
	case FASTA:
		return "FASTA"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrUnknownFormat is returned for input that is neither FASTQ nor FASTA.
var ErrUnknownFormat = errors.New("reads: unknown read file format")

// DetectFormat determines the format of buf from its first record
// marker, without consuming it. Empty input is reported as FASTA.
func DetectFormat(buf *bufio.Reader) (Format, error) {
	first, err := buf.Peek(1)
	if err == io.EOF {
		return FASTA, nil
	} else if err != nil {
		return 0, err
	}
	switch first[0] {
	case '@':
		return FASTQ, nil
	case '>':
		return FASTA, nil
	default:
		return 0, fmt.Errorf("%w: unexpected first byte %q", ErrUnknownFormat, first[0])
	}
}

// Source is a pipeline.Source that fetches batches of reads as
// []string values, in file order.
type Source struct {
	format  Format
	scanner *seqio.Scanner
	data    []string
}

// NewSource returns a Source for the reads in r, which must be
// uncompressed FASTQ or FASTA.
func NewSource(r io.Reader) (*Source, error) {
	buf, ok := r.(*bufio.Reader)
	if !ok {
		buf = bufio.NewReader(r)
	}
	format, err := DetectFormat(buf)
	if err != nil {
		return nil, err
	}
	var reader seqio.Reader
	switch format {
	case FASTQ:
		reader = fastq.NewReader(buf, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger))
	case FASTA:
		reader = fasta.NewReader(buf, linear.NewSeq("", nil, alphabet.DNA))
	}
	return &Source{format: format, scanner: seqio.NewScanner(reader)}, nil
}

// Format returns the format of the underlying file.
func (src *Source) Format() Format {
	return src.format
}

func letters(s seq.Sequence) string {
	result := make([]byte, 0, s.Len())
	for i := s.Start(); i < s.End(); i++ {
		result = append(result, byte(s.At(i).L))
	}
	return string(result)
}

// Err implements the method of the pipeline.Source interface.
func (src *Source) Err() error {
	return src.scanner.Error()
}

// Prepare implements the method of the pipeline.Source interface.
func (*Source) Prepare(_ context.Context) (size int) {
	return -1
}

// Fetch implements the method of the pipeline.Source interface.
func (src *Source) Fetch(size int) (fetched int) {
	var batch []string
	for fetched = 0; fetched < size && src.scanner.Next(); fetched++ {
		batch = append(batch, letters(src.scanner.Seq()))
	}
	src.data = batch
	return fetched
}

// Data implements the method of the pipeline.Source interface.
func (src *Source) Data() interface{} {
	return src.data
}
