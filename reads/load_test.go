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

package reads

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/elasm/dbg"
	"github.com/exascience/elasm/utils"
)

type recorder struct {
	reads []string
}

func (r *recorder) AddRead(read string) error {
	if strings.ContainsAny(read, "N") {
		return fmt.Errorf("%w: %v", dbg.ErrInvalidInput, read)
	}
	r.reads = append(r.reads, read)
	return nil
}

func fastqRecord(name, read string) string {
	return fmt.Sprintf("@%v\n%v\n+\n%v\n", name, read, strings.Repeat("I", len(read)))
}

func TestDetectFormat(t *testing.T) {
	for input, want := range map[string]Format{
		"@r1\nACGT\n+\nIIII\n": FASTQ,
		">c1\nACGT\n":          FASTA,
		"":                     FASTA,
	} {
		format, err := DetectFormat(bufio.NewReader(strings.NewReader(input)))
		require.NoError(t, err)
		require.Equal(t, want, format)
	}
	_, err := DetectFormat(bufio.NewReader(strings.NewReader("ACGT\n")))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadFASTQ(t *testing.T) {
	var input strings.Builder
	input.WriteString(fastqRecord("r1", "acgtac"))
	input.WriteString(fastqRecord("r2", "ACGNAC"))
	input.WriteString(fastqRecord("r3", "TTGCAA"))
	var sink recorder
	stats, err := Load(strings.NewReader(input.String()), &sink, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"ACGTAC", "TTGCAA"}, sink.reads)
	require.Equal(t, Stats{Format: FASTQ, Compression: utils.Uncompressed, Reads: 2, Skipped: 1, Bases: 12}, stats)
}

func TestLoadFASTA(t *testing.T) {
	input := ">c1 first\nACGT\nTTGA\n>c2\nGGCC\n"
	var sink recorder
	stats, err := Load(strings.NewReader(input), &sink, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"ACGTTTGA", "GGCC"}, sink.reads)
	require.Equal(t, FASTA, stats.Format)
}

func TestLoadKeepsOrder(t *testing.T) {
	var input bytes.Buffer
	var want []string
	for i := 0; i < 50000; i++ {
		read := strings.Repeat("ACGT"[i%4:i%4+1], 3) + fmt.Sprintf("%b", i)
		read = strings.NewReplacer("0", "A", "1", "C").Replace(read)
		want = append(want, read)
		input.WriteString(fastqRecord(fmt.Sprint(i), read))
	}
	var compressed bytes.Buffer
	w, err := utils.NewCompressedWriter(&compressed, utils.BGZF)
	require.NoError(t, err)
	_, err = w.Write(input.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var sink recorder
	stats, err := Load(&compressed, &sink, Options{})
	require.NoError(t, err)
	require.Equal(t, utils.BGZF, stats.Compression)
	require.Equal(t, len(want), stats.Reads)
	require.Equal(t, want, sink.reads)
}

type failing struct{}

var errFull = errors.New("full")

func (failing) AddRead(string) error {
	return errFull
}

func TestLoadSinkError(t *testing.T) {
	_, err := Load(strings.NewReader(fastqRecord("r1", "ACGT")), failing{}, Options{})
	require.ErrorIs(t, err, errFull)
}

func TestLoadFileIntoGraph(t *testing.T) {
	name := filepath.Join(t.TempDir(), "reads.fq")
	require.NoError(t, os.WriteFile(name, []byte(fastqRecord("r1", "ATGGA")+fastqRecord("r2", "AT")), 0o644))
	g, err := dbg.NewGraph(3)
	require.NoError(t, err)
	stats, err := LoadFile(name, g, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, stats.Reads)
	require.Equal(t, 1, stats.Skipped)
	require.Equal(t, 4, g.NumVertices())
	require.Equal(t, 3, g.NumEdges())
}
