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
	"testing"

	"github.com/exascience/elasm/fasta"
)

func TestWriteContigStats(t *testing.T) {
	var buf bytes.Buffer
	writeContigStats(&buf, "contigs.fa", []fasta.Sequence{
		{Name: "contig_1", Seq: []byte("ACGTACGTAC")},
		{Name: "contig_2", Seq: []byte("ACG")},
		{Name: "contig_3", Seq: []byte("ACGTAC")},
	})
	if got, want := buf.String(), "contigs.fa\t3\t19\t3\t10\t6.33\t10\n"; got != want {
		t.Errorf("writeContigStats = %q, want %q", got, want)
	}

	buf.Reset()
	writeContigStats(&buf, "empty.fa", nil)
	if got, want := buf.String(), "empty.fa\t0\t0\t0\t0\t0.00\t0\n"; got != want {
		t.Errorf("writeContigStats = %q, want %q", got, want)
	}
}
