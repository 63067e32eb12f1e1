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

package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.fa", "a.fa", "c.fa"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(">c\nACGT\n"), 0o644))
	}
	files, err := Directory(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.fa", "b.fa", "c.fa"}, files)

	files, err = Directory(filepath.Join(dir, "b.fa"))
	require.NoError(t, err)
	require.Equal(t, []string{"b.fa"}, files)

	_, err = Directory(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestFileCreateAndOpen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out", "contigs.fa")
	MkdirAll(filepath.Dir(name), 0o700)
	f, err := FileCreate(name)
	require.NoError(t, err)
	_, err = f.WriteString("ACGT")
	require.NoError(t, err)
	Close(f)

	f, err = FileOpen(name)
	require.NoError(t, err)
	defer Close(f)
	data := make([]byte, 4)
	_, err = f.Read(data)
	require.NoError(t, err)
	require.Equal(t, "ACGT", string(data))

	stdin, err := FileOpen("-")
	require.NoError(t, err)
	require.Same(t, os.Stdin, stdin)
	require.NotPanics(t, func() { Close(stdin) })
}

func TestFullPathname(t *testing.T) {
	full, err := FullPathname("/tmp/reads.fq")
	require.NoError(t, err)
	require.Equal(t, "/tmp/reads.fq", full)
	full, err = FullPathname("reads.fq")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(full))
}
