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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternerPacked(t *testing.T) {
	in := NewInterner(2)
	for i, seq := range []string{"AT", "TG", "GG", "GA"} {
		id, created := in.Intern(seq)
		require.True(t, created)
		require.Equal(t, int32(i), id)
	}
	id, created := in.Intern("TG")
	require.False(t, created)
	require.Equal(t, int32(1), id)
	require.Equal(t, 4, in.Len())

	id, ok := in.Lookup("GA")
	require.True(t, ok)
	require.Equal(t, int32(3), id)
	_, ok = in.Lookup("CC")
	require.False(t, ok)
	_, ok = in.Lookup("CCC")
	require.False(t, ok)
	require.Equal(t, 4, in.Len())
}

func TestInternerLongSequences(t *testing.T) {
	width := maxPackedWidth + 8
	a := strings.Repeat("A", width)
	c := strings.Repeat("C", width)
	in := NewInterner(width)
	id, created := in.Intern(a)
	require.True(t, created)
	require.Equal(t, int32(0), id)
	id, created = in.Intern(c)
	require.True(t, created)
	require.Equal(t, int32(1), id)
	id, created = in.Intern(a)
	require.False(t, created)
	require.Equal(t, int32(0), id)
	id, ok := in.Lookup(c)
	require.True(t, ok)
	require.Equal(t, int32(1), id)
}

func TestInternerWidthMismatch(t *testing.T) {
	in := NewInterner(3)
	require.Panics(t, func() { in.Intern("AC") })
}
