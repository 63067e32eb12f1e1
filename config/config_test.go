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

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/elasm/dbg"
)

func TestParse(t *testing.T) {
	a, err := Parse([]byte(`
k                    = 31
tail_fraction        = 0.1
remove_bubbles       = false
check_invariants     = true
`), "test.hcl")
	require.NoError(t, err)
	require.Equal(t, Assembly{
		K:                  31,
		TailFraction:       0.1,
		BubbleLengthFactor: 2,
		RemoveTails:        true,
		RemoveBubbles:      false,
		CheckInvariants:    true,
	}, a)
	require.NoError(t, a.Validate())

	opts := a.Options()
	require.Equal(t, 0.1, opts.TailFraction)
	require.False(t, opts.RemoveBubbles)
	require.True(t, opts.CheckInvariants)
}

func TestParseEmpty(t *testing.T) {
	a, err := Parse(nil, "empty.hcl")
	require.NoError(t, err)
	require.Equal(t, Default(), a)
	require.ErrorIs(t, a.Validate(), dbg.ErrInvalidInput)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`k = `,
		`k = "many"`,
		`unknown = 1`,
	} {
		_, err := Parse([]byte(src), "bad.hcl")
		require.Error(t, err, src)
	}
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "elasm.hcl")
	require.NoError(t, os.WriteFile(name, []byte("k = 21\nbubble_length_factor = 3\n"), 0o644))
	a, err := Load(name)
	require.NoError(t, err)
	require.Equal(t, 21, a.K)
	require.Equal(t, 3, a.BubbleLengthFactor)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.K = 3
	require.NoError(t, valid.Validate())
	for _, modify := range []func(*Assembly){
		func(a *Assembly) { a.K = 1 },
		func(a *Assembly) { a.TailFraction = -0.5 },
		func(a *Assembly) { a.TailFraction = math.NaN() },
		func(a *Assembly) { a.BubbleLengthFactor = 0 },
	} {
		a := valid
		modify(&a)
		require.ErrorIs(t, a.Validate(), dbg.ErrInvalidInput)
	}
}
