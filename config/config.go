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

// Package config loads assembly parameters from HCL files.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/exascience/elasm/dbg"
)

// Assembly holds the parameters of an assembly run.
type Assembly struct {
	K                  int
	TailFraction       float64
	BubbleLengthFactor int
	RemoveTails        bool
	RemoveBubbles      bool
	CheckInvariants    bool
}

// Default returns the default parameters. K has no default and must be
// set explicitly.
func Default() Assembly {
	opts := dbg.DefaultOptions()
	return Assembly{
		TailFraction:       opts.TailFraction,
		BubbleLengthFactor: opts.BubbleLengthFactor,
		RemoveTails:        opts.RemoveTails,
		RemoveBubbles:      opts.RemoveBubbles,
	}
}

// hclAssembly is the structure of a parameter file. Attributes that are
// not set keep their default values.
type hclAssembly struct {
	K                  *int     `hcl:"k,optional"`
	TailFraction       *float64 `hcl:"tail_fraction,optional"`
	BubbleLengthFactor *int     `hcl:"bubble_length_factor,optional"`
	RemoveTails        *bool    `hcl:"remove_tails,optional"`
	RemoveBubbles      *bool    `hcl:"remove_bubbles,optional"`
	CheckInvariants    *bool    `hcl:"check_invariants,optional"`
}

func (parsed *hclAssembly) applyTo(a *Assembly) {
	if parsed.K != nil {
		a.K = *parsed.K
	}
	if parsed.TailFraction != nil {
		a.TailFraction = *parsed.TailFraction
	}
	if parsed.BubbleLengthFactor != nil {
		a.BubbleLengthFactor = *parsed.BubbleLengthFactor
	}
	if parsed.RemoveTails != nil {
		a.RemoveTails = *parsed.RemoveTails
	}
	if parsed.RemoveBubbles != nil {
		a.RemoveBubbles = *parsed.RemoveBubbles
	}
	if parsed.CheckInvariants != nil {
		a.CheckInvariants = *parsed.CheckInvariants
	}
}

// Parse overlays the parameters in src, in HCL syntax, on the defaults.
func Parse(src []byte, filename string) (Assembly, error) {
	a := Default()
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return a, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	var parsed hclAssembly
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return a, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	parsed.applyTo(&a)
	return a, nil
}

// Load overlays the parameters in the given HCL file on the defaults.
func Load(filename string) (Assembly, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return Default(), err
	}
	return Parse(src, filename)
}

// Validate checks that the parameters are usable.
func (a Assembly) Validate() error {
	if a.K < 2 {
		return fmt.Errorf("%w: k-mer size %v, must be at least 2", dbg.ErrInvalidInput, a.K)
	}
	if math.IsNaN(a.TailFraction) || a.TailFraction < 0 || a.TailFraction > 1 {
		return fmt.Errorf("%w: tail fraction %v not in [0, 1]", dbg.ErrInvalidInput, a.TailFraction)
	}
	if a.BubbleLengthFactor <= 0 {
		return fmt.Errorf("%w: bubble length factor %v must be positive", dbg.ErrInvalidInput, a.BubbleLengthFactor)
	}
	return nil
}

// Options returns the simplification options for these parameters.
func (a Assembly) Options() dbg.Options {
	return dbg.Options{
		TailFraction:       a.TailFraction,
		BubbleLengthFactor: a.BubbleLengthFactor,
		RemoveTails:        a.RemoveTails,
		RemoveBubbles:      a.RemoveBubbles,
		CheckInvariants:    a.CheckInvariants,
	}
}
