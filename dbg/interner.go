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
	"log"

	"github.com/shenwei356/kmers"
)

// maxPackedWidth is the longest sequence that fits in a 2-bit packed uint64.
const maxPackedWidth = 32

// An Interner maps (k-1)-mers to dense vertex IDs, allocating IDs in
// order of first sight. Sequences of at most 32 bases are packed into
// uint64 keys, longer ones are kept as strings.
type Interner struct {
	width  int
	packed map[uint64]int32
	named  map[string]int32
	next   int32
}

// NewInterner returns an Interner for sequences of the given width.
func NewInterner(width int) *Interner {
	in := &Interner{width: width}
	if width <= maxPackedWidth {
		in.packed = make(map[uint64]int32)
	} else {
		in.named = make(map[string]int32)
	}
	return in
}

func (in *Interner) code(seq string) uint64 {
	code, err := kmers.Encode([]byte(seq))
	if err != nil {
		log.Panicf("cannot intern %v: %v", seq, err)
	}
	return code
}

// Intern returns the ID for seq, allocating the next sequential ID if
// seq has not been seen before. created reports whether a new ID was
// allocated.
func (in *Interner) Intern(seq string) (id int32, created bool) {
	if len(seq) != in.width {
		log.Panicf("cannot intern %v: expected width %v", seq, in.width)
	}
	if in.packed != nil {
		code := in.code(seq)
		if id, ok := in.packed[code]; ok {
			return id, false
		}
		id = in.next
		in.packed[code] = id
		in.next++
		return id, true
	}
	if id, ok := in.named[seq]; ok {
		return id, false
	}
	id = in.next
	in.named[seq] = id
	in.next++
	return id, true
}

// Lookup returns the ID for seq without allocating one.
func (in *Interner) Lookup(seq string) (int32, bool) {
	if len(seq) != in.width {
		return -1, false
	}
	if in.packed != nil {
		code, err := kmers.Encode([]byte(seq))
		if err != nil {
			return -1, false
		}
		id, ok := in.packed[code]
		return id, ok
	}
	id, ok := in.named[seq]
	return id, ok
}

// Len returns the number of interned sequences.
func (in *Interner) Len() int {
	return int(in.next)
}
