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

// Package fasta reads reference sequences and writes assembled contigs
// in FASTA format.
package fasta

import (
	"bufio"
	"fmt"
	"unicode"

	"github.com/exascience/elasm/internal"
	"github.com/exascience/elasm/utils"
)

// Sequence is a named sequence from a FASTA file.
type Sequence struct {
	Name string
	Seq  []byte
}

func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	j := i + 1
	if j > len(b) {
		j = len(b)
	}
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	return string(b[i:j])
}

var iupacTable = map[byte]byte{
	'N': 'N', 'n': 'N',
	'R': 'N', 'r': 'N',
	'Y': 'N', 'y': 'N',
	'M': 'N', 'm': 'N',
	'K': 'N', 'k': 'N',
	'W': 'N', 'w': 'N',
	'S': 'N', 's': 'N',
	'B': 'N', 'b': 'N',
	'D': 'N', 'd': 'N',
	'H': 'N', 'h': 'N',
	'V': 'N', 'v': 'N',
}

// ToN can be used to normalize ambiguity codes in FASTA references.
func ToN(base byte) byte {
	if n, ok := iupacTable[base]; ok {
		return n
	}
	return base
}

// ParseFasta sequentially parses a FASTA file, which may be compressed,
// and returns its sequences in file order.
//
// If toUpper is true, the contents are converted to upper case.
// If toN is true, ambiguity codes are normalized to N.
func ParseFasta(filename string, toUpper, toN bool) (fasta []Sequence, err error) {
	f, err := internal.FileOpen(filename)
	if err != nil {
		return nil, err
	}
	defer internal.Close(f)

	r, _, err := utils.HandleCompression(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := r.Close(); err == nil {
			err = nerr
		}
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	current := -1
	for scanner.Scan() {
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		if b[0] == '>' {
			fasta = append(fasta, Sequence{Name: contigFromHeader(b)})
			current = len(fasta) - 1
			continue
		}
		if current < 0 {
			return nil, fmt.Errorf("invalid fasta file %v - missing first header", filename)
		}
		if toUpper {
			for i, c := range b {
				b[i] = byte(unicode.ToUpper(rune(c)))
			}
		}
		if toN {
			for i, c := range b {
				b[i] = ToN(c)
			}
		}
		fasta[current].Seq = append(fasta[current].Seq, b...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current < 0 {
		return nil, fmt.Errorf("empty fasta file %v", filename)
	}
	return fasta, nil
}
