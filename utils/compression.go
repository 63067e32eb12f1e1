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

package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/exascience/elasm/utils/bgzf"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the compression format of a file.
type Compression int

// The supported compression formats.
const (
	Uncompressed Compression = iota
	Gzip
	BGZF
	Zstd
	Snappy
)

func (c Compression) String() string {
	switch c {
	case Uncompressed:
		return "uncompressed"
	case Gzip:
		return "gzip"
	case BGZF:
		return "bgzf"
	case Zstd:
		return "zstd"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

var (
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// DetectCompression determines the compression format of buf by
// looking at its initial bytes, without consuming them.
func DetectCompression(buf *bufio.Reader) Compression {
	if bgzf.IsBGZF(buf) {
		return BGZF
	}
	if magic, _ := buf.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return Gzip
	}
	if magic, _ := buf.Peek(len(zstdMagic)); bytes.Equal(magic, zstdMagic) {
		return Zstd
	}
	if magic, _ := buf.Peek(len(snappyMagic)); bytes.Equal(magic, snappyMagic) {
		return Snappy
	}
	return Uncompressed
}

// HandleCompression checks if buf produces a compressed file, and
// returns a reader that decompresses it. Uncompressed input is returned
// unchanged. Closing the result does not close buf.
func HandleCompression(buf *bufio.Reader) (io.ReadCloser, Compression, error) {
	switch c := DetectCompression(buf); c {
	case BGZF:
		r, err := bgzf.NewReader(buf)
		return r, c, err
	case Gzip:
		r, err := gzip.NewReader(buf)
		return r, c, err
	case Zstd:
		r, err := zstd.NewReader(buf)
		if err != nil {
			return nil, c, err
		}
		return r.IOReadCloser(), c, nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(buf)), c, nil
	default:
		return io.NopCloser(buf), c, nil
	}
}

// CompressionFromFilename determines the compression format of an
// output file from its extension: .gz and .bgz for BGZF, .zst for zstd,
// and .sz for snappy.
func CompressionFromFilename(filename string) Compression {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz", ".bgz":
		return BGZF
	case ".zst":
		return Zstd
	case ".sz":
		return Snappy
	default:
		return Uncompressed
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// NewCompressedWriter returns a writer that compresses to w. Closing the
// result flushes it, but does not close w.
func NewCompressedWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Uncompressed:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case BGZF:
		return bgzf.NewWriter(w, gzip.DefaultCompression), nil
	case Zstd:
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return encoder, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression %v", c)
	}
}
