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

// Package bgzf reads and writes BGZF files, the blocked gzip format used
// for sequencing data, compressing and decompressing blocks in parallel.
// A BGZF file is a valid multi-member gzip file.
package bgzf

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"sync"

	"github.com/exascience/pargo/pipeline"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// maxBlockSize is the maximum size of a BGZF block, compressed or not.
const maxBlockSize = 65536

// headerSize is the size of a gzip member header with a single BC
// extra subfield.
const headerSize = 18

var eofMarker = []byte{
	0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0xff, 0x06, 0x00,
	0x42, 0x43, 0x02, 0x00, 0x1b, 0x00,
	0x03, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

// ErrNoBlockSize is returned for gzip members without a BC subfield.
var ErrNoBlockSize = errors.New("bgzf: missing BC extra subfield in gzip header")

// IsBGZF determines whether buf starts with a gzip member that carries
// a BGZF block size. It only peeks at buf.
func IsBGZF(buf *bufio.Reader) bool {
	header, err := buf.Peek(headerSize)
	if err != nil {
		return false
	}
	return header[0] == 0x1f && header[1] == 0x8b &&
		header[3]&0x04 != 0 &&
		header[12] == 'B' && header[13] == 'C'
}

type block struct {
	data []byte
	crc  uint32
	size uint32
}

var blockPool = sync.Pool{New: func() interface{} {
	return &block{data: make([]byte, 0, maxBlockSize)}
}}

// Reader decompresses a BGZF stream. Blocks are inflated in parallel by
// a pargo pipeline and delivered in order.
type Reader struct {
	r      flate.Reader
	gz     *gzip.Reader
	p      pipeline.Pipeline
	wait   sync.WaitGroup
	blocks chan *block
	ctx    context.Context
	cancel func()

	current *block
	index   int
}

// source is the pipeline.Source side of a Reader, fetching one
// compressed block at a time.
type source struct {
	reader *Reader
	err    error
	data   interface{}
}

func (src *source) readBlock() (*block, error) {
	gz := src.reader.gz
	extra := gz.Extra
	for i := 0; i+4 <= len(extra); {
		length := int(binary.LittleEndian.Uint16(extra[i+2 : i+4]))
		if extra[i] == 'B' && extra[i+1] == 'C' && length == 2 && i+6 <= len(extra) {
			blockSize := int(binary.LittleEndian.Uint16(extra[i+4:i+6])) + 1
			return src.finishBlock(blockPool.Get().(*block), blockSize, len(extra))
		}
		i += 4 + length
	}
	return nil, ErrNoBlockSize
}

// finishBlock reads the deflate payload and the gzip trailer of the
// current member, and positions the gzip reader at the next header. A
// member consists of a 12-byte fixed header, the extra field, the
// payload, and an 8-byte trailer.
func (src *source) finishBlock(b *block, blockSize, extraLength int) (*block, error) {
	r := src.reader.r
	b.data = b.data[:blockSize-12-extraLength-8]
	if _, err := io.ReadFull(r, b.data); err != nil {
		return nil, err
	}
	var trailer [8]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, err
	}
	b.crc = binary.LittleEndian.Uint32(trailer[0:4])
	b.size = binary.LittleEndian.Uint32(trailer[4:8])
	err := src.reader.gz.Reset(r)
	if err == io.EOF {
		if b.size != 0 {
			return b, errors.New("bgzf: missing EOF marker")
		}
		return b, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("bgzf: %w", err)
	}
	return b, nil
}

// Err implements the corresponding method of pipeline.Source.
func (src *source) Err() error {
	if src.err != io.EOF {
		return src.err
	}
	return nil
}

// Prepare implements the corresponding method of pipeline.Source.
func (*source) Prepare(_ context.Context) (size int) {
	return -1
}

// Fetch implements the corresponding method of pipeline.Source.
func (src *source) Fetch(_ int) (fetched int) {
	if src.err != nil {
		src.data = nil
		return 0
	}
	b, err := src.readBlock()
	if err != nil {
		src.err = err
		if b == nil {
			src.data = nil
			return 0
		}
	}
	src.data = b
	return 1
}

// Data implements the corresponding method of pipeline.Source.
func (src *source) Data() interface{} {
	return src.data
}

var inflaterPool sync.Pool

func inflate(p *pipeline.Pipeline, compressed *block) *block {
	in := bytes.NewReader(compressed.data)
	var inflater io.ReadCloser
	if pooled := inflaterPool.Get(); pooled != nil {
		inflater = pooled.(io.ReadCloser)
		if err := inflater.(flate.Resetter).Reset(in, nil); err != nil {
			inflater = flate.NewReader(in)
		}
	} else {
		inflater = flate.NewReader(in)
	}
	defer inflaterPool.Put(inflater)
	defer blockPool.Put(compressed)
	result := blockPool.Get().(*block)
	result.data = result.data[:int(compressed.size)]
	if _, err := io.ReadFull(inflater, result.data); err == io.EOF {
		p.SetErr(io.ErrUnexpectedEOF)
	} else if err != nil {
		p.SetErr(err)
	} else if crc32.ChecksumIEEE(result.data) != compressed.crc {
		p.SetErr(errors.New("bgzf: CRC-32 mismatch"))
	}
	if err := inflater.Close(); err != nil {
		p.SetErr(err)
	}
	return result
}

// NewReader returns a Reader that decompresses r. The Reader must be
// closed to release its goroutines.
func NewReader(r io.Reader) (*Reader, error) {
	fr, ok := r.(flate.Reader)
	if !ok {
		fr = bufio.NewReader(r)
	}
	gz, err := gzip.NewReader(fr)
	if err != nil {
		return nil, fmt.Errorf("bgzf: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	reader := &Reader{
		r:      fr,
		gz:     gz,
		blocks: make(chan *block, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	reader.p.Source(&source{reader: reader})
	reader.p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			return inflate(&reader.p, data.(*block))
		})),
		pipeline.StrictOrd(pipeline.ReceiveAndFinalize(func(_ int, data interface{}) interface{} {
			select {
			case <-reader.ctx.Done():
			case reader.blocks <- data.(*block):
			}
			return nil
		}, func() {
			close(reader.blocks)
		})),
	)
	reader.wait.Add(1)
	go func() {
		defer reader.wait.Done()
		reader.p.Run()
	}()
	return reader, nil
}

// Read implements io.Reader.
func (reader *Reader) Read(p []byte) (n int, err error) {
	for reader.current == nil || reader.index == len(reader.current.data) {
		if reader.current != nil {
			blockPool.Put(reader.current)
			reader.current = nil
		}
		select {
		case <-reader.ctx.Done():
			return 0, reader.ctx.Err()
		case b, ok := <-reader.blocks:
			if !ok {
				reader.wait.Wait()
				if err := reader.p.Err(); err != nil {
					return 0, err
				}
				return 0, io.EOF
			}
			reader.current, reader.index = b, 0
		}
	}
	n = copy(p, reader.current.data[reader.index:])
	reader.index += n
	return n, nil
}

// Close implements io.Closer.
func (reader *Reader) Close() error {
	reader.cancel()
	reader.wait.Wait()
	if err := reader.gz.Close(); err != nil {
		return err
	}
	return reader.p.Err()
}
