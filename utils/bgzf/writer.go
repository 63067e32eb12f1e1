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

package bgzf

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"sync"

	"github.com/exascience/pargo/pipeline"
	"github.com/klauspost/compress/flate"
)

// maxPayload keeps a compressed block within maxBlockSize even when
// deflate cannot shrink the data.
const maxPayload = maxBlockSize - 1024

// Writer compresses into a BGZF stream. Blocks are deflated in parallel
// by a pargo pipeline and written in order.
type Writer struct {
	w       io.Writer
	level   int
	p       pipeline.Pipeline
	wait    sync.WaitGroup
	pending []byte
	blocks  chan []byte
	done    chan struct{}
	closed  bool
}

type sink struct {
	writer *Writer
	data   interface{}
}

func (*sink) Err() error {
	return nil
}

func (*sink) Prepare(_ context.Context) (size int) {
	return -1
}

func (s *sink) Fetch(_ int) (fetched int) {
	if payload, ok := <-s.writer.blocks; ok {
		s.data = payload
		return 1
	}
	s.data = nil
	return 0
}

func (s *sink) Data() interface{} {
	return s.data
}

var deflaterPools sync.Map

func (writer *Writer) deflater(out io.Writer) (*flate.Writer, error) {
	pool, _ := deflaterPools.LoadOrStore(writer.level, new(sync.Pool))
	if pooled := pool.(*sync.Pool).Get(); pooled != nil {
		deflater := pooled.(*flate.Writer)
		deflater.Reset(out)
		return deflater, nil
	}
	return flate.NewWriter(out, writer.level)
}

func (writer *Writer) release(deflater *flate.Writer) {
	pool, _ := deflaterPools.Load(writer.level)
	pool.(*sync.Pool).Put(deflater)
}

// compress turns a payload into a complete BGZF member.
func (writer *Writer) compress(payload []byte) ([]byte, error) {
	var member bytes.Buffer
	member.Grow(len(payload) + 64)
	member.Write([]byte{
		0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xff, 0x06, 0x00,
		'B', 'C', 0x02, 0x00, 0x00, 0x00,
	})
	deflater, err := writer.deflater(&member)
	if err != nil {
		return nil, err
	}
	defer writer.release(deflater)
	if _, err := deflater.Write(payload); err != nil {
		return nil, err
	}
	if err := deflater.Close(); err != nil {
		return nil, err
	}
	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc32.ChecksumIEEE(payload))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(payload)))
	member.Write(trailer[:])
	result := member.Bytes()
	if len(result) > maxBlockSize {
		return nil, fmt.Errorf("bgzf: compressed block of %v bytes exceeds %v", len(result), maxBlockSize)
	}
	binary.LittleEndian.PutUint16(result[16:18], uint16(len(result)-1))
	return result, nil
}

// NewWriter returns a Writer that compresses to w at the given flate
// compression level. The Writer must be closed to flush the last block
// and the EOF marker.
func NewWriter(w io.Writer, level int) *Writer {
	writer := &Writer{
		w:       w,
		level:   level,
		pending: make([]byte, 0, maxPayload),
		blocks:  make(chan []byte, 1),
		done:    make(chan struct{}),
	}
	writer.p.Source(&sink{writer: writer})
	writer.p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			member, err := writer.compress(data.([]byte))
			if err != nil {
				writer.p.SetErr(err)
			}
			return member
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			if _, err := w.Write(data.([]byte)); err != nil {
				writer.p.SetErr(err)
			}
			return nil
		})),
	)
	writer.wait.Add(1)
	go func() {
		defer writer.wait.Done()
		defer close(writer.done)
		writer.p.Run()
	}()
	return writer
}

func (writer *Writer) flush() {
	if len(writer.pending) == 0 {
		return
	}
	select {
	case writer.blocks <- writer.pending:
	case <-writer.done:
	}
	writer.pending = make([]byte, 0, maxPayload)
}

// Write implements io.Writer.
func (writer *Writer) Write(p []byte) (n int, err error) {
	if writer.closed {
		return 0, io.ErrClosedPipe
	}
	if err := writer.p.Err(); err != nil {
		return 0, err
	}
	n = len(p)
	for len(p) > 0 {
		k := copy(writer.pending[len(writer.pending):maxPayload], p)
		writer.pending = writer.pending[:len(writer.pending)+k]
		p = p[k:]
		if len(writer.pending) == maxPayload {
			writer.flush()
		}
	}
	return n, nil
}

// Close implements io.Closer. It does not close the underlying writer.
func (writer *Writer) Close() error {
	if writer.closed {
		return nil
	}
	writer.closed = true
	writer.flush()
	close(writer.blocks)
	writer.wait.Wait()
	if err := writer.p.Err(); err != nil {
		return err
	}
	_, err := writer.w.Write(eofMarker)
	return err
}
