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

package reads

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/elasm/dbg"
	"github.com/exascience/elasm/internal"
	"github.com/exascience/elasm/utils"
)

const (
	minBatchSize = 256
	maxBatchSize = 16384
)

// maxLoggedSkips limits the number of skipped reads that are logged
// individually.
const maxLoggedSkips = 10

// A Sink receives reads in file order. *dbg.Graph is a Sink.
type Sink interface {
	AddRead(read string) error
}

// Options control Load.
type Options struct {
	// Progress shows a progress bar over the input bytes on stderr.
	Progress bool
	// Size is the size of the input in bytes, used for the progress bar.
	Size int64
}

// Stats summarize a Load.
type Stats struct {
	Format      Format
	Compression utils.Compression
	// Reads is the number of reads accepted by the sink.
	Reads int
	// Skipped is the number of reads the sink rejected as invalid.
	Skipped int
	// Bases is the total length of the accepted reads.
	Bases int64
}

// Load parses all reads from r, which may be compressed, and passes
// them in file order to sink. Reads are normalized to upper case in
// parallel. Reads that the sink rejects with dbg.ErrInvalidInput are
// skipped and counted, any other error from the sink aborts the load.
func Load(r io.Reader, sink Sink, opts Options) (stats Stats, err error) {
	if opts.Progress {
		bar := pb.Full.Start64(opts.Size)
		bar.Set(pb.Bytes, true)
		defer bar.Finish()
		r = bar.NewProxyReader(r)
	}
	decompressed, compression, err := utils.HandleCompression(bufio.NewReader(r))
	if err != nil {
		return stats, err
	}
	defer func() {
		if nerr := decompressed.Close(); err == nil {
			err = nerr
		}
	}()
	stats.Compression = compression
	src, err := NewSource(decompressed)
	if err != nil {
		return stats, err
	}
	stats.Format = src.Format()

	var p pipeline.Pipeline
	p.Source(src)
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			batch := data.([]string)
			for i, read := range batch {
				batch[i] = strings.ToUpper(read)
			}
			return batch
		})),
		pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, read := range data.([]string) {
				if err := sink.AddRead(read); err != nil {
					if !errors.Is(err, dbg.ErrInvalidInput) {
						p.SetErr(err)
						return nil
					}
					if stats.Skipped < maxLoggedSkips {
						log.Printf("Skipping read %v: %v", stats.Reads+stats.Skipped+1, err)
					}
					stats.Skipped++
					continue
				}
				stats.Reads++
				stats.Bases += int64(len(read))
			}
			return nil
		})),
	)
	p.Run()
	return stats, p.Err()
}

// LoadFile opens the given file and loads its reads into sink.
func LoadFile(filename string, sink Sink, opts Options) (Stats, error) {
	f, err := internal.FileOpen(filename)
	if err != nil {
		return Stats{}, err
	}
	defer internal.Close(f)
	if opts.Progress && opts.Size == 0 {
		if info, err := f.Stat(); err == nil {
			opts.Size = info.Size()
		}
	}
	return Load(f, sink, opts)
}
