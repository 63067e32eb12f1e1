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

package intervals

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"
)

// ElsitesHeader is the header line that every .elsites file starts with.
const ElsitesHeader = "# elsites format version 1.0\n"

// WriteSites stores the covered intervals of every reference sequence
// in .elsites format, one tab-separated name, start and end per line.
func WriteSites(w io.Writer, coverage []Coverage) error {
	out := bufio.NewWriter(w)
	if _, err := out.WriteString(ElsitesHeader); err != nil {
		return err
	}
	var buf []byte
	for _, c := range coverage {
		for _, interval := range c.Intervals {
			buf = append(buf[:0], c.Name...)
			buf = append(buf, '\t')
			buf = strconv.AppendInt(buf, int64(interval.Start), 10)
			buf = append(buf, '\t')
			buf = strconv.AppendInt(buf, int64(interval.End), 10)
			buf = append(buf, '\n')
			if _, err := out.Write(buf); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}

func parseSite(line string) (name string, interval Interval, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 || fields[0] == "" {
		return "", interval, fmt.Errorf("invalid sites line %v", line)
	}
	start, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return "", interval, err
	}
	end, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return "", interval, err
	}
	return fields[0], Interval{Start: int32(start), End: int32(end)}, nil
}

// ReadSites loads intervals from .elsites data. Lines are parsed in
// parallel, and intervals are kept in file order per sequence.
func ReadSites(r io.Reader) (intervals map[string][]Interval, err error) {
	input := bufio.NewReader(r)
	header, err := input.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if header != ElsitesHeader {
		return nil, fmt.Errorf("not an .elsites file - invalid header %q", header)
	}
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		batch := make(map[string][]Interval)
		for _, line := range data.([]string) {
			name, interval, err := parseSite(line)
			if err != nil {
				p.SetErr(err)
				return batch
			}
			batch[name] = append(batch[name], interval)
		}
		return batch
	})))
	intervals = make(map[string][]Interval)
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for name, ivals := range data.(map[string][]Interval) {
			intervals[name] = append(intervals[name], ivals...)
		}
		return data
	})))
	p.Run()
	if err = p.Err(); err != nil {
		return nil, err
	}
	return intervals, nil
}
