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

// Package export writes de Bruijn graphs in Graphviz DOT format.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/exascience/elasm/dbg"
	"github.com/exascience/elasm/internal"
)

// maxLabel is the longest edge label shown in full. Longer labels are
// abbreviated to their first and last bases.
const maxLabel = 24

func abbreviate(label string) string {
	if len(label) <= maxLabel {
		return label
	}
	half := maxLabel/2 - 2
	return label[:half] + "..." + label[len(label)-half:]
}

func nodeName(v int32) string {
	return strconv.Itoa(int(v))
}

// Dot returns the graph in DOT format. Empty vertices are left out.
// Every edge is labeled with its (abbreviated) sequence, length and
// coverage.
func Dot(g *dbg.Graph, name string) (string, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName(name); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}
	edges := g.Edges()
	for v := int32(0); v < int32(edges.Len()); v++ {
		if edges.IsEmpty(v) {
			continue
		}
		if err := graph.AddNode(name, nodeName(v), map[string]string{
			"shape": "point",
		}); err != nil {
			return "", err
		}
	}
	for _, e := range g.Contigs() {
		label := fmt.Sprintf("%s\\nlen=%d cov=%.2f", abbreviate(e.Label), e.Len(), e.Coverage)
		if err := graph.AddEdge(nodeName(e.From), nodeName(e.To), true, map[string]string{
			"label": `"` + label + `"`,
		}); err != nil {
			return "", err
		}
	}
	return graph.String(), nil
}

// WriteDot writes the graph in DOT format to w.
func WriteDot(w io.Writer, g *dbg.Graph, name string) error {
	dot, err := Dot(g, name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, dot)
	return err
}

// WriteDotFile writes the graph in DOT format to the given file.
func WriteDotFile(filename string, g *dbg.Graph) error {
	f, err := internal.FileCreate(filename)
	if err != nil {
		return err
	}
	defer internal.Close(f)
	return WriteDot(f, g, "G")
}
