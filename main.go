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

// elasm assembles DNA sequences from sequencing reads with a de Bruijn
// graph.
//
// Please see https://github.com/exascience/elasm for a documentation
// of the tool, and below (and/or
// https://godoc.org/github.com/ExaScience/elasm) for the API
// documentation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elasm/cmd"
	"github.com/exascience/elasm/utils"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: assemble, contig-stats, version")
	fmt.Fprint(os.Stderr, "\n", cmd.AssembleHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ContigStatsHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprintln(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "assemble":
		err = cmd.Assemble()
	case "contig-stats":
		err = cmd.ContigStats()
	case "version", "-version", "--version":
		fmt.Println(utils.ProgramName, utils.ProgramVersion)
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
