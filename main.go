// circe: a tool for assessing contig circularity from sequencing alignments.
// Copyright (c) 2021 Patrick Denis Browne.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// circe assesses the circularity of assembled contigs from
// name-sorted sequencing alignments.
//
// Please see http://github.com/padbr/circe for a documentation of the
// tool, and below for the API documentation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/padbr/circe/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: bridge, unique-regions, depth")
	fmt.Fprint(os.Stderr, "\n", cmd.BridgeHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.UniqueRegionsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.DepthHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "bridge":
		err = cmd.Bridge()
	case "unique-regions":
		err = cmd.UniqueRegions()
	case "depth":
		err = cmd.Depth()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
