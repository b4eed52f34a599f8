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

package cmd

import (
	"bufio"
	"flag"
	"os"

	"github.com/padbr/circe/blast"
	"github.com/padbr/circe/internal"
)

// UniqueRegionsHelp is the help string for the unique-regions
// subcommand.
const UniqueRegionsHelp = "\nunique-regions parameters:\n" +
	"circe unique-regions blast-file output-file\n" +
	"[--min-length nr]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"[--profile file]\n"

// UniqueRegions implements the circe unique-regions subcommand. The
// input is an all-against-all tabular blastn report of the assembly;
// for every query contig, the regions not covered by any hit against
// another contig are written out, one contig per line.
func UniqueRegions() error {
	var (
		minLength int
		logPath   string
		timed     bool
		profile   string
	)
	var flags flag.FlagSet
	flags.IntVar(&minLength, "min-length", blast.DefaultMinRegionLength, "minimum length for a reported region")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")

	parseFlags(flags, 4, UniqueRegionsHelp)

	input := getFilename(os.Args[2], UniqueRegionsHelp)
	output := getFilename(os.Args[3], UniqueRegionsHelp)

	setLogOutput(logPath)

	var runErr error
	timedRun(timed, profile, "Computing unique regions.", 1, func() {
		runErr = runUniqueRegions(input, output, int32(minLength))
	})
	return runErr
}

func runUniqueRegions(input, output string, minLength int32) (err error) {
	in := internal.FileOpen(input)
	defer internal.Close(in)

	regions, err := blast.UniqueRegions(bufio.NewReader(in), minLength)
	if err != nil {
		return err
	}

	out := internal.FileCreate(output)
	defer internal.Close(out)
	buf := bufio.NewWriter(out)
	defer func() {
		if ferr := buf.Flush(); err == nil {
			err = ferr
		}
	}()

	for _, name := range blast.SortedNames(regions) {
		if werr := blast.FormatRegions(buf, name, regions[name]); werr != nil {
			return werr
		}
	}
	return nil
}
