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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/padbr/circe/depth"
	"github.com/padbr/circe/internal"
	"github.com/padbr/circe/sam"
)

// DepthHelp is the help string for the depth subcommand.
const DepthHelp = "\ndepth parameters:\n" +
	"circe depth regions-file output-file [--trim nr] [--log-path path] bam-file...\n"

// DefaultRegionTrim is the number of positions shaved off both ends of
// every region before its coverage is measured.
const DefaultRegionTrim = 50

// Depth implements the circe depth subcommand. For every contig in a
// unique-regions report, the read counts and coverage statistics over
// its unique regions are tabulated for one or more sorted, indexed
// BAM files.
func Depth() error {
	var (
		trim    int
		logPath string
	)
	var flags flag.FlagSet
	flags.IntVar(&trim, "trim", DefaultRegionTrim, "positions to trim off both region ends for the coverage statistics")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	if len(os.Args) < 5 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, DepthHelp)
		os.Exit(1)
	}
	regionsFile := getFilename(os.Args[2], DepthHelp)
	output := getFilename(os.Args[3], DepthHelp)
	flags.SetOutput(ioutil.Discard)
	if err := flags.Parse(os.Args[4:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, DepthHelp)
		os.Exit(x)
	}
	bamFiles := flags.Args()
	if len(bamFiles) == 0 {
		fmt.Fprintln(os.Stderr, "No BAM files in command line.")
		fmt.Fprint(os.Stderr, DepthHelp)
		os.Exit(1)
	}

	setLogOutput(logPath)

	return runDepth(regionsFile, output, bamFiles, int32(trim))
}

func runDepth(regionsFile, output string, bamFiles []string, trim int32) (err error) {
	in := internal.FileOpen(regionsFile)
	defer internal.Close(in)

	out := internal.FileCreate(output)
	defer internal.Close(out)
	buf := bufio.NewWriter(out)
	defer func() {
		if ferr := buf.Flush(); err == nil {
			err = ferr
		}
	}()

	if err := writeDepthHeader(buf, bamFiles); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasSuffix(line, "None") {
			continue
		}
		if err := writeDepthLine(buf, line, bamFiles, trim); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func writeDepthHeader(out *bufio.Writer, bamFiles []string) error {
	fmt.Fprint(out, "Name\tLength")
	for _, bamFile := range bamFiles {
		fmt.Fprintf(out, "\t%v num reads", bamBase(bamFile))
	}
	for _, bamFile := range bamFiles {
		fmt.Fprintf(out, "\t%v avg depth", bamBase(bamFile))
	}
	for _, bamFile := range bamFiles {
		fmt.Fprintf(out, "\t%v median depth", bamBase(bamFile))
	}
	_, err := fmt.Fprint(out, "\tNR length\n")
	return err
}

func bamBase(bamFile string) string {
	return strings.TrimSuffix(filepath.Base(bamFile), ".bam")
}

func writeDepthLine(out *bufio.Writer, line string, bamFiles []string, trim int32) error {
	regions, err := depth.ParseRegionLine(line)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		return nil
	}
	name := regions[0].Name
	length, ok := sam.LengthFromContigName(name)
	if !ok {
		return fmt.Errorf("no length encoded in contig name %v", name)
	}
	trimmed, err := depth.Trim(regions, trim)
	if err != nil {
		return err
	}
	counts := make([]int, len(bamFiles))
	stats := make([]depth.Stats, len(bamFiles))
	for i, bamFile := range bamFiles {
		if counts[i], err = depth.CountReads(bamFile, regions); err != nil {
			return err
		}
		if stats[i], err = depth.Depth(bamFile, trimmed); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "%v\t%v", name, length)
	for _, count := range counts {
		fmt.Fprintf(out, "\t%v", count)
	}
	for _, s := range stats {
		fmt.Fprintf(out, "\t%v", s.MeanDepth)
	}
	for _, s := range stats {
		fmt.Fprintf(out, "\t%v", s.MedianDepth)
	}
	_, err = fmt.Fprintf(out, "\t%v\n", stats[0].Positions)
	return err
}
