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
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/padbr/circe/bridge"
	"github.com/padbr/circe/internal"
	"github.com/padbr/circe/sam"
)

// BridgeHelp is the help string for the bridge subcommand.
const BridgeHelp = "\nbridge parameters:\n" +
	"circe bridge sam-file\n" +
	"[--max-insert-size nr]\n" +
	"[--config name]\n" +
	"[--config-path dir]\n" +
	"[--output file]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"[--profile file]\n"

// Bridge implements the circe bridge subcommand. The input must be a
// headless, name-sorted SAM file (or a BAM/CRAM file, decoded through
// samtools view). Every read group is checked for alignment pairs that
// bridge the two ends of a contig, the supporting alignments are
// printed, and per-contig counts are reported at the end.
func Bridge() error {
	var (
		maxInsertSize          int
		configName, configPath string
		output, logPath        string
		timed                  bool
		profile                string
	)
	var flags flag.FlagSet
	flags.IntVar(&maxInsertSize, "max-insert-size", 0, "maximum tolerated span for a bridging read pair")
	flags.StringVar(&configName, "config", "", "name of a configuration file to read max_insert_size from")
	flags.StringVar(&configPath, "config-path", "", "directory to search for the configuration file")
	flags.StringVar(&output, "output", "", "write the evidence and counts to a file instead of standard output")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")

	parseFlags(flags, 3, BridgeHelp)

	input := getFilename(os.Args[2], BridgeHelp)

	setLogOutput(logPath)

	if maxInsertSize == 0 {
		maxInsertSize = bridge.DefaultMaxInsertSize
		if configName != "" {
			viper.SetConfigName(configName)
			if configPath == "" {
				configPath = "."
			}
			viper.AddConfigPath(configPath)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
			if value := viper.GetInt("max_insert_size"); value > 0 {
				maxInsertSize = value
			}
		}
	}
	if maxInsertSize < 0 {
		return fmt.Errorf("invalid maximum insert size %v", maxInsertSize)
	}

	// print execution info
	fmt.Fprintln(os.Stderr, "Executing command:\n", os.Args)
	fullInput, err := internal.FullPathname(input)
	if err != nil {
		return err
	}
	log.Println("Input file:", fullInput)
	log.Println("Maximum insert size:", maxInsertSize)

	var runErr error
	timedRun(timed, profile, "Detecting bridging alignments.", 1, func() {
		runErr = runBridge(input, output, int32(maxInsertSize))
	})
	return runErr
}

func runBridge(input, output string, maxInsertSize int32) (err error) {
	inputFile, err := sam.Open(input)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := inputFile.Close(); err == nil {
			err = cerr
		}
	}()

	out := os.Stdout
	if output != "" {
		out = internal.FileCreate(output)
		defer internal.Close(out)
	}
	buf := bufio.NewWriter(out)
	defer func() {
		if ferr := buf.Flush(); err == nil {
			err = ferr
		}
	}()

	evaluator := bridge.Evaluator{MaxInsertSize: maxInsertSize}
	tally := bridge.NewTally()
	groups, err := sam.NewReadGroupReader(inputFile)
	if err != nil {
		return err
	}
	for {
		group, gerr := groups.ReadGroup()
		if gerr == io.EOF {
			break
		}
		if gerr != nil {
			return gerr
		}
		tally.Groups++
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				verdict := evaluator.Evaluate(group[i], group[j])
				if verdict.Kind == bridge.NoBridge {
					continue
				}
				if werr := bridge.WriteEvidence(buf, group[i], group[j]); werr != nil {
					return werr
				}
				tally.Add(verdict, group[i].RNAME)
			}
		}
	}
	return tally.Report(buf)
}
