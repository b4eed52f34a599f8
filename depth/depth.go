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

// Package depth reports how deeply sequencing reads cover the unique
// regions of an assembly. It drives samtools over sorted, indexed BAM
// files the same way circe decodes BAM input elsewhere, and reduces
// the per-position depths to summary statistics.
package depth

import (
	"bufio"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/padbr/circe/intervals"
)

// Stats summarizes the coverage of one set of regions in one BAM
// file. Positions samtools depth does not report count as zero
// coverage.
type Stats struct {
	Positions   int32
	MeanDepth   float64
	MedianDepth float64
}

// ParseRegionLine parses one line of a unique-regions report into its
// regions. All regions of a line belong to one contig. Lines ending
// in "None" yield nil.
func ParseRegionLine(line string) ([]intervals.Region, error) {
	line = strings.TrimRight(line, "\n")
	fields := strings.Split(line, " ")
	if len(fields) == 2 && fields[1] == "None" {
		return nil, nil
	}
	regions := make([]intervals.Region, 0, len(fields))
	for _, field := range fields {
		region, err := intervals.ParseRegion(field)
		if err != nil {
			return nil, fmt.Errorf("%v, in regions line %v", err, line)
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// Trim shaves trim positions off both ends of every region, to avoid
// mapping edge effects distorting the coverage values. An error is
// returned when trimming eats a whole region up.
func Trim(regions []intervals.Region, trim int32) ([]intervals.Region, error) {
	trimmed := make([]intervals.Region, 0, len(regions))
	for _, region := range regions {
		region.Start += trim
		region.End -= trim
		if region.Start > region.End {
			return nil, fmt.Errorf("trimming by %d eliminates region %v", trim, region)
		}
		trimmed = append(trimmed, region)
	}
	return trimmed, nil
}

// CountReads counts the distinct read names mapping to any of the
// given regions of a sorted, indexed BAM file.
func CountReads(bamFile string, regions []intervals.Region) (int, error) {
	args := []string{"view", bamFile}
	for _, region := range regions {
		args = append(args, region.String())
	}
	cmd := exec.Command("samtools", args...)
	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return 0, err
	}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	names := make(map[string]struct{})
	scanner := bufio.NewScanner(outPipe)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if index := strings.IndexByte(line, '\t'); index >= 0 {
			line = line[:index]
		}
		names[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if err := cmd.Wait(); err != nil {
		return 0, err
	}
	return len(names), nil
}

// regionDepths collects the per-position depths samtools reports for
// one region. Uncovered positions are absent from the output.
func regionDepths(bamFile string, region intervals.Region) ([]float64, error) {
	view := exec.Command("samtools", "view", "-h", bamFile, region.String())
	depthCmd := exec.Command("samtools", "depth", "-")
	viewPipe, err := view.StdoutPipe()
	if err != nil {
		return nil, err
	}
	depthCmd.Stdin = viewPipe
	depthPipe, err := depthCmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := view.Start(); err != nil {
		return nil, err
	}
	if err := depthCmd.Start(); err != nil {
		return nil, err
	}
	var depths []float64
	scanner := bufio.NewScanner(depthPipe)
	for scanner.Scan() {
		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) < 3 {
			return nil, fmt.Errorf("invalid samtools depth line %v", scanner.Text())
		}
		depthValue, err := strconv.ParseInt(cols[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%v, in samtools depth line %v", err, scanner.Text())
		}
		depths = append(depths, float64(depthValue))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := depthCmd.Wait(); err != nil {
		return nil, err
	}
	if err := view.Wait(); err != nil {
		return nil, err
	}
	return depths, nil
}

// Depth computes coverage statistics for the given trimmed regions of
// a sorted, indexed BAM file.
func Depth(bamFile string, regions []intervals.Region) (Stats, error) {
	var depths []float64
	var positions int32
	for _, region := range regions {
		positions += region.Len()
		regionDepthValues, err := regionDepths(bamFile, region)
		if err != nil {
			return Stats{}, err
		}
		depths = append(depths, regionDepthValues...)
	}
	if positions <= 0 {
		return Stats{}, fmt.Errorf("depth cannot be calculated for zero or negative length regions %v", regions)
	}
	return Summarize(depths, positions), nil
}

// Summarize pads the reported depths with zeroes up to the number of
// assessed positions and reduces them to mean and median.
func Summarize(depths []float64, positions int32) Stats {
	padded := make([]float64, positions)
	copy(padded, depths)
	mean := stat.Mean(padded, nil)
	sort.Float64s(padded)
	median := stat.Quantile(0.5, stat.Empirical, padded, nil)
	return Stats{
		Positions:   positions,
		MeanDepth:   mean,
		MedianDepth: median,
	}
}
