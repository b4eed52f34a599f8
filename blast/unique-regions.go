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

package blast

import (
	"bufio"
	"fmt"
	"sort"

	"github.com/exascience/pargo/pipeline"
	"github.com/willf/bitset"

	"github.com/padbr/circe/intervals"
	"github.com/padbr/circe/sam"
)

// DefaultMinRegionLength is the default minimum length for a reported
// unique region.
const DefaultMinRegionLength = 1000

// UniqueRegions scans an all-versus-all tabular blastn report and
// returns, for every query sequence in the report, the regions of at
// least minLen consecutive positions that no other sequence of the
// assembly hits. Contig lengths are taken from the _length_ pattern
// in the query names; a query name without one is an error. A contig
// whose every position is covered by foreign hits maps to an empty
// slice.
func UniqueRegions(input *bufio.Reader, minLen int32) (map[string][]intervals.Interval, error) {
	covered := make(map[string][]intervals.Interval)
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		strs := data.([]string)
		batch := make(map[string][]intervals.Interval)
		for _, str := range strs {
			hit, err := ParseHit(str)
			if err != nil {
				p.SetErr(err)
				return batch
			}
			if _, found := batch[hit.QSeqID]; !found {
				batch[hit.QSeqID] = nil
			}
			if hit.IsSelfHit() {
				continue
			}
			batch[hit.QSeqID] = append(batch[hit.QSeqID], intervals.Interval{Start: hit.QStart, End: hit.QEnd})
		}
		return batch
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for name, hits := range data.(map[string][]intervals.Interval) {
			if _, found := covered[name]; !found {
				covered[name] = nil
			}
			covered[name] = append(covered[name], hits...)
		}
		return data
	})))
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}

	unique := make(map[string][]intervals.Interval, len(covered))
	for name, hits := range covered {
		size, ok := sam.LengthFromContigName(name)
		if !ok {
			return nil, fmt.Errorf("no length encoded in query name %v", name)
		}
		intervals.ParallelSortByStart(hits)
		hits = intervals.ParallelFlatten(hits)
		unique[name] = uncoveredRuns(coverageMask(size, hits), uint(size), uint(minLen))
	}
	return unique, nil
}

// coverageMask marks every 0-based position hit by another sequence.
// The hit intervals must be flattened.
func coverageMask(size int32, hits []intervals.Interval) *bitset.BitSet {
	mask := bitset.New(uint(size))
	for _, hit := range hits {
		start, end := hit.Start, hit.End
		if start < 1 {
			start = 1
		}
		if end > size {
			end = size
		}
		for position := start; position <= end; position++ {
			mask.Set(uint(position - 1))
		}
	}
	return mask
}

// uncoveredRuns extracts the runs of at least minLen clear bits as
// 1-based inclusive intervals.
func uncoveredRuns(mask *bitset.BitSet, size, minLen uint) []intervals.Interval {
	var runs []intervals.Interval
	for i := uint(0); i < size; {
		start, ok := mask.NextClear(i)
		if !ok || start >= size {
			break
		}
		end, ok := mask.NextSet(start)
		if !ok || end > size {
			end = size
		}
		if end-start >= minLen {
			runs = append(runs, intervals.Interval{Start: int32(start + 1), End: int32(end)})
		}
		i = end + 1
	}
	return runs
}

// FormatRegions renders the unique regions of one contig the way the
// depth command consumes them: space-separated name:start-stop
// regions, or "name None" when there are none.
func FormatRegions(out *bufio.Writer, name string, regions []intervals.Interval) error {
	if len(regions) == 0 {
		_, err := fmt.Fprintln(out, name, "None")
		return err
	}
	for i, region := range regions {
		if i > 0 {
			if err := out.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(out, intervals.Region{Name: name, Interval: region}); err != nil {
			return err
		}
	}
	return out.WriteByte('\n')
}

// SortedNames returns the contig names of a unique-regions map in
// deterministic order.
func SortedNames(unique map[string][]intervals.Interval) []string {
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
