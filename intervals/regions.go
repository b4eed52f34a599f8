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

package intervals

import (
	"fmt"
	"regexp"
	"strconv"
)

// A Region is an interval on a named reference sequence, written
// name:start-stop with 1-based inclusive coordinates. This is the
// format samtools accepts and the format of the unique-regions
// report.
type Region struct {
	Name string
	Interval
}

var regionRegexp = regexp.MustCompile(`^([^:]+):(\d+)-(\d+)$`)

// ParseRegion parses a name:start-stop region string.
func ParseRegion(s string) (Region, error) {
	m := regionRegexp.FindStringSubmatch(s)
	if m == nil {
		return Region{}, fmt.Errorf("invalid region %v", s)
	}
	start, err := strconv.ParseInt(m[2], 10, 32)
	if err != nil {
		return Region{}, fmt.Errorf("%v, while parsing region %v", err, s)
	}
	stop, err := strconv.ParseInt(m[3], 10, 32)
	if err != nil {
		return Region{}, fmt.Errorf("%v, while parsing region %v", err, s)
	}
	if start > stop {
		return Region{}, fmt.Errorf("region start after stop in %v", s)
	}
	return Region{Name: m[1], Interval: Interval{Start: int32(start), End: int32(stop)}}, nil
}

// String formats the region the way ParseRegion expects it.
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Name, r.Start, r.End)
}

// Len returns the number of positions the region covers.
func (r Region) Len() int32 {
	return r.End - r.Start + 1
}
