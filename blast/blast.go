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

// Package blast parses tabular blastn reports and derives the unique
// regions of an assembly from an all-versus-all search.
//
// The expected report is the non-canonical 15-column output of
//
//	blastn -outfmt "6 qseqid sseqid pident length mismatch gapopen
//	qstart qend sstart send evalue bitscore qlen slen gaps"
package blast

import (
	"fmt"
	"strconv"
	"strings"
)

// A Hit is one line of the 15-column tabular blastn report.
type Hit struct {
	QSeqID   string
	SSeqID   string
	PIdent   float64
	Length   int32
	Mismatch int32
	GapOpen  int32
	QStart   int32
	QEnd     int32
	SStart   int32
	SEnd     int32
	EValue   float64
	BitScore float64
	QLen     int32
	SLen     int32
	Gaps     int32
}

const hitColumns = 15

// ParseHit parses one tabular blastn line into a Hit.
func ParseHit(line string) (hit Hit, err error) {
	cols := strings.Split(line, "\t")
	if len(cols) != hitColumns {
		return hit, fmt.Errorf("blastn hit has %d columns, expected %d: %v", len(cols), hitColumns, line)
	}
	parseInt := func(s string) int32 {
		value, nerr := strconv.ParseInt(s, 10, 32)
		if (nerr != nil) && (err == nil) {
			err = nerr
		}
		return int32(value)
	}
	parseFloat := func(s string) float64 {
		value, nerr := strconv.ParseFloat(s, 64)
		if (nerr != nil) && (err == nil) {
			err = nerr
		}
		return value
	}
	hit.QSeqID = cols[0]
	hit.SSeqID = cols[1]
	hit.PIdent = parseFloat(cols[2])
	hit.Length = parseInt(cols[3])
	hit.Mismatch = parseInt(cols[4])
	hit.GapOpen = parseInt(cols[5])
	hit.QStart = parseInt(cols[6])
	hit.QEnd = parseInt(cols[7])
	hit.SStart = parseInt(cols[8])
	hit.SEnd = parseInt(cols[9])
	hit.EValue = parseFloat(cols[10])
	hit.BitScore = parseFloat(cols[11])
	hit.QLen = parseInt(cols[12])
	hit.SLen = parseInt(cols[13])
	hit.Gaps = parseInt(cols[14])
	if err != nil {
		return Hit{}, fmt.Errorf("%v, while parsing blastn hit %v", err, line)
	}
	return hit, nil
}

// IsSelfHit reports whether the query and subject are the same
// sequence.
func (hit *Hit) IsSelfHit() bool {
	return hit.QSeqID == hit.SSeqID
}

// IsFullSelfHit reports whether the hit is the perfect full-length
// match of a sequence against itself.
func (hit *Hit) IsFullSelfHit() bool {
	return hit.IsSelfHit() &&
		hit.QStart == 1 && hit.QEnd == hit.QLen &&
		hit.SStart == 1 && hit.SEnd == hit.SLen &&
		hit.QLen == hit.SLen && hit.Mismatch == 0
}

// IsFullReverse reports whether the hit is a perfect full-length
// match of the subject in reverse orientation.
func (hit *Hit) IsFullReverse() bool {
	return hit.QLen == hit.SLen &&
		hit.QStart == 1 && hit.QEnd == hit.QLen &&
		hit.SStart == hit.SLen && hit.SEnd == 1 &&
		hit.Mismatch == 0
}

// AreSameLength reports whether subject and query have the same
// length. Usually combined with IsSelfHit to pick out duplicated
// contigs.
func (hit *Hit) AreSameLength() bool {
	return hit.QLen == hit.SLen
}
