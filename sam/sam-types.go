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

package sam

import (
	"regexp"
	"strconv"
	"sync"
)

// An Alignment is a single mapping of a read against a reference, as
// parsed from one line of a headless SAM file. The eleven mandatory
// fields are parsed into typed values; any trailing optional fields
// are kept verbatim in TAGS so the original line can be reproduced in
// evidence output.
type Alignment struct {
	QNAME string
	FLAG  uint16
	RNAME string
	POS   int32
	MAPQ  byte
	CIGAR string
	RNEXT string
	PNEXT int32
	TLEN  int32
	SEQ   string
	QUAL  string
	TAGS  []string
}

// The bits of the FLAG field.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

// IsMultiple checks the FLAG against 0x1 (read paired).
func (aln *Alignment) IsMultiple() bool { return (aln.FLAG & Multiple) != 0 }

// IsProper checks the FLAG against 0x2 (read mapped in proper pair).
func (aln *Alignment) IsProper() bool { return (aln.FLAG & Proper) != 0 }

// IsUnmapped checks the FLAG against 0x4 (read unmapped).
func (aln *Alignment) IsUnmapped() bool { return (aln.FLAG & Unmapped) != 0 }

// IsNextUnmapped checks the FLAG against 0x8 (mate unmapped).
func (aln *Alignment) IsNextUnmapped() bool { return (aln.FLAG & NextUnmapped) != 0 }

// IsReversed checks the FLAG against 0x10 (read reverse strand).
func (aln *Alignment) IsReversed() bool { return (aln.FLAG & Reversed) != 0 }

// IsNextReversed checks the FLAG against 0x20 (mate reverse strand).
func (aln *Alignment) IsNextReversed() bool { return (aln.FLAG & NextReversed) != 0 }

// IsFirst checks the FLAG against 0x40 (first in pair).
func (aln *Alignment) IsFirst() bool { return (aln.FLAG & First) != 0 }

// IsLast checks the FLAG against 0x80 (second in pair).
func (aln *Alignment) IsLast() bool { return (aln.FLAG & Last) != 0 }

// IsSecondary checks the FLAG against 0x100 (secondary alignment).
func (aln *Alignment) IsSecondary() bool { return (aln.FLAG & Secondary) != 0 }

// IsQCFailed checks the FLAG against 0x200 (failed platform checks).
func (aln *Alignment) IsQCFailed() bool { return (aln.FLAG & QCFailed) != 0 }

// IsDuplicate checks the FLAG against 0x400 (PCR or optical duplicate).
func (aln *Alignment) IsDuplicate() bool { return (aln.FLAG & Duplicate) != 0 }

// IsSupplementary checks the FLAG against 0x800 (supplementary alignment).
func (aln *Alignment) IsSupplementary() bool { return (aln.FLAG & Supplementary) != 0 }

var contigLengthRegexp = regexp.MustCompile(`_length_(\d+)`)

// LengthFromContigName extracts the total contig length that
// assemblers such as SPAdes encode in reference sequence names, for
// example NODE_1_length_44130_cov_12.8 or Contig_1297_length_1635.
// Returns false if the name does not encode a length.
func LengthFromContigName(name string) (int32, bool) {
	m := contigLengthRegexp.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	length, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(length), true
}

// CigarOperations contains the CIGAR operation codes that consume
// read and/or reference bases.
const CigarOperations = "MIDNSHPX="

var cigarOperationsTable = make(map[byte]byte, len(CigarOperations))

func init() {
	for _, c := range CigarOperations {
		cigarOperationsTable[byte(c)] = byte(c)
	}
}

func isDigit(char byte) bool { return ('0' <= char) && (char <= '9') }

// A CigarOperation is a single run-length entry of a CIGAR string.
type CigarOperation struct {
	Length    int32
	Operation byte
}

var (
	cigarSliceCache      = map[string][]CigarOperation{}
	cigarSliceCacheMutex = sync.RWMutex{}
)

// slowScanCigarString keeps only maximal \d+[MIDNSHPX=] tokens; any
// characters outside that grammar are dropped without an error, the
// way the upstream scanning step always behaved.
func slowScanCigarString(cigar string) []CigarOperation {
	slice := []CigarOperation{}
	for i := 0; i < len(cigar); {
		if !isDigit(cigar[i]) {
			i++
			continue
		}
		j := i
		for j < len(cigar) && isDigit(cigar[j]) {
			j++
		}
		if j == len(cigar) {
			break
		}
		if operation := cigarOperationsTable[cigar[j]]; operation != 0 {
			if length, err := strconv.ParseInt(cigar[i:j], 10, 32); err == nil {
				slice = append(slice, CigarOperation{int32(length), operation})
			}
		}
		i = j + 1
	}
	cigarSliceCacheMutex.Lock()
	if value, found := cigarSliceCache[cigar]; found {
		slice = value
	} else {
		cigarSliceCache[cigar] = slice
	}
	cigarSliceCacheMutex.Unlock()
	return slice
}

// ScanCigarString parses a CIGAR string into its operations. The "*"
// sentinel means that no CIGAR was computed for the alignment, in
// which case ok is false and no geometry can be derived from the
// record. Parsed strings are cached, since CIGAR strings in real
// files repeat a lot.
func ScanCigarString(cigar string) (ops []CigarOperation, ok bool) {
	if cigar == "*" {
		return nil, false
	}
	cigarSliceCacheMutex.RLock()
	value, found := cigarSliceCache[cigar]
	cigarSliceCacheMutex.RUnlock()
	if found {
		return value, true
	}
	return slowScanCigarString(cigar), true
}
