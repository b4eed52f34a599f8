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
	"testing"
)

func cigarsEqual(cigars1, cigars2 []CigarOperation) bool {
	if len(cigars1) != len(cigars2) {
		return false
	}
	for i, cigar1 := range cigars1 {
		if cigar1 != cigars2[i] {
			return false
		}
	}
	return true
}

func TestScanCigarString(t *testing.T) {
	if _, ok := ScanCigarString("*"); ok {
		t.Error("ScanCigarString * failed")
	}
	cigars, ok := ScanCigarString("100M")
	if !ok || !cigarsEqual(cigars, []CigarOperation{{100, 'M'}}) {
		t.Error("ScanCigarString 1 failed")
	}
	cigars, ok = ScanCigarString("10S80M10S")
	if !ok || !cigarsEqual(cigars, []CigarOperation{{10, 'S'}, {80, 'M'}, {10, 'S'}}) {
		t.Error("ScanCigarString 2 failed")
	}
	cigars, ok = ScanCigarString("5H10M2I30M3D40M")
	if !ok || !cigarsEqual(cigars, []CigarOperation{{5, 'H'}, {10, 'M'}, {2, 'I'}, {30, 'M'}, {3, 'D'}, {40, 'M'}}) {
		t.Error("ScanCigarString 3 failed")
	}
	cigars, ok = ScanCigarString("12=3X")
	if !ok || !cigarsEqual(cigars, []CigarOperation{{12, '='}, {3, 'X'}}) {
		t.Error("ScanCigarString 4 failed")
	}
	// tokens outside the \d+[MIDNSHPX=] grammar are dropped silently
	cigars, ok = ScanCigarString("3Q4M")
	if !ok || !cigarsEqual(cigars, []CigarOperation{{4, 'M'}}) {
		t.Error("ScanCigarString 5 failed")
	}
	cigars, ok = ScanCigarString("12")
	if !ok || len(cigars) != 0 {
		t.Error("ScanCigarString 6 failed")
	}
	cigars, ok = ScanCigarString("M")
	if !ok || len(cigars) != 0 {
		t.Error("ScanCigarString 7 failed")
	}
	// cached and uncached scans agree
	cigars1, _ := ScanCigarString("33S66M1S")
	cigars2, _ := ScanCigarString("33S66M1S")
	if !cigarsEqual(cigars1, cigars2) {
		t.Error("ScanCigarString 8 failed")
	}
}

func TestLengthFromContigName(t *testing.T) {
	if length, ok := LengthFromContigName("NODE_1_length_44130_cov_12.8"); !ok || length != 44130 {
		t.Error("LengthFromContigName 1 failed")
	}
	if length, ok := LengthFromContigName("Contig_1297_length_1635"); !ok || length != 1635 {
		t.Error("LengthFromContigName 2 failed")
	}
	if length, ok := LengthFromContigName("k141_5_length_972_x_2"); !ok || length != 972 {
		t.Error("LengthFromContigName 3 failed")
	}
	if _, ok := LengthFromContigName("chr1"); ok {
		t.Error("LengthFromContigName 4 failed")
	}
	if _, ok := LengthFromContigName("NODE_1_length_"); ok {
		t.Error("LengthFromContigName 5 failed")
	}
}

func TestFlagPredicates(t *testing.T) {
	aln := &Alignment{FLAG: Multiple | Reversed | First}
	if !aln.IsMultiple() || !aln.IsReversed() || !aln.IsFirst() {
		t.Error("flag predicates 1 failed")
	}
	if aln.IsUnmapped() || aln.IsLast() || aln.IsSecondary() || aln.IsSupplementary() {
		t.Error("flag predicates 2 failed")
	}
	aln = &Alignment{FLAG: Multiple | Unmapped | Last}
	if !aln.IsMultiple() || !aln.IsUnmapped() || !aln.IsLast() {
		t.Error("flag predicates 3 failed")
	}
	if aln.IsReversed() || aln.IsFirst() {
		t.Error("flag predicates 4 failed")
	}
}
