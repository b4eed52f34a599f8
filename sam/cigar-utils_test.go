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

func scanCigar(t *testing.T, cigar string) []CigarOperation {
	t.Helper()
	cigars, ok := ScanCigarString(cigar)
	if !ok {
		t.Fatal("failed to scan CIGAR string ", cigar)
	}
	return cigars
}

func TestReadLengthFromCigar(t *testing.T) {
	if length := ReadLengthFromCigar(scanCigar(t, "100M")); length != 100 {
		t.Error("ReadLengthFromCigar 1 failed")
	}
	if length := ReadLengthFromCigar(scanCigar(t, "10S80M10S")); length != 100 {
		t.Error("ReadLengthFromCigar 2 failed")
	}
	if length := ReadLengthFromCigar(scanCigar(t, "50M10D50M")); length != 100 {
		t.Error("ReadLengthFromCigar 3 failed")
	}
	if length := ReadLengthFromCigar(scanCigar(t, "50M5I45M")); length != 100 {
		t.Error("ReadLengthFromCigar 4 failed")
	}
	if length := ReadLengthFromCigar(scanCigar(t, "10H90M")); length != 90 {
		t.Error("ReadLengthFromCigar 5 failed")
	}
	if length := ReadLengthFromCigar(scanCigar(t, "40=10X50=")); length != 100 {
		t.Error("ReadLengthFromCigar 6 failed")
	}
	if length := ReadLengthFromCigar(nil); length != 0 {
		t.Error("ReadLengthFromCigar 7 failed")
	}
}

func TestAlignmentLengthFromCigar(t *testing.T) {
	if length := AlignmentLengthFromCigar(scanCigar(t, "100M")); length != 100 {
		t.Error("AlignmentLengthFromCigar 1 failed")
	}
	if length := AlignmentLengthFromCigar(scanCigar(t, "10S80M10S")); length != 80 {
		t.Error("AlignmentLengthFromCigar 2 failed")
	}
	if length := AlignmentLengthFromCigar(scanCigar(t, "50M10D50M")); length != 110 {
		t.Error("AlignmentLengthFromCigar 3 failed")
	}
	if length := AlignmentLengthFromCigar(scanCigar(t, "50M5I45M")); length != 95 {
		t.Error("AlignmentLengthFromCigar 4 failed")
	}
	if length := AlignmentLengthFromCigar(scanCigar(t, "20M1000N30M")); length != 1050 {
		t.Error("AlignmentLengthFromCigar 5 failed")
	}
}

func TestMatchedReadRange(t *testing.T) {
	if start, stop, ok := MatchedReadRange(scanCigar(t, "100M")); !ok || start != 1 || stop != 100 {
		t.Error("MatchedReadRange 1 failed")
	}
	if start, stop, ok := MatchedReadRange(scanCigar(t, "10S80M10S")); !ok || start != 11 || stop != 90 {
		t.Error("MatchedReadRange 2 failed")
	}
	if start, stop, ok := MatchedReadRange(scanCigar(t, "10S90M")); !ok || start != 11 || stop != 100 {
		t.Error("MatchedReadRange 3 failed")
	}
	if start, stop, ok := MatchedReadRange(scanCigar(t, "90M10S")); !ok || start != 1 || stop != 90 {
		t.Error("MatchedReadRange 4 failed")
	}
	// insertions and matches both advance the matched range
	if start, stop, ok := MatchedReadRange(scanCigar(t, "5S10M5I10M70S")); !ok || start != 6 || stop != 30 {
		t.Error("MatchedReadRange 5 failed")
	}
	// deletions consume no read positions
	if start, stop, ok := MatchedReadRange(scanCigar(t, "10S40M20D40M10S")); !ok || start != 11 || stop != 90 {
		t.Error("MatchedReadRange 6 failed")
	}
	// hard clips are absent from the read sequence
	if start, stop, ok := MatchedReadRange(scanCigar(t, "10H90M")); !ok || start != 1 || stop != 90 {
		t.Error("MatchedReadRange 7 failed")
	}
	if _, _, ok := MatchedReadRange(scanCigar(t, "100S")); ok {
		t.Error("MatchedReadRange 8 failed")
	}
	if _, _, ok := MatchedReadRange(nil); ok {
		t.Error("MatchedReadRange 9 failed")
	}
}
