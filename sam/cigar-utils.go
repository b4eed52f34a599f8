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

func operatorConsumesReadBases(operator byte) bool {
	switch operator {
	case 'M', 'I', 'S', '=', 'X':
		return true
	default:
		return false
	}
}

func operatorConsumesReferenceBases(operator byte) bool {
	switch operator {
	case 'M', 'D', 'N', '=', 'X':
		return true
	default:
		return false
	}
}

// ReadLengthFromCigar sums the lengths of all CIGAR operations that
// consume read bases, which is the length of the original read.
func ReadLengthFromCigar(cigars []CigarOperation) int32 {
	var length int32
	for _, op := range cigars {
		if operatorConsumesReadBases(op.Operation) {
			length += op.Length
		}
	}
	return length
}

// AlignmentLengthFromCigar sums the lengths of all CIGAR operations
// that consume reference bases, which is the span of the alignment on
// the reference.
func AlignmentLengthFromCigar(cigars []CigarOperation) int32 {
	var length int32
	for _, op := range cigars {
		if operatorConsumesReferenceBases(op.Operation) {
			length += op.Length
		}
	}
	return length
}

// MatchedReadRange returns the minimum and maximum 1-based positions
// along the read that are aligned to the reference, excluding
// soft-clipped ends. Soft clips advance the read cursor without
// contributing positions; hard clips, padding, deletions and skips do
// not advance the cursor at all. Returns ok=false when no read
// position is aligned, such as a fully soft-clipped record.
func MatchedReadRange(cigars []CigarOperation) (start, stop int32, ok bool) {
	var cursor int32
	for _, op := range cigars {
		switch op.Operation {
		case 'M', 'I', '=', 'X':
			if !ok {
				start = cursor + 1
				ok = true
			}
			cursor += op.Length
			stop = cursor
		case 'S':
			cursor += op.Length
		}
	}
	if !ok {
		return 0, 0, false
	}
	return start, stop, true
}
