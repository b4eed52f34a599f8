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

package bridge

import (
	"github.com/padbr/circe/sam"
)

// A Kind says what kind of origin-bridging evidence a pair of
// alignments provides, if any.
type Kind int

const (
	// NoBridge means the pair provides no bridging evidence.
	NoBridge Kind = iota
	// SingleRead means one physical read is split across both contig
	// ends.
	SingleRead
	// PairedRead means the two mates of a pair map to opposite sides
	// of the origin.
	PairedRead
)

// Orientation labels which mate of a pair came first in the evaluated
// order.
type Orientation int

const (
	// Unoriented is the orientation of non-paired verdicts.
	Unoriented Orientation = iota
	// R1R2 means the first record is the first-in-pair mate.
	R1R2
	// R2R1 means the first record is the second-in-pair mate.
	R2R1
)

func (o Orientation) String() string {
	switch o {
	case R1R2:
		return "R1R2"
	case R2R1:
		return "R2R1"
	default:
		return "unoriented"
	}
}

// A Verdict is the outcome of evaluating an ordered pair of
// alignments of one read.
type Verdict struct {
	Kind        Kind
	Orientation Orientation
}

// DefaultMaxInsertSize is the default bound on the wrap-around span
// tolerated for paired-read evidence.
const DefaultMaxInsertSize = 500

// An Evaluator holds the configuration for bridge evaluation. Both
// checks are pure predicate evaluations; an Evaluator carries no
// state across calls.
type Evaluator struct {
	MaxInsertSize int32
}

// commonStrand checks that a and b are both mapped, are segments of
// the same physical read (both first-in-pair or both second-in-pair),
// and map to the same strand. reverse reports which strand that is.
func commonStrand(a, b *sam.Alignment) (reverse, ok bool) {
	if a.IsUnmapped() || b.IsUnmapped() {
		return false, false
	}
	if a.IsFirst() != b.IsFirst() {
		return false, false
	}
	if !a.IsReversed() && !b.IsReversed() {
		return false, true
	}
	if a.IsReversed() && b.IsReversed() {
		return true, true
	}
	return false, false
}

// SingleReadSegment determines whether two partial alignments of the
// same read are consistent with that read running across the origin
// of a circular contig. On the forward strand, the segment that comes
// later in the read must map before the segment that comes earlier on
// the reference, and the gap wrapped around the origin must fit
// within the read; the reverse strand mirrors this. The two
// directions of the pair are evaluated independently.
func SingleReadSegment(a, b *sam.Alignment) bool {
	reverse, ok := commonStrand(a, b)
	if !ok {
		return false
	}
	if a.RNAME != b.RNAME {
		return false
	}
	templateLength, ok := sam.LengthFromContigName(a.RNAME)
	if !ok {
		return false
	}
	aCigar, aok := sam.ScanCigarString(a.CIGAR)
	bCigar, bok := sam.ScanCigarString(b.CIGAR)
	if !aok || !bok {
		return false
	}
	readLength := sam.ReadLengthFromCigar(aCigar)
	aStart, aStop, aok := sam.MatchedReadRange(aCigar)
	bStart, bStop, bok := sam.MatchedReadRange(bCigar)
	if !aok || !bok {
		return false
	}
	aAlnLength := sam.AlignmentLengthFromCigar(aCigar)
	bAlnLength := sam.AlignmentLengthFromCigar(bCigar)

	if !reverse {
		if aStop < bStart && a.POS > b.POS+bAlnLength &&
			templateLength-a.POS+b.POS+bAlnLength <= readLength {
			return true
		}
		if bStop < aStart && b.POS > a.POS+aAlnLength &&
			templateLength-b.POS+a.POS+aAlnLength <= readLength {
			return true
		}
	} else {
		if aStop < bStart && a.POS+aAlnLength < b.POS &&
			templateLength-b.POS+a.POS+aAlnLength <= readLength {
			return true
		}
		if bStop < aStart && b.POS+bAlnLength < a.POS &&
			templateLength-a.POS+b.POS+bAlnLength <= readLength {
			return true
		}
	}
	return false
}

// pairedOrientation checks that a and b are both mapped, paired, and
// complementary mates of one pair, and labels the order they were
// passed in.
func pairedOrientation(a, b *sam.Alignment) (Orientation, bool) {
	if !a.IsMultiple() || !b.IsMultiple() {
		return Unoriented, false
	}
	if a.IsUnmapped() || b.IsUnmapped() {
		return Unoriented, false
	}
	if a.IsFirst() && b.IsLast() {
		return R1R2, true
	}
	if a.IsLast() && b.IsFirst() {
		return R2R1, true
	}
	return Unoriented, false
}

// PairedRead determines whether the two mates of a read pair are
// consistent with an insert that runs across the origin of a circular
// contig: the mates map to opposite strands with the reverse mate
// downstream of the forward mate on the reference, and the implied
// wrap-around insert does not exceed MaxInsertSize.
func (e Evaluator) PairedRead(a, b *sam.Alignment) (Orientation, bool) {
	if a.RNAME != b.RNAME {
		return Unoriented, false
	}
	orientation, ok := pairedOrientation(a, b)
	if !ok {
		return Unoriented, false
	}
	templateLength, ok := sam.LengthFromContigName(a.RNAME)
	if !ok {
		return Unoriented, false
	}
	aCigar, aok := sam.ScanCigarString(a.CIGAR)
	bCigar, bok := sam.ScanCigarString(b.CIGAR)
	if !aok || !bok {
		return Unoriented, false
	}
	aStart, aStop, aok := sam.MatchedReadRange(aCigar)
	bStart, bStop, bok := sam.MatchedReadRange(bCigar)
	if !aok || !bok {
		return Unoriented, false
	}
	aSpan := aStop - aStart + 1
	bSpan := bStop - bStart + 1

	if a.IsReversed() && !b.IsReversed() &&
		a.POS > b.POS+bSpan &&
		templateLength-a.POS+b.POS+bSpan <= e.MaxInsertSize {
		return orientation, true
	}
	if b.IsReversed() && !a.IsReversed() &&
		b.POS > a.POS+aSpan &&
		templateLength-b.POS+a.POS+aSpan <= e.MaxInsertSize {
		return orientation, true
	}
	return Unoriented, false
}

// Evaluate applies both bridge checks to an ordered pair of
// alignments of one read. The checks are mutually exclusive: the
// single-read check requires both records to be the same mate, the
// paired check requires them to be complementary mates.
func (e Evaluator) Evaluate(a, b *sam.Alignment) Verdict {
	if SingleReadSegment(a, b) {
		return Verdict{Kind: SingleRead}
	}
	if orientation, ok := e.PairedRead(a, b); ok {
		return Verdict{Kind: PairedRead, Orientation: orientation}
	}
	return Verdict{}
}
