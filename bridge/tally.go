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
	"bufio"
	"fmt"
	"sort"

	"github.com/padbr/circe/internal"
	"github.com/padbr/circe/sam"
)

// A Tally accumulates bridging evidence counts per reference and
// overall while a stream of read groups is scanned.
type Tally struct {
	Groups     int
	SingleHits int
	PairedHits int

	SingleByReference map[string]int
	PairedByReference map[string]int
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{
		SingleByReference: make(map[string]int),
		PairedByReference: make(map[string]int),
	}
}

// Add records a non-NoBridge verdict for the given reference name.
func (t *Tally) Add(verdict Verdict, reference string) {
	switch verdict.Kind {
	case SingleRead:
		t.SingleByReference[reference]++
		t.SingleHits++
	case PairedRead:
		t.PairedByReference[reference]++
		t.PairedHits++
	}
}

// WriteEvidence writes the two contributing alignments of a confirmed
// bridge in their original tabular form, followed by a blank
// separator line.
func WriteEvidence(out *bufio.Writer, a, b *sam.Alignment) error {
	buf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(buf)
	buf = a.Format(buf)
	buf = b.Format(buf)
	buf = append(buf, '\n')
	_, err := out.Write(buf)
	return err
}

func writeCounts(out *bufio.Writer, counts map[string]int) {
	references := make([]string, 0, len(counts))
	for reference := range counts {
		references = append(references, reference)
	}
	sort.Strings(references)
	for _, reference := range references {
		fmt.Fprintln(out, reference, counts[reference])
	}
}

// Report writes the per-reference evidence counts and the overall
// totals at the end of the stream.
func (t *Tally) Report(out *bufio.Writer) error {
	fmt.Fprintln(out, "Supported by single reads")
	writeCounts(out, t.SingleByReference)
	fmt.Fprintln(out, "\nSupported by paired reads")
	writeCounts(out, t.PairedByReference)
	fmt.Fprintln(out)
	_, err := fmt.Fprintf(out, "Total: %d\nSingleHits: %d\nPairedHits: %d\n", t.Groups, t.SingleHits, t.PairedHits)
	return err
}
