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
	"bufio"
	"io"
	"strconv"
	"strings"
	"testing"
)

func testLine(qname string, flag int, pos int32) string {
	return strings.Join([]string{
		qname, strconv.Itoa(flag), "NODE_1_length_1000", strconv.FormatInt(int64(pos), 10),
		"60", "50M50S", "*", "0", "0", "ACGT", "FFFF",
	}, "\t")
}

func newTestGroupReader(t *testing.T, input string) *ReadGroupReader {
	t.Helper()
	gr, err := NewReadGroupReader(&InputFile{Reader: bufio.NewReader(strings.NewReader(input))})
	if err != nil {
		t.Fatal(err)
	}
	return gr
}

func TestReadGroup(t *testing.T) {
	input := testLine("read1", 0, 100) + "\n" +
		testLine("read2", 0, 200) + "\n" +
		testLine("read2", 256, 300) + "\n" +
		testLine("read3", 0, 400) + "\n" +
		testLine("read3", 256, 500) + "\n" +
		testLine("read3", 2048, 600) + "\n"
	gr := newTestGroupReader(t, input)
	for i, expected := range []int{1, 2, 3} {
		group, err := gr.ReadGroup()
		if err != nil {
			t.Fatal(err)
		}
		if len(group) != expected {
			t.Error("ReadGroup ", i, " has wrong size")
		}
		for _, aln := range group {
			if qname := group[0].QNAME; aln.QNAME != qname {
				t.Error("ReadGroup ", i, " mixes read names")
			}
		}
	}
	if _, err := gr.ReadGroup(); err != io.EOF {
		t.Error("ReadGroup did not report the end of the stream")
	}
}

func TestReadGroupNoFinalNewline(t *testing.T) {
	input := testLine("read1", 0, 100) + "\n" + testLine("read1", 256, 200)
	gr := newTestGroupReader(t, input)
	group, err := gr.ReadGroup()
	if err != nil {
		t.Fatal(err)
	}
	if len(group) != 2 {
		t.Error("ReadGroup dropped the unterminated final line")
	}
	if _, err := gr.ReadGroup(); err != io.EOF {
		t.Error("ReadGroup did not report the end of the stream")
	}
}

func TestReadGroupHeaderLine(t *testing.T) {
	gr := newTestGroupReader(t, "@HD\tVN:1.6\tSO:queryname\n"+testLine("read1", 0, 100)+"\n")
	if _, err := gr.ReadGroup(); err == nil {
		t.Error("ReadGroup accepted a header line")
	}
}

func TestReadGroupEmptyLine(t *testing.T) {
	gr := newTestGroupReader(t, testLine("read1", 0, 100)+"\n\n"+testLine("read2", 0, 200)+"\n")
	if _, err := gr.ReadGroup(); err != nil {
		t.Fatal(err)
	}
	if _, err := gr.ReadGroup(); err == nil {
		t.Error("ReadGroup accepted an empty line")
	}
}

func TestReadGroupCarriageReturn(t *testing.T) {
	gr := newTestGroupReader(t, testLine("read1", 0, 100)+"\r\n")
	group, err := gr.ReadGroup()
	if err != nil {
		t.Fatal(err)
	}
	if group[0].QUAL != "FFFF" {
		t.Error("ReadGroup kept a carriage return")
	}
}
