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
	"fmt"
	"io"
	"strings"
)

// A ReadGroupReader turns a name-sorted, headless alignment stream
// into successive groups of all alignments reported for one read.
// samtools sort -n produces a suitable input ordering. The reader
// keeps a single line of lookahead and never restarts; if the input
// is not sorted by name, the same read name can be emitted in more
// than one group, which is a caller contract violation that is not
// detected here.
type ReadGroupReader struct {
	reader    *bufio.Reader
	lookahead string
	eof       bool
}

// NewReadGroupReader creates a ReadGroupReader over an input file.
func NewReadGroupReader(input *InputFile) (*ReadGroupReader, error) {
	gr := &ReadGroupReader{reader: input.Reader}
	if err := gr.advance(); err != nil {
		return nil, err
	}
	return gr, nil
}

// advance replaces the lookahead with the next line of the input,
// with the line terminator stripped.
func (gr *ReadGroupReader) advance() error {
	if gr.eof {
		gr.lookahead = ""
		return nil
	}
	line, err := gr.reader.ReadString('\n')
	switch err {
	case nil:
		line = line[:len(line)-1]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
	case io.EOF:
		gr.eof = true
	default:
		return err
	}
	gr.lookahead = line
	return nil
}

func queryName(line string) string {
	if index := strings.IndexByte(line, '\t'); index >= 0 {
		return line[:index]
	}
	return line
}

// ReadGroup returns all alignments for the next read in the stream,
// in input order. It returns io.EOF when the stream is exhausted. A
// header line anywhere in the stream is an input error: only headless
// SAM data is supported.
func (gr *ReadGroupReader) ReadGroup() ([]*Alignment, error) {
	if gr.lookahead == "" {
		if gr.eof {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("empty line in SAM input")
	}
	name := queryName(gr.lookahead)
	var group []*Alignment
	var sc StringScanner
	for gr.lookahead != "" && queryName(gr.lookahead) == name {
		line := gr.lookahead
		if line[0] == '@' {
			return nil, fmt.Errorf("header line in input; only headless SAM files are supported: %v", line)
		}
		sc.Reset(line)
		aln := sc.ParseAlignment()
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%v, while parsing SAM alignment line %v", err, line)
		}
		group = append(group, aln)
		if err := gr.advance(); err != nil {
			return nil, err
		}
	}
	return group, nil
}
