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
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
)

var errMissingTabulator = errors.New("missing tabulator in SAM alignment line")

// An InputFile is a headless alignment stream. Plain files and
// /dev/stdin are read directly; .bam and .cram files are decoded by
// piping them through samtools view without emitting header lines.
type InputFile struct {
	rc interface {
		Read([]byte) (int, error)
		Close() error
	}
	*bufio.Reader
	*exec.Cmd
}

// Open opens a name-sorted alignment file for reading.
func Open(name string) (*InputFile, error) {
	switch filepath.Ext(name) {
	case ".bam", ".cram":
		if _, err := os.Stat(name); err != nil {
			return nil, err
		}
		args := []string{"view", "-@", strconv.FormatInt(int64(runtime.GOMAXPROCS(0)), 10), name}
		cmd := exec.Command("samtools", args...)
		outPipe, err := cmd.StdoutPipe()
		if err != nil {
			return nil, err
		}
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return &InputFile{outPipe, bufio.NewReader(outPipe), cmd}, nil
	default:
		if name == "/dev/stdin" {
			return &InputFile{os.Stdin, bufio.NewReader(os.Stdin), nil}, nil
		}
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		return &InputFile{file, bufio.NewReader(file), nil}, nil
	}
}

// Close closes the underlying file, and waits for the samtools
// process if there is one.
func (input *InputFile) Close() error {
	if input.rc != os.Stdin {
		if err := input.rc.Close(); err != nil {
			return err
		}
	}
	if input.Cmd != nil {
		return input.Wait()
	}
	return nil
}

func (sc *StringScanner) doString() string {
	if sc.err != nil {
		return ""
	}
	value, ok := sc.readUntil('\t')
	if !ok {
		if sc.err == nil {
			sc.err = errMissingTabulator
		}
		return ""
	}
	return value
}

func (sc *StringScanner) doInt32() int32 {
	if sc.err != nil {
		return 0
	}
	value, err := strconv.ParseInt(sc.doString(), 10, 32)
	if (err != nil) && (sc.err == nil) {
		sc.err = err
	}
	return int32(value)
}

func (sc *StringScanner) doUint(bitSize int) uint64 {
	if sc.err != nil {
		return 0
	}
	value, err := strconv.ParseUint(sc.doString(), 10, bitSize)
	if (err != nil) && (sc.err == nil) {
		sc.err = err
	}
	return value
}

// ParseAlignment parses one headless SAM line into an Alignment. The
// eleven mandatory fields must all be present; trailing optional
// fields are kept as raw strings. Any missing field or unparseable
// numeric field sets the scanner error.
func (sc *StringScanner) ParseAlignment() *Alignment {
	aln := &Alignment{}

	aln.QNAME = sc.doString()
	aln.FLAG = uint16(sc.doUint(16))
	aln.RNAME = sc.doString()
	aln.POS = sc.doInt32()
	aln.MAPQ = byte(sc.doUint(8))
	aln.CIGAR = sc.doString()
	aln.RNEXT = sc.doString()
	aln.PNEXT = sc.doInt32()
	aln.TLEN = sc.doInt32()
	aln.SEQ = sc.doString()
	aln.QUAL, _ = sc.readUntil('\t')

	for sc.Len() > 0 {
		tag, _ := sc.readUntil('\t')
		aln.TAGS = append(aln.TAGS, tag)
	}

	return aln
}

// Format appends the tab-separated SAM representation of the
// alignment, including a trailing newline. Since the optional fields
// are kept verbatim, the result is byte-identical to the input line.
func (aln *Alignment) Format(out []byte) []byte {
	out = append(append(out, aln.QNAME...), '\t')
	out = append(strconv.AppendUint(out, uint64(aln.FLAG), 10), '\t')
	out = append(append(out, aln.RNAME...), '\t')
	out = append(strconv.AppendInt(out, int64(aln.POS), 10), '\t')
	out = append(strconv.AppendUint(out, uint64(aln.MAPQ), 10), '\t')
	out = append(append(out, aln.CIGAR...), '\t')
	out = append(append(out, aln.RNEXT...), '\t')
	out = append(strconv.AppendInt(out, int64(aln.PNEXT), 10), '\t')
	out = append(strconv.AppendInt(out, int64(aln.TLEN), 10), '\t')
	out = append(append(out, aln.SEQ...), '\t')
	out = append(out, aln.QUAL...)

	for _, tag := range aln.TAGS {
		out = append(append(out, '\t'), tag...)
	}

	return append(out, '\n')
}
