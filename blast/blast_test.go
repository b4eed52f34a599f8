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

package blast

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/padbr/circe/intervals"
)

const testHitLine = "NODE_1_length_44130_cov_12.8\tNODE_7_length_1635_cov_8.1\t98.542\t754\t11\t0\t101\t854\t1635\t882\t0.0\t1328\t44130\t1635\t0"

func TestParseHit(t *testing.T) {
	hit, err := ParseHit(testHitLine)
	if err != nil {
		t.Fatal(err)
	}
	if hit.QSeqID != "NODE_1_length_44130_cov_12.8" || hit.SSeqID != "NODE_7_length_1635_cov_8.1" {
		t.Error("ParseHit identifiers failed")
	}
	if hit.PIdent != 98.542 || hit.Length != 754 || hit.Mismatch != 11 || hit.GapOpen != 0 {
		t.Error("ParseHit match columns failed")
	}
	if hit.QStart != 101 || hit.QEnd != 854 || hit.SStart != 1635 || hit.SEnd != 882 {
		t.Error("ParseHit coordinate columns failed")
	}
	if hit.EValue != 0 || hit.BitScore != 1328 {
		t.Error("ParseHit score columns failed")
	}
	if hit.QLen != 44130 || hit.SLen != 1635 || hit.Gaps != 0 {
		t.Error("ParseHit length columns failed")
	}
}

func TestParseHitErrors(t *testing.T) {
	if _, err := ParseHit("A\tB\t100.0"); err == nil {
		t.Error("ParseHit error 1 failed")
	}
	bad := strings.Replace(testHitLine, "754", "x", 1)
	if _, err := ParseHit(bad); err == nil {
		t.Error("ParseHit error 2 failed")
	}
}

func TestHitPredicates(t *testing.T) {
	selfHit, err := ParseHit("A_length_100\tA_length_100\t100.000\t100\t0\t0\t1\t100\t1\t100\t0.0\t185\t100\t100\t0")
	if err != nil {
		t.Fatal(err)
	}
	if !selfHit.IsSelfHit() || !selfHit.IsFullSelfHit() || !selfHit.AreSameLength() {
		t.Error("hit predicates 1 failed")
	}
	partialSelf, err := ParseHit("A_length_100\tA_length_100\t100.000\t40\t0\t0\t1\t40\t61\t100\t1e-20\t74\t100\t100\t0")
	if err != nil {
		t.Fatal(err)
	}
	if !partialSelf.IsSelfHit() || partialSelf.IsFullSelfHit() {
		t.Error("hit predicates 2 failed")
	}
	reverse, err := ParseHit("A_length_100\tB_length_100\t100.000\t100\t0\t0\t1\t100\t100\t1\t0.0\t185\t100\t100\t0")
	if err != nil {
		t.Fatal(err)
	}
	if reverse.IsSelfHit() || !reverse.IsFullReverse() || !reverse.AreSameLength() {
		t.Error("hit predicates 3 failed")
	}
}

const testReport = "A_length_100\tA_length_100\t100.000\t100\t0\t0\t1\t100\t1\t100\t0.0\t185\t100\t100\t0\n" +
	"A_length_100\tB_length_50\t98.500\t31\t0\t0\t10\t40\t1\t31\t1e-10\t55\t100\t50\t0\n" +
	"B_length_50\tB_length_50\t100.000\t50\t0\t0\t1\t50\t1\t50\t0.0\t92\t50\t50\t0\n" +
	"C_length_20\tA_length_100\t100.000\t20\t0\t0\t1\t20\t81\t100\t1e-8\t37\t20\t100\t0\n"

func TestUniqueRegions(t *testing.T) {
	unique, err := UniqueRegions(bufio.NewReader(strings.NewReader(testReport)), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(unique) != 3 {
		t.Error("UniqueRegions missed a query")
	}
	a := unique["A_length_100"]
	if len(a) != 2 || a[0] != (intervals.Interval{Start: 1, End: 9}) || a[1] != (intervals.Interval{Start: 41, End: 100}) {
		t.Error("UniqueRegions 1 failed: ", a)
	}
	b := unique["B_length_50"]
	if len(b) != 1 || b[0] != (intervals.Interval{Start: 1, End: 50}) {
		t.Error("UniqueRegions 2 failed: ", b)
	}
	if c := unique["C_length_20"]; len(c) != 0 {
		t.Error("UniqueRegions 3 failed: ", c)
	}

	// a larger cutoff drops the short run at the start of A
	unique, err = UniqueRegions(bufio.NewReader(strings.NewReader(testReport)), 10)
	if err != nil {
		t.Fatal(err)
	}
	a = unique["A_length_100"]
	if len(a) != 1 || a[0] != (intervals.Interval{Start: 41, End: 100}) {
		t.Error("UniqueRegions 4 failed: ", a)
	}
}

func TestUniqueRegionsErrors(t *testing.T) {
	if _, err := UniqueRegions(bufio.NewReader(strings.NewReader("A\tB\n")), 5); err == nil {
		t.Error("UniqueRegions error 1 failed")
	}
	noLength := "contigA\tcontigB\t98.500\t31\t0\t0\t10\t40\t1\t31\t1e-10\t55\t100\t50\t0\n"
	if _, err := UniqueRegions(bufio.NewReader(strings.NewReader(noLength)), 5); err == nil {
		t.Error("UniqueRegions error 2 failed")
	}
}

func TestFormatRegions(t *testing.T) {
	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	if err := FormatRegions(out, "A_length_100", []intervals.Interval{{Start: 1, End: 9}, {Start: 41, End: 100}}); err != nil {
		t.Fatal(err)
	}
	if err := FormatRegions(out, "C_length_20", nil); err != nil {
		t.Fatal(err)
	}
	if err := out.Flush(); err != nil {
		t.Fatal(err)
	}
	expected := "A_length_100:1-9 A_length_100:41-100\nC_length_20 None\n"
	if buf.String() != expected {
		t.Error("FormatRegions failed: ", buf.String())
	}
}

func TestSortedNames(t *testing.T) {
	unique := map[string][]intervals.Interval{
		"C_length_20":  nil,
		"A_length_100": nil,
		"B_length_50":  nil,
	}
	names := SortedNames(unique)
	if len(names) != 3 || names[0] != "A_length_100" || names[1] != "B_length_50" || names[2] != "C_length_20" {
		t.Error("SortedNames failed: ", names)
	}
}
