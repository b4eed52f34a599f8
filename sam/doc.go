// Package sam is a library for parsing and representing headless,
// name-sorted SAM files the way circe consumes them.
//
// Alignments are parsed from the textual tabular format into
// Alignment structs; .bam and .cram inputs are transparently decoded
// by piping them through samtools view. CIGAR strings are scanned
// into typed operations from which read length, reference span, and
// the soft-clip-free matched read range are derived. The
// ReadGroupReader groups a name-sorted stream into per-read groups
// with a single line of lookahead, which is all the circularity
// evidence scan in package bridge needs.
package sam
