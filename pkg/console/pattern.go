package console

import (
	"bytes"
	"regexp"
)

// Pattern is one alternative passed to Expect.
type Pattern interface {
	String() string
	// find returns the offset just past the match in buf.
	find(buf []byte) (int, bool)
}

type literal string

// Literal matches s anywhere in the unread output.
func Literal(s string) Pattern {
	return literal(s)
}

func (l literal) String() string { return string(l) }

func (l literal) find(buf []byte) (int, bool) {
	idx := bytes.Index(buf, []byte(l))
	if idx < 0 {
		return 0, false
	}
	return idx + len(l), true
}

type expr struct {
	re *regexp.Regexp
}

// Regexp matches re anywhere in the unread output.
func Regexp(re *regexp.Regexp) Pattern {
	return expr{re: re}
}

func (e expr) String() string { return e.re.String() }

func (e expr) find(buf []byte) (int, bool) {
	loc := e.re.FindIndex(buf)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}

type eof struct{}

func (eof) String() string { return "<EOF>" }

func (eof) find([]byte) (int, bool) { return 0, false }

// EOF matches once the child has closed its side of the terminal and all
// output has been consumed by the other alternatives.
var EOF Pattern = eof{}

func indexOfEOF(patterns []Pattern) int {
	for i, p := range patterns {
		if _, ok := p.(eof); ok {
			return i
		}
	}
	return -1
}

// DescribePatterns renders patterns for error messages.
func DescribePatterns(patterns ...Pattern) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, p.String())
	}
	return out
}
