package html

import (
	"fmt"
	"strings"
)

// Oracle reports whether offset falls inside a template expression that is
// still open. tagStart is the offset of the enclosing start tag, or negative
// when offset is not inside a tag. Implementations must be pure functions of
// their arguments.
type Oracle func(text string, tagStart, offset int) bool

// MoustacheOracle recognizes {...} expressions.
//
// Inside a tag, offset is inside an expression when the last '{' between
// tagStart and offset comes after the last '}'. Outside a tag only block
// tags count: the last '{#', '{:' or '{@' before offset must come after the
// last '}'. A plain {a < b} in content is not considered.
func MoustacheOracle(text string, tagStart, offset int) bool {
	offset = clampOffset(text, offset)
	if tagStart < 0 {
		before := text[:offset]
		opener := max(
			strings.LastIndex(before, "{#"),
			strings.LastIndex(before, "{:"),
			strings.LastIndex(before, "{@"),
		)
		return opener > strings.LastIndexByte(before, '}')
	}
	if tagStart > offset {
		return false
	}
	inNode := text[tagStart:offset]
	return strings.LastIndexByte(inNode, '{') > strings.LastIndexByte(inNode, '}')
}

// NewDelimiterOracle returns an Oracle for expressions wrapped in open and
// closeDelim, using the same last-opener-wins rule as MoustacheOracle. Outside
// a tag, any opener before offset counts.
func NewDelimiterOracle(open, closeDelim byte) Oracle {
	return func(text string, tagStart, offset int) bool {
		offset = clampOffset(text, offset)
		start := 0
		if tagStart >= 0 {
			if tagStart > offset {
				return false
			}
			start = tagStart
		}
		region := text[start:offset]
		return strings.LastIndexByte(region, open) > strings.LastIndexByte(region, closeDelim)
	}
}

// OracleFor returns the oracle for a two-character delimiter pair such as
// "{}" or "[]". The empty string and "{}" select MoustacheOracle.
func OracleFor(delimiters string) (Oracle, error) {
	switch {
	case delimiters == "" || delimiters == "{}":
		return MoustacheOracle, nil
	case len(delimiters) != 2:
		return nil, fmt.Errorf("delimiters must be exactly two characters, got %q", delimiters)
	case delimiters[0] == delimiters[1]:
		return nil, fmt.Errorf("open and close delimiters must differ, got %q", delimiters)
	case strings.ContainsAny(delimiters, "<> \t\n\f\r"):
		return nil, fmt.Errorf("delimiters cannot be tag brackets or whitespace, got %q", delimiters)
	}
	return NewDelimiterOracle(delimiters[0], delimiters[1]), nil
}

func clampOffset(text string, offset int) int {
	return min(max(offset, 0), len(text))
}
