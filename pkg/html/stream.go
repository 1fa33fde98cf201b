package html

import "regexp"

// stream is a cursor over the scanner input. Positions are byte offsets.
type stream struct {
	src string
	pos int
}

func (s *stream) eos() bool {
	return s.pos >= len(s.src)
}

func (s *stream) rest() string {
	return s.src[s.pos:]
}

func (s *stream) advance(n int) {
	s.pos = min(s.pos+n, len(s.src))
}

func (s *stream) goBack(n int) {
	s.pos = max(s.pos-n, 0)
}

func (s *stream) goToEnd() {
	s.pos = len(s.src)
}

// peekChar returns the byte n positions away from the cursor, or 0 when that
// position is outside the input.
func (s *stream) peekChar(n int) byte {
	i := s.pos + n
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

func (s *stream) advanceIfChar(ch byte) bool {
	if s.pos < len(s.src) && s.src[s.pos] == ch {
		s.pos++
		return true
	}
	return false
}

func (s *stream) advanceIfChars(chars string) bool {
	if s.pos+len(chars) > len(s.src) {
		return false
	}
	if s.src[s.pos:s.pos+len(chars)] != chars {
		return false
	}
	s.pos += len(chars)
	return true
}

// advanceIfRegExp moves past the first match of re in the remaining input and
// returns it. Anchored patterns only match at the cursor.
func (s *stream) advanceIfRegExp(re *regexp.Regexp) string {
	rest := s.rest()
	loc := re.FindStringIndex(rest)
	if loc == nil {
		return ""
	}
	s.pos += loc[1]
	return rest[loc[0]:loc[1]]
}

// advanceUntilRegExp moves to the start of the first match of re, or to the
// end of input when there is none.
func (s *stream) advanceUntilRegExp(re *regexp.Regexp) string {
	rest := s.rest()
	loc := re.FindStringIndex(rest)
	if loc == nil {
		s.goToEnd()
		return ""
	}
	s.pos += loc[0]
	return rest[loc[0]:loc[1]]
}

func (s *stream) advanceUntilChar(ch byte) bool {
	for s.pos < len(s.src) {
		if s.src[s.pos] == ch {
			return true
		}
		s.pos++
	}
	return false
}

func (s *stream) advanceUntilChars(chars string) bool {
	for s.pos+len(chars) <= len(s.src) {
		if s.src[s.pos:s.pos+len(chars)] == chars {
			return true
		}
		s.pos++
	}
	s.goToEnd()
	return false
}

func (s *stream) skipWhitespace() bool {
	start := s.pos
	for s.pos < len(s.src) && isWhitespace(s.src[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\f' || ch == '\r'
}
