// Package html scans and parses HTML-like markup that embeds template
// expressions inside tags, such as <Foo checked={a < 1}>.
//
// The Scanner is restartable: it can be created at any byte offset in any
// ScannerState. Preprocess relies on that to blank tag delimiters that belong
// to an expression and resume scanning exactly where the edit happened.
package html

import (
	"regexp"
	"strings"
)

// Regex patterns for names and values
var (
	elementNamePattern    = regexp.MustCompile(`^[_:\w][_:\w.\d-]*`)
	attributeNamePattern  = regexp.MustCompile("^[^\\s\"'`=<>/]+")
	attributeValuePattern = regexp.MustCompile("^[^\\s\"'`=<>]+")
	doctypePattern        = regexp.MustCompile(`^(?i)!doctype`)
	// Unanchored: finds the next comment delimiter or script tag in script content.
	scriptDelimiterPattern = regexp.MustCompile(`(?i)<!--|-->|</?script\s*/?>?`)
	styleEndPattern        = regexp.MustCompile(`(?i)</style`)
)

// Script types whose content is scanned as markup rather than raw script.
var htmlScriptContents = map[string]bool{
	"text/x-handlebars-template": true,
	"text/html":                  true,
}

// Scanner error messages, reported through TokenError.
const (
	errUnexpectedWhitespace   = "Tag name must directly follow the open bracket."
	errEndTagNameExpected     = "End tag name expected."
	errStartTagNameExpected   = "Start tag name expected."
	errClosingBracketMissing  = "Closing bracket missing."
	errClosingBracketExpected = "Closing bracket expected."
	errUnexpectedCharInTag    = "Unexpected character in tag."
)

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithPseudoCloseTags makes a '<' met inside a start or end tag produce a
// zero-length StartTagClose or EndTagClose token. Tree builders use this to
// recover from tags that are never closed.
func WithPseudoCloseTags() ScannerOption {
	return func(s *Scanner) {
		s.emitPseudoCloseTags = true
	}
}

// Scanner tokenizes markup one token at a time.
type Scanner struct {
	stream              stream
	state               ScannerState
	tokenOffset         int
	tokenType           TokenType
	tokenError          string
	hasSpaceAfterTag    bool
	lastTag             string
	lastAttributeName   string
	lastTypeValue       string
	emitPseudoCloseTags bool
}

// NewScanner creates a scanner over input positioned at offset in the given
// state. Offsets outside the input are clamped.
func NewScanner(input string, offset int, state ScannerState, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		stream:    stream{src: input, pos: min(max(offset, 0), len(input))},
		state:     state,
		tokenType: Unknown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenType returns the kind of the current token.
func (s *Scanner) TokenType() TokenType { return s.tokenType }

// TokenOffset returns the byte offset where the current token starts.
func (s *Scanner) TokenOffset() int { return s.tokenOffset }

// TokenEnd returns the byte offset just past the current token.
func (s *Scanner) TokenEnd() int { return s.stream.pos }

// TokenLength returns the length in bytes of the current token.
func (s *Scanner) TokenLength() int { return s.stream.pos - s.tokenOffset }

// TokenText returns the raw text of the current token.
func (s *Scanner) TokenText() string { return s.stream.src[s.tokenOffset:s.stream.pos] }

// State returns the state the scanner will resume from on the next Scan.
func (s *Scanner) State() ScannerState { return s.state }

// TokenError returns the diagnostic attached to the current token, if any.
func (s *Scanner) TokenError() string { return s.tokenError }

// Scan advances to the next token and returns its kind. It returns EOS once
// the input is exhausted, and keeps returning EOS afterwards.
func (s *Scanner) Scan() TokenType {
	offset := s.stream.pos
	token := s.internalScan()
	pseudoClose := s.emitPseudoCloseTags && (token == StartTagClose || token == EndTagClose)
	if token != EOS && offset == s.stream.pos && !pseudoClose {
		// Never stall: turn a non-advancing step into a one-byte token.
		s.stream.advance(1)
		return s.finishToken(offset, Unknown, "")
	}
	return token
}

func (s *Scanner) finishToken(offset int, tokenType TokenType, errorMessage string) TokenType {
	s.tokenType = tokenType
	s.tokenOffset = offset
	s.tokenError = errorMessage
	return tokenType
}

func (s *Scanner) nextElementName() string {
	return strings.ToLower(s.stream.advanceIfRegExp(elementNamePattern))
}

func (s *Scanner) nextAttributeName() string {
	return strings.ToLower(s.stream.advanceIfRegExp(attributeNamePattern))
}

func (s *Scanner) internalScan() TokenType {
	offset := s.stream.pos
	for {
		if s.stream.eos() {
			return s.finishToken(offset, EOS, "")
		}

		var errorMessage string

		switch s.state {
		case WithinComment:
			if s.stream.advanceIfChars("-->") {
				s.state = WithinContent
				return s.finishToken(offset, EndCommentTag, "")
			}
			s.stream.advanceUntilChars("-->")
			return s.finishToken(offset, Comment, "")

		case WithinDoctype:
			if s.stream.advanceIfChar('>') {
				s.state = WithinContent
				return s.finishToken(offset, EndDoctypeTag, "")
			}
			s.stream.advanceUntilChar('>')
			return s.finishToken(offset, Doctype, "")

		case WithinContent:
			if s.stream.advanceIfChar('<') {
				if !s.stream.eos() && s.stream.peekChar(0) == '!' {
					if s.stream.advanceIfChars("!--") {
						s.state = WithinComment
						return s.finishToken(offset, StartCommentTag, "")
					}
					if s.stream.advanceIfRegExp(doctypePattern) != "" {
						s.state = WithinDoctype
						return s.finishToken(offset, StartDoctypeTag, "")
					}
				}
				if s.stream.advanceIfChar('/') {
					s.state = AfterOpeningEndTag
					return s.finishToken(offset, EndTagOpen, "")
				}
				s.state = AfterOpeningStartTag
				return s.finishToken(offset, StartTagOpen, "")
			}
			s.stream.advanceUntilChar('<')
			return s.finishToken(offset, Content, "")

		case AfterOpeningEndTag:
			if s.nextElementName() != "" {
				s.state = WithinEndTag
				return s.finishToken(offset, EndTag, "")
			}
			if s.stream.skipWhitespace() {
				return s.finishToken(offset, Whitespace, errUnexpectedWhitespace)
			}
			s.state = WithinEndTag
			s.stream.advanceUntilChar('>')
			if offset < s.stream.pos {
				return s.finishToken(offset, Unknown, errEndTagNameExpected)
			}
			continue

		case WithinEndTag:
			if s.stream.skipWhitespace() {
				return s.finishToken(offset, Whitespace, "")
			}
			if s.stream.advanceIfChar('>') {
				s.state = WithinContent
				return s.finishToken(offset, EndTagClose, "")
			}
			if s.emitPseudoCloseTags && s.stream.peekChar(0) == '<' {
				s.state = WithinContent
				return s.finishToken(offset, EndTagClose, errClosingBracketMissing)
			}
			errorMessage = errClosingBracketExpected

		case AfterOpeningStartTag:
			s.lastTag = s.nextElementName()
			s.lastTypeValue = ""
			s.lastAttributeName = ""
			if s.lastTag != "" {
				s.hasSpaceAfterTag = false
				s.state = WithinTag
				return s.finishToken(offset, StartTag, "")
			}
			if s.stream.skipWhitespace() {
				return s.finishToken(offset, Whitespace, errUnexpectedWhitespace)
			}
			s.state = WithinTag
			s.stream.advanceUntilChar('>')
			if offset < s.stream.pos {
				return s.finishToken(offset, Unknown, errStartTagNameExpected)
			}
			continue

		case WithinTag:
			if s.stream.skipWhitespace() {
				s.hasSpaceAfterTag = true
				return s.finishToken(offset, Whitespace, "")
			}
			if s.hasSpaceAfterTag {
				s.lastAttributeName = s.nextAttributeName()
				if s.lastAttributeName != "" {
					s.state = AfterAttributeName
					s.hasSpaceAfterTag = false
					return s.finishToken(offset, AttributeName, "")
				}
			}
			if s.stream.advanceIfChars("/>") {
				s.state = WithinContent
				return s.finishToken(offset, StartTagSelfClose, "")
			}
			if s.stream.advanceIfChar('>') {
				switch {
				case s.lastTag == "script" && !htmlScriptContents[s.lastTypeValue]:
					s.state = WithinScriptContent
				case s.lastTag == "style":
					s.state = WithinStyleContent
				default:
					s.state = WithinContent
				}
				return s.finishToken(offset, StartTagClose, "")
			}
			if s.emitPseudoCloseTags && s.stream.peekChar(0) == '<' {
				s.state = WithinContent
				return s.finishToken(offset, StartTagClose, errClosingBracketMissing)
			}
			s.stream.advance(1)
			return s.finishToken(offset, Unknown, errUnexpectedCharInTag)

		case AfterAttributeName:
			if s.stream.skipWhitespace() {
				s.hasSpaceAfterTag = true
				return s.finishToken(offset, Whitespace, "")
			}
			if s.stream.advanceIfChar('=') {
				s.state = BeforeAttributeValue
				return s.finishToken(offset, DelimiterAssign, "")
			}
			s.state = WithinTag
			continue

		case BeforeAttributeValue:
			if s.stream.skipWhitespace() {
				return s.finishToken(offset, Whitespace, "")
			}
			value := s.stream.advanceIfRegExp(attributeValuePattern)
			if value != "" {
				// <foo bar=http://foo/> ends with a self-close, not a slash in the value
				if s.stream.peekChar(0) == '>' && s.stream.peekChar(-1) == '/' {
					s.stream.goBack(1)
					value = value[:len(value)-1]
				}
				if s.lastAttributeName == "type" {
					s.lastTypeValue = value
				}
				if value != "" {
					s.state = WithinTag
					s.hasSpaceAfterTag = false
					return s.finishToken(offset, AttributeValue, "")
				}
			}
			if ch := s.stream.peekChar(0); ch == '\'' || ch == '"' {
				s.stream.advance(1)
				if s.stream.advanceUntilChar(ch) {
					s.stream.advance(1)
				}
				if s.lastAttributeName == "type" {
					s.lastTypeValue = s.stream.src[min(offset+1, s.stream.pos):max(s.stream.pos-1, offset+1)]
				}
				s.state = WithinTag
				s.hasSpaceAfterTag = false
				return s.finishToken(offset, AttributeValue, "")
			}
			s.state = WithinTag
			s.hasSpaceAfterTag = false
			continue

		case WithinScriptContent:
			s.scanScriptContent()
			s.state = WithinContent
			if offset < s.stream.pos {
				return s.finishToken(offset, Script, "")
			}
			continue

		case WithinStyleContent:
			s.stream.advanceUntilRegExp(styleEndPattern)
			s.state = WithinContent
			if offset < s.stream.pos {
				return s.finishToken(offset, Styles, "")
			}
			continue
		}

		s.stream.advance(1)
		s.state = WithinContent
		return s.finishToken(offset, Unknown, errorMessage)
	}
}

// scanScriptContent moves to the closing </script of the current script
// element, honouring the comment-escaped nesting browsers apply.
func (s *Scanner) scanScriptContent() {
	scriptState := 1
	for !s.stream.eos() {
		match := s.stream.advanceIfRegExp(scriptDelimiterPattern)
		switch {
		case match == "":
			s.stream.goToEnd()
			return
		case match == "<!--":
			if scriptState == 1 {
				scriptState = 2
			}
		case match == "-->":
			scriptState = 1
		case match[1] != '/': // <script
			if scriptState == 2 {
				scriptState = 3
			}
		default: // </script
			if scriptState == 3 {
				scriptState = 2
			} else {
				s.stream.goBack(len(match))
				return
			}
		}
	}
}
