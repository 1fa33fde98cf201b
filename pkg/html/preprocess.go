package html

import (
	"github.com/rs/zerolog"
)

// PreprocessOption configures a Preprocessor.
type PreprocessOption func(*Preprocessor)

// WithOracle sets the expression-boundary oracle. The default is
// MoustacheOracle.
func WithOracle(oracle Oracle) PreprocessOption {
	return func(p *Preprocessor) {
		if oracle != nil {
			p.oracle = oracle
		}
	}
}

// WithLogger sets the logger that receives a debug event per blanked byte.
func WithLogger(logger zerolog.Logger) PreprocessOption {
	return func(p *Preprocessor) {
		p.logger = logger
	}
}

// Preprocessor removes '<' and '>' bytes that would end a start tag early
// because they belong to a template expression inside the tag. A
// Preprocessor holds no per-call state and is safe for concurrent use.
type Preprocessor struct {
	oracle Oracle
	logger zerolog.Logger
}

// NewPreprocessor creates a Preprocessor.
func NewPreprocessor(opts ...PreprocessOption) *Preprocessor {
	p := &Preprocessor{
		oracle: MoustacheOracle,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preprocess is shorthand for NewPreprocessor(opts...).Preprocess(text).
func Preprocess(text string, opts ...PreprocessOption) string {
	return NewPreprocessor(opts...).Preprocess(text)
}

// Preprocess returns text with every tag-ending '<' or '>' that sits inside
// an expression replaced by a space. The result has the same length as text,
// so offsets into either are interchangeable.
func (p *Preprocessor) Preprocess(text string) string {
	out, _ := p.PreprocessWithReport(text)
	return out
}

// PreprocessWithReport is like Preprocess and also returns the offsets that
// were blanked, in ascending order.
func (p *Preprocessor) PreprocessWithReport(text string) (string, []int) {
	scanner := NewScanner(text, 0, WithinContent)
	tagStart := -1 // offset of the start tag being scanned, -1 when none
	var blanked []int

	shouldBlank := func(offset int) bool {
		return tagStart >= 0 && offset > tagStart && p.oracle(text, tagStart, offset)
	}

	// blank replaces the byte at offset and restarts scanning right there.
	// Nothing before offset changes, so earlier tokens stay valid.
	blank := func(offset int) {
		p.logger.Debug().
			Int("offset", offset).
			Int("tag_start", tagStart).
			Str("char", text[offset:offset+1]).
			Msg("blanked tag delimiter inside expression")

		text = text[:offset] + " " + text[offset+1:]
		blanked = append(blanked, offset)
		scanner = NewScanner(text, offset, WithinTag)
	}

	for token := scanner.Scan(); token != EOS; token = scanner.Scan() {
		offset := scanner.TokenOffset()

		switch token {
		case StartTagOpen:
			tagStart = offset

		case StartTagClose:
			if shouldBlank(offset) {
				blank(offset)
			} else {
				tagStart = -1
			}

		case StartTagSelfClose:
			tagStart = -1

		case Unknown:
			// <Foo checked={a < 1}>: the scanner reports the inner '<' as an
			// unexpected character and stays inside the tag.
			if scanner.State() == WithinTag && scanner.TokenText() == "<" && shouldBlank(offset) {
				blank(offset)
			}
		}
	}

	return text, blanked
}
