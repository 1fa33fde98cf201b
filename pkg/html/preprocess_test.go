package html

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysInside(string, int, int) bool { return true }

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "less than inside attribute expression",
			input:    "<Foo checked={a < 1}>",
			expected: "<Foo checked={a   1}>",
		},
		{
			name:     "arrow function in event handler",
			input:    "<div on:click={() => x}>hi</div>",
			expected: "<div on:click={() =  x}>hi</div>",
		},
		{
			name:     "greater than in shorthand attribute",
			input:    "<a {x>y}>",
			expected: "<a {x y}>",
		},
		{
			name:     "self close after expression",
			input:    "<Foo bar={1<2} />",
			expected: "<Foo bar={1 2} />",
		},
		{
			name:     "several blanks in one tag",
			input:    "<Foo a={x > 1} b={y < 2}>text</Foo>",
			expected: "<Foo a={x   1} b={y   2}>text</Foo>",
		},
		{
			name:     "first tag at offset zero",
			input:    "<i x={a>b}>",
			expected: "<i x={a b}>",
		},
		{
			name:     "well formed markup is untouched",
			input:    `<div class="a"><p>x &lt; y</p><br/><img src=a.png></div>`,
			expected: `<div class="a"><p>x &lt; y</p><br/><img src=a.png></div>`,
		},
		{
			name:     "expression in content is untouched",
			input:    "<p>{a > b}</p>",
			expected: "<p>{a > b}</p>",
		},
		{
			name:     "tag-like sequence inside content expression is left alone",
			input:    "<a>{b<c}</a>",
			expected: "<a>{b<c}</a>",
		},
		{
			name:     "closed expression before tag end",
			input:    "<Foo a={b}>c > d</Foo>",
			expected: "<Foo a={b}>c > d</Foo>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Preprocess(tt.input)
			assert.Equal(t, tt.expected, out)
			assert.Len(t, out, len(tt.input))
		})
	}
}

// A second pass changes nothing as long as every tag opener is followed by a
// valid element name. Malformed openers such as `<{>` make the scanner skip
// to the next '>', so a restart after a blank can resynchronise differently.
func TestPreprocess_Idempotent(t *testing.T) {
	inputs := []string{
		"<Foo checked={a < 1}>",
		"<div on:click={() => x}>hi</div>",
		"<Foo bar={1<2} />",
		"<Foo a={x > 1} b={y < 2}>text</Foo>",
		"<a {x>=1}>",
		`<div class="a"><p>x</p></div>`,
	}

	for _, input := range inputs {
		once := Preprocess(input)
		assert.Equal(t, once, Preprocess(once), "input %q", input)
	}
}

func TestPreprocess_BlankedOffsetMatchesOriginalIndex(t *testing.T) {
	raw := "<a x={b<c}></a>"

	out, blanked := NewPreprocessor().PreprocessWithReport(raw)

	require.Equal(t, []int{strings.Index(raw, "<c")}, blanked)
	assert.Equal(t, byte(' '), out[blanked[0]])
	assert.Equal(t, raw[:blanked[0]], out[:blanked[0]])
	assert.Equal(t, raw[blanked[0]+1:], out[blanked[0]+1:])
}

func TestPreprocess_SelfCloseNeverConsultsOracle(t *testing.T) {
	var calls []int
	oracle := func(text string, tagStart, offset int) bool {
		calls = append(calls, offset)
		return MoustacheOracle(text, tagStart, offset)
	}

	out := Preprocess("<Foo bar={1<2} />", WithOracle(oracle))

	assert.Equal(t, "<Foo bar={1 2} />", out)
	assert.Equal(t, []int{11}, calls)
}

func TestPreprocess_NoActiveTagNoBlanking(t *testing.T) {
	inputs := []string{
		"x > y {a > b} z",
		"{#if a > b}yes{/if}",
	}

	for _, input := range inputs {
		assert.Equal(t, input, Preprocess(input, WithOracle(alwaysInside)), "input %q", input)
	}
}

func TestPreprocess_OracleAlwaysSeesOpenTag(t *testing.T) {
	const alphabet = "<>{}/= ab\"'"
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 300; i++ {
		buf := make([]byte, rng.Intn(30))
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(buf)

		oracle := func(text string, tagStart, offset int) bool {
			require.GreaterOrEqual(t, tagStart, 0)
			require.Greater(t, offset, tagStart)
			return true
		}

		out, blanked := NewPreprocessor(WithOracle(oracle)).PreprocessWithReport(input)

		require.Len(t, out, len(input))
		for _, offset := range blanked {
			assert.Contains(t, "<>", input[offset:offset+1])
			assert.Equal(t, byte(' '), out[offset])
		}
		for k := range input {
			if out[k] != input[k] {
				assert.Contains(t, blanked, k)
			}
		}
	}
}

func TestPreprocess_DelimiterOracle(t *testing.T) {
	out := Preprocess("<Foo x=[a < b]>", WithOracle(NewDelimiterOracle('[', ']')))
	assert.Equal(t, "<Foo x=[a   b]>", out)
}

func TestPreprocess_MarkerTracksLatestStartTag(t *testing.T) {
	var tagStarts []int
	oracle := func(text string, tagStart, offset int) bool {
		tagStarts = append(tagStarts, tagStart)
		return MoustacheOracle(text, tagStart, offset)
	}

	out := Preprocess("<a x={1}><b y={2>1}>", WithOracle(oracle))

	assert.Equal(t, "<a x={1}><b y={2 1}>", out)
	assert.Equal(t, []int{0, 9, 9}, tagStarts)
}

func TestPreprocess_LogsBlanks(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	Preprocess("<Foo checked={a < 1}>", WithLogger(logger))

	assert.Contains(t, buf.String(), "blanked tag delimiter inside expression")
	assert.Contains(t, buf.String(), `"offset":16`)
	assert.Contains(t, buf.String(), `"tag_start":0`)
}

func TestPreprocessor_NilOracleKeepsDefault(t *testing.T) {
	p := NewPreprocessor(WithOracle(nil))
	assert.Equal(t, "<Foo checked={a   1}>", p.Preprocess("<Foo checked={a < 1}>"))
}
