package tokens

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/config"
	"github.com/creativesands/language-tools/pkg/html"
)

func runJSON(t *testing.T, input string, preprocessed bool) []map[string]string {
	t.Helper()
	s, err := cmdutil.NewSettings(&config.Config{}, "json", true, false, &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	opts := &tokensOptions{preprocessed: preprocessed, stdin: strings.NewReader(input), stdout: &out}
	require.NoError(t, runTokens("", opts, s))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	return rows
}

func types(rows []map[string]string) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r["type"])
	}
	return out
}

func TestRunTokens_Raw(t *testing.T) {
	rows := runJSON(t, `<a x={b>c}>`, false)

	assert.Equal(t, []string{
		"StartTagOpen", "StartTag", "Whitespace", "AttributeName", "DelimiterAssign",
		"AttributeValue", "StartTagClose", "Content",
	}, types(rows))
	assert.Equal(t, "0", rows[0]["offset"])
	assert.Equal(t, `"{b"`, rows[5]["text"])
	assert.Equal(t, "WithinContent", rows[6]["state"])
}

func TestRunTokens_Preprocessed(t *testing.T) {
	rows := runJSON(t, `<a x={b>c}>`, true)

	assert.Equal(t, []string{
		"StartTagOpen", "StartTag", "Whitespace", "AttributeName", "DelimiterAssign",
		"AttributeValue", "Whitespace", "AttributeName", "StartTagClose",
	}, types(rows))
	assert.Equal(t, "10", rows[8]["offset"])
}

func TestRunTokens_TextTable(t *testing.T) {
	s, err := cmdutil.NewSettings(&config.Config{}, "", true, false, &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	opts := &tokensOptions{stdin: strings.NewReader("<p>"), stdout: &out}
	require.NoError(t, runTokens("", opts, s))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "OFFSET"))
	assert.Contains(t, lines[1], "StartTagOpen")
	assert.Contains(t, lines[3], "StartTagClose")
}

func TestTokenColor(t *testing.T) {
	assert.Equal(t, tagColor, tokenColor(html.StartTag.String()))
	assert.Equal(t, attributeColor, tokenColor(html.AttributeName.String()))
	assert.Equal(t, valueColor, tokenColor(html.AttributeValue.String()))
	assert.Equal(t, commentColor, tokenColor(html.Comment.String()))
	assert.Equal(t, unknownColor, tokenColor(html.Unknown.String()))
	assert.Nil(t, tokenColor(html.Content.String()))
}
