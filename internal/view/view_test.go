package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"text", false},
		{"json", false},
		{"yaml", false},
		{"markdown", false},
		{"table", true},
		{"JSON", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid output format")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json", "yaml", "markdown"}, ValidFormats())
}

func TestNewRenderer_DefaultsToText(t *testing.T) {
	r := NewRenderer("", true)
	assert.Equal(t, FormatText, r.Format())
}

func TestRenderTable_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatText, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"OFFSET", "TYPE", "TEXT"}, [][]string{
		{"0", "StartTagOpen", "<"},
		{"1", "StartTag", "div"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "OFFSET  TYPE          TEXT", lines[0])
	assert.Equal(t, "0       StartTagOpen  <", lines[1])
	assert.Equal(t, "1       StartTag      div", lines[2])
}

func TestRenderTable_CellStyle(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatText, true)
	r.SetWriter(&buf)

	var styled []string
	r.SetCellStyle(func(_, col int, value string) *color.Color {
		if col == 1 {
			styled = append(styled, value)
			return color.New(color.FgCyan)
		}
		return nil
	})

	r.RenderTable([]string{"A", "B"}, [][]string{{"1", "x"}, {"2", "y"}})

	assert.Equal(t, []string{"x", "y"}, styled)
	assert.Contains(t, buf.String(), "1  x")
}

func TestRenderTable_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"OFFSET", "TYPE"}, [][]string{{"0", "StartTagOpen"}})

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "0", got[0]["offset"])
	assert.Equal(t, "StartTagOpen", got[0]["type"])
}

func TestRenderTable_YAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatYAML, true)
	r.SetWriter(&buf)

	r.RenderTable([]string{"OFFSET", "TYPE"}, [][]string{{"0", "StartTagOpen"}})

	assert.Contains(t, buf.String(), `offset: "0"`)
	assert.Contains(t, buf.String(), "type: StartTagOpen")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatJSON, true)
	r.SetWriter(&buf)

	require.NoError(t, r.RenderJSON(map[string]int{"blanked": 2}))
	assert.JSONEq(t, `{"blanked": 2}`, buf.String())
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatYAML, true)
	r.SetWriter(&buf)

	data := struct {
		Tag      string `yaml:"tag"`
		Children []int  `yaml:"children"`
	}{Tag: "div", Children: []int{1, 2}}

	require.NoError(t, r.RenderYAML(data))
	assert.Equal(t, "tag: div\nchildren:\n  - 1\n  - 2\n", buf.String())
}

func TestRenderKeyValue(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(FormatText, true)
		r.SetWriter(&buf)

		r.RenderKeyValue("Delimiters", "{}")
		assert.Equal(t, "Delimiters: {}\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(FormatJSON, true)
		r.SetWriter(&buf)

		r.RenderKeyValue("Delimiters", "{}")
		assert.JSONEq(t, `{"Delimiters": "{}"}`, buf.String())
	})
}

func TestSuccessAndError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(FormatText, true)
	r.SetWriter(&buf)

	r.Success("saved")
	r.Error("failed")

	assert.Equal(t, "✓ saved\n✗ failed\n", buf.String())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxLen))
		})
	}
}
