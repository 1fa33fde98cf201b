package init

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativesands/language-tools/internal/config"
)

func TestAnswers_Config(t *testing.T) {
	tests := []struct {
		name    string
		answers answers
		want    config.Config
		errMsg  string
	}{
		{
			name:    "defaults are omitted",
			answers: answers{delimiters: "{}", output: "text", jobs: "0"},
			want:    config.Config{},
		},
		{
			name:    "custom values",
			answers: answers{delimiters: " [] ", output: "json", jobs: "4"},
			want:    config.Config{Delimiters: "[]", OutputFormat: "json", Jobs: 4},
		},
		{
			name:    "empty jobs",
			answers: answers{delimiters: "()", output: "yaml"},
			want:    config.Config{Delimiters: "()", OutputFormat: "yaml"},
		},
		{
			name:    "bad delimiters",
			answers: answers{delimiters: "{"},
			errMsg:  "invalid configuration",
		},
		{
			name:    "non-numeric jobs",
			answers: answers{jobs: "many"},
			errMsg:  "jobs must be a number",
		},
		{
			name:    "negative jobs",
			answers: answers{jobs: "-2"},
			errMsg:  "jobs must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.answers.config()
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestValidateDelimiters(t *testing.T) {
	assert.NoError(t, validateDelimiters("{}"))
	assert.NoError(t, validateDelimiters(""))
	assert.Error(t, validateDelimiters("<>"))
	assert.Error(t, validateDelimiters("{{"))
}

func TestSaveAnswers(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "lshtml", "config.yml")

	var out bytes.Buffer
	err := saveAnswers(configPath, answers{delimiters: "[]", output: "json", jobs: "2"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Configuration saved to "+configPath)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Config{Delimiters: "[]", OutputFormat: "json", Jobs: 2}, *loaded)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0400, "config file must be readable by its owner")
}

func TestSaveAnswers_InvalidDoesNotWrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := saveAnswers(configPath, answers{delimiters: "<>"}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestNewCmdInit_NoPrompt(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cmd := NewCmdInit()
	cmd.Flags().String("config", "", "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-prompt", "--delimiters", "()", "--config", configPath})

	require.NoError(t, cmd.Execute())

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "()", loaded.Delimiters)
}
