// Package cmdutil resolves the global flags and configuration shared by
// lshtml commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/config"
	"github.com/creativesands/language-tools/internal/logging"
	"github.com/creativesands/language-tools/internal/view"
	"github.com/creativesands/language-tools/pkg/html"
)

// Settings is the resolved configuration for one command invocation.
type Settings struct {
	Config  *config.Config
	Output  string
	NoColor bool
	Verbose bool
	Logger  zerolog.Logger
	oracle  html.Oracle
}

// NewSettings validates cfg and merges it with flag values. Flags win over
// the config file; an empty output falls back to the configured format.
func NewSettings(cfg *config.Config, output string, noColor, verbose bool, logOut io.Writer) (*Settings, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'lshtml init' to configure)", err)
	}

	if output == "" {
		output = cfg.OutputFormat
	}
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}
	if output == "" {
		output = string(view.FormatText)
	}

	oracle, err := cfg.Oracle()
	if err != nil {
		return nil, err
	}

	verbose = verbose || cfg.Verbose
	return &Settings{
		Config:  cfg,
		Output:  output,
		NoColor: noColor,
		Verbose: verbose,
		Logger:  logging.New(logOut, verbose, noColor),
		oracle:  oracle,
	}, nil
}

// Load builds Settings from the root command's persistent flags, the config
// file and the environment.
func Load(cmd *cobra.Command) (*Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	output, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.LoadWithEnv(ConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewSettings(cfg, output, noColor, verbose, cmd.ErrOrStderr())
}

// ConfigPath returns flagValue, or the default config path when it is empty.
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.DefaultConfigPath()
}

// PreprocessOptions returns the preprocessor options for these settings.
func (s *Settings) PreprocessOptions() []html.PreprocessOption {
	return []html.PreprocessOption{
		html.WithOracle(s.oracle),
		html.WithLogger(s.Logger),
	}
}

// Preprocessor returns a preprocessor configured from these settings.
func (s *Settings) Preprocessor() *html.Preprocessor {
	return html.NewPreprocessor(s.PreprocessOptions()...)
}

// Jobs returns the worker count: override if positive, then the config,
// then the number of CPUs.
func (s *Settings) Jobs(override int) int {
	if override > 0 {
		return override
	}
	if s.Config.Jobs > 0 {
		return s.Config.Jobs
	}
	return runtime.NumCPU()
}

// Renderer returns a renderer for the resolved output format writing to w.
func (s *Settings) Renderer(w io.Writer) *view.Renderer {
	r := view.NewRenderer(view.Format(s.Output), s.NoColor)
	r.SetWriter(w)
	return r
}

// ReadInput reads path, or stdin when path is empty or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// InputName is the display name of an input path.
func InputName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}
