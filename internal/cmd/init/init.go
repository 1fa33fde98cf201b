// Package init provides the init command for lshtml.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/config"
	"github.com/creativesands/language-tools/internal/view"
	"github.com/creativesands/language-tools/pkg/html"
)

// answers holds the raw form values before they are turned into a Config.
type answers struct {
	delimiters string
	output     string
	jobs       string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		prefill  answers
		noPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize lshtml configuration",
		Long: `Create the lshtml configuration file.

This command asks for the expression delimiters used by your templates, the
default output format and the number of files processed concurrently. The
configuration is saved to ~/.config/lshtml/config.yml unless --config is given.`,
		Example: `  # Interactive setup
  lshtml init

  # Non-interactive setup for bracket expressions
  lshtml init --delimiters '[]' --jobs 4 --no-prompt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFlag, _ := cmd.Flags().GetString("config")
			configPath := cmdutil.ConfigPath(configFlag)
			if noPrompt {
				return saveAnswers(configPath, prefill, cmd.OutOrStdout())
			}
			return runInit(configPath, prefill, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&prefill.delimiters, "delimiters", "{}", "Expression delimiter pair")
	cmd.Flags().StringVar(&prefill.output, "format", "text", "Default output format")
	cmd.Flags().StringVar(&prefill.jobs, "jobs", "0", "Files processed concurrently (0 uses the CPU count)")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Save the flag values without asking")

	return cmd
}

func runInit(configPath string, a answers, w io.Writer) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}

	formatOptions := make([]huh.Option[string], 0, len(view.ValidFormats()))
	for _, f := range view.ValidFormats() {
		formatOptions = append(formatOptions, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Expression delimiters").
				Description("Opening and closing character of template expressions").
				Placeholder("{}").
				Value(&a.delimiters).
				Validate(validateDelimiters),

			huh.NewSelect[string]().
				Title("Output format").
				Description("Default format for parse, tokens and reports").
				Options(formatOptions...).
				Value(&a.output),

			huh.NewInput().
				Title("Jobs").
				Description("Files processed concurrently (0 uses the CPU count)").
				Placeholder("0").
				Value(&a.jobs).
				Validate(validateJobs),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	return saveAnswers(configPath, a, w)
}

func validateDelimiters(s string) error {
	_, err := html.OracleFor(strings.TrimSpace(s))
	return err
}

func validateJobs(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("jobs must be a number")
	}
	if n < 0 {
		return errors.New("jobs must not be negative")
	}
	return nil
}

// config converts the answers into a validated Config.
func (a answers) config() (*config.Config, error) {
	cfg := &config.Config{
		Delimiters:   strings.TrimSpace(a.delimiters),
		OutputFormat: strings.TrimSpace(a.output),
	}
	if cfg.Delimiters == "{}" {
		cfg.Delimiters = ""
	}
	if cfg.OutputFormat == string(view.FormatText) {
		cfg.OutputFormat = ""
	}

	if err := validateJobs(a.jobs); err != nil {
		return nil, err
	}
	if jobs := strings.TrimSpace(a.jobs); jobs != "" {
		cfg.Jobs, _ = strconv.Atoi(jobs)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func saveAnswers(configPath string, a answers, w io.Writer) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "Configuration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  lshtml preprocess App.svelte")
	fmt.Fprintln(w, "  lshtml parse App.svelte")

	return nil
}
