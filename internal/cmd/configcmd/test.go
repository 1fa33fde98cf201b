package configcmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration against a sample template",
		Long: `Validate the effective configuration and preprocess a sample tag written with
the configured delimiters, to confirm that '>' inside an expression is blanked.`,
		Example: `  # Test current config
  lshtml config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configFlag, _ := cmd.Flags().GetString("config")

			cfg, err := config.LoadWithEnv(cmdutil.ConfigPath(configFlag))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runTest(cfg, cmd.OutOrStdout(), noColor)
		},
	}

	return cmd
}

// sampleTag returns a start tag with '>' inside an expression and the text it
// must preprocess to.
func sampleTag(delimiters string) (string, string) {
	open, closeDelim := "{", "}"
	if delimiters != "" {
		open, closeDelim = delimiters[:1], delimiters[1:]
	}
	raw := "<a x=" + open + "b>c" + closeDelim + ">"
	want := "<a x=" + open + "b c" + closeDelim + ">"
	return raw, want
}

func runTest(cfg *config.Config, w io.Writer, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	settings, err := cmdutil.NewSettings(cfg, "", noColor, false, io.Discard)
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Configuration is invalid:", err)
		fmt.Fprintln(w, "\nReconfigure with: lshtml init")
		return err
	}
	_, _ = green.Fprintln(w, "✓ Configuration is valid")

	raw, want := sampleTag(cfg.Delimiters)
	got := settings.Preprocessor().Preprocess(raw)
	if got != want {
		_, _ = red.Fprintf(w, "✗ Sample %q preprocessed to %q, want %q\n", raw, got, want)
		return fmt.Errorf("sample preprocessing failed")
	}
	_, _ = green.Fprintf(w, "✓ Sample %q preprocessed to %q\n", raw, got)

	return nil
}
