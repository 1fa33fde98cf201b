package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective lshtml configuration and where each value comes from.`,
		Example: `  # Show current config
  lshtml config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configFlag, _ := cmd.Flags().GetString("config")
			return runShow(cmdutil.ConfigPath(configFlag), cmd.OutOrStdout(), noColor)
		},
	}

	return cmd
}

func runShow(configPath string, w io.Writer, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, defaultValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-12s", label+":")

		source := "config"
		switch {
		case os.Getenv(envVar) != "" && os.Getenv(envVar) == value:
			source = envVar
		case fileErr != nil || fileValue != value || value == "":
			source = "default"
		}

		if value == "" {
			value = defaultValue
		}
		fmt.Fprint(w, value)
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Delimiters", cfg.Delimiters, fileCfg.Delimiters, "{}", "LSHTML_DELIMITERS")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "text", "LSHTML_OUTPUT")
	printField("Jobs", jobsString(cfg.Jobs), jobsString(fileCfg.Jobs), "cpu count", "LSHTML_JOBS")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func jobsString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
