// Package root provides the root command for the lshtml CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/cmd/completion"
	"github.com/creativesands/language-tools/internal/cmd/configcmd"
	initcmd "github.com/creativesands/language-tools/internal/cmd/init"
	"github.com/creativesands/language-tools/internal/cmd/parse"
	"github.com/creativesands/language-tools/internal/cmd/preprocess"
	"github.com/creativesands/language-tools/internal/cmd/tokens"
	"github.com/creativesands/language-tools/internal/version"
)

// NewCmdRoot creates the root command for lshtml.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lshtml",
		Short: "HTML tooling for templates with embedded expressions",
		Long: `lshtml prepares component templates (Svelte-style markup with {...}
expressions) for HTML-based language tooling.

It blanks '<' and '>' characters that appear inside expressions within a tag,
so that a standard HTML scanner sees the element structure the author intended.
The rewrite keeps every byte offset unchanged.

Get started by running: lshtml preprocess --help`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/lshtml/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: text, json, yaml, markdown")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log every blanked delimiter")

	cmd.SetVersionTemplate("lshtml version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(preprocess.NewCmdPreprocess())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
