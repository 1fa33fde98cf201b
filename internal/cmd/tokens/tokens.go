// Package tokens provides the tokens command.
package tokens

import (
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/view"
	"github.com/creativesands/language-tools/pkg/html"
)

const maxTextLen = 40

type tokensOptions struct {
	preprocessed bool
	stdin        io.Reader
	stdout       io.Writer
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the scanner token stream of a template",
		Long: `Run the HTML scanner over a template and print one row per token with its
offset, type, scanner state and text. Reads stdin when no file is given.`,
		Example: `  # Tokens of the raw file
  lshtml tokens App.svelte

  # Tokens after expression delimiters were blanked
  lshtml tokens --preprocessed App.svelte`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runTokens(path, opts, settings)
		},
	}

	cmd.Flags().BoolVarP(&opts.preprocessed, "preprocessed", "p", false, "Scan the preprocessed text")

	return cmd
}

func runTokens(path string, opts *tokensOptions, settings *cmdutil.Settings) error {
	data, err := cmdutil.ReadInput(path, opts.stdin)
	if err != nil {
		return err
	}

	text := string(data)
	if opts.preprocessed {
		text = settings.Preprocessor().Preprocess(text)
	}

	headers := []string{"OFFSET", "TYPE", "STATE", "TEXT"}
	var rows [][]string
	scanner := html.NewScanner(text, 0, html.WithinContent)
	for token := scanner.Scan(); token != html.EOS; token = scanner.Scan() {
		rows = append(rows, []string{
			strconv.Itoa(scanner.TokenOffset()),
			token.String(),
			scanner.State().String(),
			view.Truncate(strconv.Quote(scanner.TokenText()), maxTextLen),
		})
	}

	renderer := settings.Renderer(opts.stdout)
	renderer.SetCellStyle(func(_, col int, value string) *color.Color {
		if col != 1 {
			return nil
		}
		return tokenColor(value)
	})
	renderer.RenderTable(headers, rows)

	return nil
}

var (
	tagColor       = color.New(color.FgCyan)
	attributeColor = color.New(color.FgYellow)
	valueColor     = color.New(color.FgGreen)
	commentColor   = color.New(color.Faint)
	unknownColor   = color.New(color.FgRed, color.Bold)
)

// tokenColor colors a token type name by category.
func tokenColor(name string) *color.Color {
	switch name {
	case html.StartTagOpen.String(), html.StartTag.String(), html.StartTagClose.String(),
		html.StartTagSelfClose.String(), html.EndTagOpen.String(), html.EndTag.String(),
		html.EndTagClose.String():
		return tagColor
	case html.AttributeName.String(), html.DelimiterAssign.String():
		return attributeColor
	case html.AttributeValue.String():
		return valueColor
	case html.StartCommentTag.String(), html.Comment.String(), html.EndCommentTag.String():
		return commentColor
	case html.Unknown.String():
		return unknownColor
	}
	return nil
}
