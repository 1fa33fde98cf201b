// Package parse provides the parse command.
package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/view"
	"github.com/creativesands/language-tools/pkg/html"
	"github.com/creativesands/language-tools/pkg/md"
)

type parseOptions struct {
	stdin  io.Reader
	stdout io.Writer
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the element tree of a template",
		Long: `Preprocess a template and print its element tree. Offsets refer to the
original file. Reads stdin when no file is given.

Output formats:
  text      indented outline (default)
  json      full tree as JSON
  yaml      full tree as YAML
  markdown  markdown preview of the markup`,
		Example: `  # Outline a component
  lshtml parse App.svelte

  # Full tree as JSON
  lshtml parse App.svelte -o json`,
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
			return runParse(path, opts, settings)
		},
	}

	return cmd
}

func runParse(path string, opts *parseOptions, settings *cmdutil.Settings) error {
	data, err := cmdutil.ReadInput(path, opts.stdin)
	if err != nil {
		return err
	}
	name := cmdutil.InputName(path)
	renderer := settings.Renderer(opts.stdout)

	if view.Format(settings.Output) == view.FormatMarkdown {
		markdown, err := md.FromMarkup(string(data), settings.PreprocessOptions()...)
		if err != nil {
			return fmt.Errorf("failed to convert %s to markdown: %w", name, err)
		}
		renderer.RenderText(markdown)
		return nil
	}

	doc := html.Parse(string(data), settings.PreprocessOptions()...)
	for _, w := range doc.Warnings {
		settings.Logger.Warn().Str("file", name).Msg(w)
	}

	switch view.Format(settings.Output) {
	case view.FormatJSON:
		return renderer.RenderJSON(doc)
	case view.FormatYAML:
		return renderer.RenderYAML(doc)
	}

	doc.Walk(func(n *html.Node, depth int) bool {
		renderer.RenderText(outlineLine(n, depth))
		return true
	})
	return nil
}

// outlineLine formats one node as `<tag attr="v"> [start,end)`, indented by depth.
func outlineLine(n *html.Node, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("<")
	b.WriteString(n.Tag)
	for _, attr := range n.Attributes {
		b.WriteString(" ")
		b.WriteString(attr.Name)
		if attr.HasValue {
			b.WriteString("=")
			b.WriteString(attr.Value)
		}
	}
	fmt.Fprintf(&b, "> [%d,%d)", n.Start, n.End)
	if !n.Closed {
		b.WriteString(" (unclosed)")
	}
	return b.String()
}
