// Package preprocess provides the preprocess command.
package preprocess

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/creativesands/language-tools/internal/cmd/cmdutil"
	"github.com/creativesands/language-tools/internal/view"
	"github.com/creativesands/language-tools/pkg/html"
	"github.com/creativesands/language-tools/pkg/md"
)

type preprocessOptions struct {
	write    bool
	report   bool
	jobs     int
	markdown bool
	stdin    io.Reader
	stdout   io.Writer
}

// result is the outcome of preprocessing one input.
type result struct {
	name    string
	output  []byte
	blanks  []int
	changed bool
}

// NewCmdPreprocess creates the preprocess command.
func NewCmdPreprocess() *cobra.Command {
	opts := &preprocessOptions{}

	cmd := &cobra.Command{
		Use:   "preprocess [files...]",
		Short: "Blank tag delimiters inside template expressions",
		Long: `Rewrite markup so that '<' and '>' characters inside template expressions
are replaced with spaces. The output has exactly the same length as the input,
so offsets reported by an HTML parser map straight back to the source.

Reads stdin when no files are given. Files ending in .md, .markdown or .svx are
treated as markdown: only their raw HTML blocks and inline HTML are rewritten.`,
		Example: `  # Preprocess a component to stdout
  lshtml preprocess App.svelte

  # Rewrite files in place using 4 workers
  lshtml preprocess --write --jobs 4 src/*.svelte

  # Show which offsets were blanked
  lshtml preprocess --report -o json App.svelte

  # Read from stdin
  cat App.svelte | lshtml preprocess`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runPreprocess(cmd.Context(), args, opts, settings)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&opts.report, "report", false, "Print blanked offsets instead of the rewritten text")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "Number of files processed concurrently (default: config, then CPU count)")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Treat all inputs as markdown")

	return cmd
}

func runPreprocess(ctx context.Context, files []string, opts *preprocessOptions, settings *cmdutil.Settings) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.write && len(files) == 0 {
		return fmt.Errorf("--write requires at least one file")
	}

	p := settings.Preprocessor()
	inputs := files
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	results := make([]result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.Jobs(opts.jobs))

	for i, path := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := processInput(path, opts, p)
			if err != nil {
				return err
			}
			results[i] = res
			settings.Logger.Debug().
				Str("file", res.name).
				Int("blanks", len(res.blanks)).
				Msg("preprocessed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	renderer := settings.Renderer(opts.stdout)

	if opts.write {
		for i := range results {
			if !results[i].changed {
				continue
			}
			if err := writeInPlace(inputs[i], results[i].output); err != nil {
				return err
			}
			if !opts.report {
				renderer.Success(fmt.Sprintf("%s: blanked %d delimiter(s)", results[i].name, len(results[i].blanks)))
			}
		}
	}

	if opts.report {
		renderReport(renderer, results)
		return nil
	}

	if !opts.write {
		for _, res := range results {
			if _, err := opts.stdout.Write(res.output); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	return nil
}

func processInput(path string, opts *preprocessOptions, p *html.Preprocessor) (result, error) {
	data, err := cmdutil.ReadInput(path, opts.stdin)
	if err != nil {
		return result{}, err
	}

	res := result{name: cmdutil.InputName(path)}
	if opts.markdown || md.IsMarkdownFile(path) {
		res.output, res.blanks = md.Preprocess(data, p)
	} else {
		var out string
		out, res.blanks = p.PreprocessWithReport(string(data))
		res.output = []byte(out)
	}
	res.changed = len(res.blanks) > 0

	return res, nil
}

func writeInPlace(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func renderReport(renderer *view.Renderer, results []result) {
	headers := []string{"FILE", "BLANKS", "OFFSETS"}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		offsets := make([]string, len(res.blanks))
		for i, off := range res.blanks {
			offsets[i] = strconv.Itoa(off)
		}
		rows = append(rows, []string{res.name, strconv.Itoa(len(res.blanks)), strings.Join(offsets, ",")})
	}
	renderer.RenderTable(headers, rows)
}
