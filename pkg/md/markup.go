// Package md handles markdown documents that host template markup: it finds
// the raw HTML regions of a markdown source and preprocesses them in place,
// and renders markup back to markdown for previews.
package md

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/creativesands/language-tools/pkg/html"
)

// mdParser is a pre-configured goldmark instance with GFM extensions.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Region is one raw HTML region of a markdown source. A block inside a
// container (list item, block quote) spans several non-contiguous segments.
type Region struct {
	Segments []text.Segment
	// Code holds the source ranges of code spans inside the region. Bytes in
	// them are never blanked.
	Code []text.Segment
}

// Text returns the region's markup as the concatenation of its segments.
func (r Region) Text(source []byte) string {
	var b strings.Builder
	for _, seg := range r.Segments {
		b.Write(source[seg.Start:seg.Stop])
	}
	return b.String()
}

// SourceOffset maps an offset into Text back to an offset into the source.
// It returns -1 when offset is outside the region.
func (r Region) SourceOffset(offset int) int {
	if offset < 0 {
		return -1
	}
	for _, seg := range r.Segments {
		n := seg.Stop - seg.Start
		if offset < n {
			return seg.Start + offset
		}
		offset -= n
	}
	return -1
}

func (r Region) inCode(pos int) bool {
	for _, seg := range r.Code {
		if pos >= seg.Start && pos < seg.Stop {
			return true
		}
	}
	return false
}

// HTMLRegions returns the HTML blocks, inline raw HTML and tag paragraphs of
// a markdown source, in document order.
//
// A component tag whose attributes hold expressions, like
// <Foo checked={a < 1}>, is not a valid CommonMark tag, so goldmark reads
// it as paragraph text. A paragraph line starting with '<' and a letter
// therefore opens a region that runs to the end of the paragraph.
func HTMLRegions(source []byte) []Region {
	doc := mdParser.Parser().Parse(text.NewReader(source))

	var regions []Region
	tagParagraph := -1 // index of the region opened by the current paragraph
	var covered text.Segment

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if _, ok := n.(*ast.Paragraph); ok && !entering {
			tagParagraph = -1
			return ast.WalkContinue, nil
		}
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.HTMLBlock:
			var region Region
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				region.Segments = append(region.Segments, lines.At(i))
			}
			if node.HasClosure() {
				region.Segments = append(region.Segments, node.ClosureLine)
			}
			regions = append(regions, region)
		case *ast.Paragraph:
			if region, ok := tagParagraphRegion(node, source); ok {
				regions = append(regions, region)
				tagParagraph = len(regions) - 1
				covered = text.NewSegment(region.Segments[0].Start, region.Segments[len(region.Segments)-1].Stop)
			}
		case *ast.RawHTML:
			if tagParagraph >= 0 && node.Segments.Len() > 0 && node.Segments.At(0).Start >= covered.Start {
				return ast.WalkContinue, nil
			}
			var region Region
			for i := 0; i < node.Segments.Len(); i++ {
				region.Segments = append(region.Segments, node.Segments.At(i))
			}
			regions = append(regions, region)
		case *ast.CodeSpan:
			if tagParagraph < 0 {
				return ast.WalkSkipChildren, nil
			}
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok && t.Segment.Start >= covered.Start {
					regions[tagParagraph].Code = append(regions[tagParagraph].Code, t.Segment)
				}
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return regions
}

// tagParagraphRegion returns the lines of a paragraph from the first one that
// starts with a start tag.
func tagParagraphRegion(node *ast.Paragraph, source []byte) (Region, bool) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i).Value(source)
		if len(line) < 2 || line[0] != '<' || !isASCIILetter(line[1]) {
			continue
		}
		var region Region
		for j := i; j < lines.Len(); j++ {
			region.Segments = append(region.Segments, lines.At(j))
		}
		return region, true
	}
	return Region{}, false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Preprocess runs p over every raw HTML region of a markdown source and
// returns a copy of the source with the blanked bytes replaced by spaces,
// along with the blanked source offsets in ascending order. Markdown text
// and code are never changed.
func Preprocess(source []byte, p *html.Preprocessor) ([]byte, []int) {
	out := bytes.Clone(source)
	var blanked []int

	for _, region := range HTMLRegions(source) {
		_, offsets := p.PreprocessWithReport(region.Text(source))
		for _, offset := range offsets {
			if pos := region.SourceOffset(offset); pos >= 0 && !region.inCode(pos) {
				out[pos] = ' '
				blanked = append(blanked, pos)
			}
		}
	}

	sort.Ints(blanked)
	return out, blanked
}

// IsMarkdownFile reports whether a path names a markdown host document.
func IsMarkdownFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range []string{".md", ".markdown", ".svx"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
