package md

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/creativesands/language-tools/pkg/html"
)

// FromMarkup renders template markup as markdown for a readable preview.
// The markup is preprocessed first so that expressions inside tags do not
// break the element structure the converter sees.
func FromMarkup(markup string, opts ...html.PreprocessOption) (string, error) {
	if markup == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html.Preprocess(markup, opts...))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(markdown), nil
}
