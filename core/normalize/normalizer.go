// Package normalize implements the Normalizer interface.
// It converts a cleaned brief page back into brief markdown so that
// published pages enter the segmenter the same way API briefs do.
//
// The converter is tuned to the brief grammar: rules are "---", bullets
// are "- ", nothing is backslash-escaped, and adjacent lists are not
// separated by HTML comments.
package normalize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// MarkdownNormalizer converts HTML to brief markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{conv: newBriefConverter()}
}

func newBriefConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithEscapeMode(converter.EscapeModeDisabled),
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHorizontalRule("---"),
				commonmark.WithBulletListMarker("-"),
				commonmark.WithEmDelimiter("*"),
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithListEndComment(false),
			),
		),
	)
}

// Normalize converts a cleaned HTML fragment into brief markdown.
// Headings are expected to be h2/h3 already; see extract.HTMLExtractor.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
