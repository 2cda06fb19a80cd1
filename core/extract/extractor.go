// Package extract implements the Extractor interface.
// It isolates the brief body from a published brief page and reshapes it
// so the normalizer only sees structure the brief grammar can express:
//  1. Pick the brief container (data-brief, <main>, <article>, or <body>)
//  2. Remove chrome and media that never carry brief text
//  3. Fold headings onto the two levels briefs use (h2 sections, h3 subsections)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// chromeSelectors are page elements dropped before the brief is located.
var chromeSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// containerSelectors are tried in priority order.
var containerSelectors = []string{"[data-brief]", "main", "article", "body"}

// headingLevels maps every HTML heading onto a brief heading level.
var headingLevels = map[atom.Atom]atom.Atom{
	atom.H1: atom.H2,
	atom.H4: atom.H3,
	atom.H5: atom.H3,
	atom.H6: atom.H3,
}

// HTMLExtractor locates and reshapes the brief on a page.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the brief container of page as an HTML fragment whose
// headings are all h2 or h3.
func (e *HTMLExtractor) Extract(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find(strings.Join(chromeSelectors, ", ")).Remove()

	brief := briefContainer(doc)
	if brief == nil {
		return "", fmt.Errorf("no brief container found in page")
	}
	foldHeadings(brief)

	fragment, err := goquery.OuterHtml(brief)
	if err != nil {
		return "", fmt.Errorf("serializing brief: %w", err)
	}
	return fragment, nil
}

func briefContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

// foldHeadings renames h1 to h2 and h4-h6 to h3 in place.
func foldHeadings(brief *goquery.Selection) {
	brief.Find("h1, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			level := headingLevels[n.DataAtom]
			n.DataAtom = level
			n.Data = level.String()
		}
	})
}
