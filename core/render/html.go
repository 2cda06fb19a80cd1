// Package render provides output renderers for segmented briefs.
// This file implements the HTML renderer, which reproduces the dashboard's
// brief panel: a node tree built with x/net/html, inline payloads parsed
// in as fragments, and an optional bluemonday pass for untrusted input.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/gaurav-prasanna/briefpipe/core/markup"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tailwind classes used by the dashboard for each block kind.
const (
	classContainer = "space-y-0.5"
	classH2        = "text-sm font-bold text-slate-800 mt-5 mb-2 pb-1 border-b border-slate-200 first:mt-0"
	classH3        = "text-xs font-semibold text-slate-700 mt-3 mb-1"
	classRule      = "my-3 border-slate-200"
	classUL        = "list-disc pl-4 space-y-1 my-2"
	classOL        = "list-decimal pl-4 space-y-1 my-2"
	classItem      = "text-xs text-slate-600 leading-relaxed"
	classParagraph = "text-xs text-slate-600 leading-relaxed my-1"
	classMeta      = "flex items-center justify-between mb-3 pt-1"
	classGenerated = "text-[10px] text-slate-400"
	classBadge     = "text-[10px] font-semibold rounded-full px-2 py-0.5 border"
)

// HTMLRenderer renders blocks as an HTML fragment.
type HTMLRenderer struct {
	// Sanitize runs the output through a UGC policy. Use it whenever the
	// brief text did not come from the trusted brief store.
	Sanitize bool
	// Standalone wraps the fragment in a complete HTML page.
	Standalone bool
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(sanitize, standalone bool) *HTMLRenderer {
	return &HTMLRenderer{Sanitize: sanitize, Standalone: standalone}
}

// Render converts blocks into the dashboard HTML structure.
func (r *HTMLRenderer) Render(blocks []markup.Block, meta core.BriefMetadata) ([]byte, error) {
	root := element(atom.Div, classContainer)

	if header := metaHeader(meta); header != nil {
		root.AppendChild(header)
	}

	for _, b := range blocks {
		node, err := htmlBlock(b)
		if err != nil {
			return nil, err
		}
		root.AppendChild(node)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	out := buf.Bytes()
	if r.Sanitize {
		out = sanitizePolicy().SanitizeBytes(out)
	}
	if r.Standalone {
		out = wrapPage(out, pageTitle(meta))
	}
	return out, nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func htmlBlock(b markup.Block) (*html.Node, error) {
	switch b := b.(type) {
	case markup.Heading:
		a, class := atom.H2, classH2
		if b.Level == 3 {
			a, class = atom.H3, classH3
		}
		n := element(a, class)
		return n, appendInline(n, b.Text)

	case markup.Rule:
		return element(atom.Hr, classRule), nil

	case markup.List:
		a, class := atom.Ul, classUL
		if b.Ordered {
			a, class = atom.Ol, classOL
		}
		list := element(a, class)
		for _, item := range b.Items {
			li := element(atom.Li, classItem)
			if err := appendInline(li, item); err != nil {
				return nil, err
			}
			list.AppendChild(li)
		}
		return list, nil

	case markup.Paragraph:
		n := element(atom.P, classParagraph)
		return n, appendInline(n, b.Text)

	default:
		return nil, fmt.Errorf("unsupported block kind %s", b.Kind())
	}
}

// appendInline renders text's inline markup and parses the result as
// children of parent.
func appendInline(parent *html.Node, text string) error {
	ctxNode := &html.Node{Type: html.ElementNode, Data: parent.Data, DataAtom: parent.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(markup.RenderInline(text)), ctxNode)
	if err != nil {
		return fmt.Errorf("parsing inline markup: %w", err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// metaHeader builds the "Generated ..." line and brand badge. It returns
// nil when there is nothing to show.
func metaHeader(meta core.BriefMetadata) *html.Node {
	if meta.GeneratedAt.IsZero() && meta.BrandLabel == "" {
		return nil
	}

	header := element(atom.Div, classMeta)

	if !meta.GeneratedAt.IsZero() {
		span := element(atom.Span, classGenerated)
		span.AppendChild(textNode(generatedLine(meta.GeneratedAt, renderedAt(meta))))
		header.AppendChild(span)
	}
	if meta.BrandLabel != "" {
		badge := element(atom.Span, classBadge)
		badge.AppendChild(textNode(meta.BrandLabel))
		header.AppendChild(badge)
	}
	return header
}

// renderedAt is the reference time for relative ages.
func renderedAt(meta core.BriefMetadata) time.Time {
	if meta.RenderedAt.IsZero() {
		return time.Now()
	}
	return meta.RenderedAt
}

// generatedLine formats the generation time with a relative age.
func generatedLine(at, now time.Time) string {
	return fmt.Sprintf("Generated %s (%s)",
		at.Local().Format("2 Jan 2006, 15:04"),
		humanize.RelTime(at, now, "ago", "from now"))
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// sanitizePolicy keeps the markup the renderer produces and drops
// everything else.
func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

func pageTitle(meta core.BriefMetadata) string {
	if meta.BrandLabel != "" {
		return meta.BrandLabel + " brief"
	}
	return "Brief"
}

func wrapPage(fragment []byte, title string) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n<script src=\"https://cdn.tailwindcss.com\"></script>\n</head>\n<body class=\"bg-white p-4\">\n")
	buf.Write(fragment)
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes()
}
