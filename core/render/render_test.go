package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/gaurav-prasanna/briefpipe/core/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBrief = `## 🎯 Executive Summary
Competitors ran **142 ads**; *87* are still active.

## 📊 Format Landscape
- Static: 48%
- Video: 31%

---

### Battle-tested creatives
1. Mamaearth: "Glow naturally"
2. Plum: ` + "`clean beauty`" + `
`

var sampleMeta = core.BriefMetadata{
	Brand:       "bebodywise",
	BrandLabel:  "Bebodywise",
	BriefID:     "3f2b8c1e-6a7d-4e2f-9b1a-0c5d7e8f9a10",
	Source:      "http://localhost:8000/api/brief/bebodywise",
	GeneratedAt: time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC),
	RenderedAt:  time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
}

func parseHTML(t *testing.T, data []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestHTMLRenderer_Structure(t *testing.T) {
	out, err := NewHTMLRenderer(false, false).Render(markup.Segment(sampleBrief), core.BriefMetadata{})
	require.NoError(t, err)

	doc := parseHTML(t, out)
	container := doc.Find("body > div")
	require.Equal(t, 1, container.Length())
	class, _ := container.Attr("class")
	assert.Equal(t, classContainer, class)

	assert.Equal(t, 2, doc.Find("h2").Length())
	assert.Equal(t, 1, doc.Find("h3").Length())
	assert.Equal(t, 1, doc.Find("hr").Length())
	assert.Equal(t, 1, doc.Find("ul").Length())
	assert.Equal(t, 1, doc.Find("ol").Length())
	assert.Equal(t, 2, doc.Find("ul > li").Length())
	assert.Equal(t, 2, doc.Find("ol > li").Length())
	assert.Equal(t, 1, doc.Find("p").Length())

	assert.Equal(t, "🎯 Executive Summary", doc.Find("h2").First().Text())
	assert.Equal(t, "142 ads", doc.Find("p strong").Text())
	assert.Equal(t, "87", doc.Find("p em").Text())
	assert.Equal(t, "clean beauty", doc.Find("ol li code").Text())
	assert.Equal(t, `Mamaearth: "Glow naturally"`, doc.Find("ol li").First().Text())

	class, _ = doc.Find("ul").Attr("class")
	assert.Equal(t, classUL, class)
}

func TestHTMLRenderer_MetaHeader(t *testing.T) {
	out, err := NewHTMLRenderer(false, false).Render(nil, sampleMeta)
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Contains(t, doc.Find("span").First().Text(), "3 hours ago")
	assert.Equal(t, "Bebodywise", doc.Find("span").Last().Text())
}

func TestHTMLRenderer_EscapesLiteralText(t *testing.T) {
	blocks := []markup.Block{markup.Paragraph{Text: "a < b & c"}}
	out, err := NewHTMLRenderer(false, false).Render(blocks, core.BriefMetadata{})
	require.NoError(t, err)

	assert.Contains(t, string(out), "a &lt; b &amp; c")
	assert.Equal(t, "a < b & c", parseHTML(t, out).Find("p").Text())
}

func TestHTMLRenderer_Sanitize(t *testing.T) {
	blocks := markup.Segment("hello <script>alert(1)</script> **world**\n- <img src=x onerror=alert(1)>item")

	unsafe, err := NewHTMLRenderer(false, false).Render(blocks, core.BriefMetadata{})
	require.NoError(t, err)
	assert.Contains(t, string(unsafe), "<script>")

	safe, err := NewHTMLRenderer(true, false).Render(blocks, core.BriefMetadata{})
	require.NoError(t, err)
	assert.NotContains(t, string(safe), "<script>")
	assert.NotContains(t, string(safe), "onerror")

	doc := parseHTML(t, safe)
	assert.Equal(t, "world", doc.Find("p strong").Text())
	class, _ := doc.Find("p strong").Attr("class")
	assert.Equal(t, markup.StrongClass, class)
}

func TestHTMLRenderer_Standalone(t *testing.T) {
	out, err := NewHTMLRenderer(false, true).Render(markup.Segment("## Hi"), sampleMeta)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, "<title>Bebodywise brief</title>")
	assert.Equal(t, "Hi", parseHTML(t, out).Find("h2").Text())
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	assert.Equal(t, ".json", r.Extension())

	out, err := r.Render(markup.Segment(sampleBrief), sampleMeta)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))

	kinds := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		kinds[i] = b.Kind
	}
	assert.Equal(t, []string{"heading", "paragraph", "heading", "list", "rule", "heading", "list"}, kinds)

	assert.Equal(t, 2, doc.Blocks[0].Level)
	assert.Equal(t, "Competitors ran **142 ads**; *87* are still active.", doc.Blocks[1].Text)
	assert.Contains(t, doc.Blocks[1].HTML, "<strong")
	assert.True(t, doc.Blocks[6].Ordered)
	assert.Equal(t, []string{"Static: 48%", "Video: 31%"}, doc.Blocks[3].Items)
	assert.Len(t, doc.Blocks[3].ItemsHTML, 2)
	assert.Equal(t, "bebodywise", doc.Metadata.Brand)
}

func TestJSONRenderer_OmitsZeroGeneratedAt(t *testing.T) {
	meta := core.BriefMetadata{Source: "notes/weekly.md", RenderedAt: sampleMeta.RenderedAt}
	out, err := NewJSONRenderer().Render(markup.Segment("## Hi"), meta)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "generated_at")
	assert.NotContains(t, string(out), "0001-01-01")
	assert.Contains(t, string(out), "rendered_at")

	out, err = NewJSONRenderer().Render(nil, sampleMeta)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"generated_at": "2026-10-16T06:00:00Z"`)
}

func TestJSONSchema(t *testing.T) {
	data, err := JSONSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "briefpipe document", schema["title"])
	assert.Contains(t, string(data), "blocks")
	assert.Contains(t, string(data), "paragraph")

	props := schema["properties"].(map[string]any)
	metadata := props["metadata"].(map[string]any)
	required, _ := metadata["required"].([]any)
	assert.Contains(t, required, "rendered_at")
	assert.NotContains(t, required, "generated_at")
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	assert.Equal(t, ".pdf", r.Extension())

	out, err := r.Render(markup.Segment(sampleBrief), sampleMeta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestTextRenderer(t *testing.T) {
	r := NewTextRenderer(0)
	assert.Equal(t, defaultTextWidth, r.Width)
	assert.Equal(t, ".txt", r.Extension())

	out, err := r.Render(markup.Segment(sampleBrief), sampleMeta)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Executive Summary")
	assert.Contains(t, s, "142 ads")
	assert.NotContains(t, s, "**")
	assert.Contains(t, s, "•")
	assert.Contains(t, s, "1.")
	assert.Contains(t, s, "2.")
	assert.Contains(t, s, "───")
	assert.Contains(t, s, "Bebodywise")
	assert.Contains(t, s, "3 hours ago")
}
