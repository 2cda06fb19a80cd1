// Package render — JSON renderer.
// Emits the segmented blocks as a typed JSON document: one object per block
// with its kind discriminator, raw payload and inline-rendered HTML.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/gaurav-prasanna/briefpipe/core/markup"
	"github.com/invopop/jsonschema"
)

// Document is the complete JSON output for a single brief.
type Document struct {
	Metadata core.BriefMetadata `json:"metadata"`
	Blocks   []BlockJSON        `json:"blocks"`
}

// BlockJSON is the wire form of a markup.Block.
type BlockJSON struct {
	Kind      string   `json:"kind" jsonschema:"enum=heading,enum=rule,enum=list,enum=paragraph"`
	Level     int      `json:"level,omitempty" jsonschema:"enum=2,enum=3"`
	Ordered   bool     `json:"ordered,omitempty"`
	Text      string   `json:"text,omitempty"`
	HTML      string   `json:"html,omitempty"`
	Items     []string `json:"items,omitempty"`
	ItemsHTML []string `json:"items_html,omitempty"`
}

// JSONRenderer produces structured JSON output from blocks.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts blocks and metadata into a Document.
func (r *JSONRenderer) Render(blocks []markup.Block, meta core.BriefMetadata) ([]byte, error) {
	doc := Document{
		Metadata: meta,
		Blocks:   make([]BlockJSON, 0, len(blocks)),
	}
	for _, b := range blocks {
		doc.Blocks = append(doc.Blocks, toBlockJSON(b))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func toBlockJSON(b markup.Block) BlockJSON {
	out := BlockJSON{Kind: b.Kind().String()}
	switch b := b.(type) {
	case markup.Heading:
		out.Level = b.Level
		out.Text = b.Text
		out.HTML = markup.RenderInline(b.Text)
	case markup.List:
		out.Ordered = b.Ordered
		out.Items = b.Items
		out.ItemsHTML = markup.HTMLInline.RenderAll(b.Items)
	case markup.Paragraph:
		out.Text = b.Text
		out.HTML = markup.RenderInline(b.Text)
	}
	return out
}

// JSONSchema returns the JSON schema describing Document.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Document{})
	schema.Title = "briefpipe document"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return data, nil
}
