// Package core defines the pipeline interfaces for briefpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"

	"github.com/gaurav-prasanna/briefpipe/core/markup"
)

// FetchResult holds the raw HTML and response metadata from a page fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Brief is a stored narrative brief as served by the brief API.
type Brief struct {
	ID          string         `json:"id"`
	Brand       string         `json:"brand"`
	Markdown    string         `json:"markdown"`
	GeneratedAt time.Time      `json:"generated_at"`
	Stats       map[string]any `json:"stats,omitempty"`
}

// BriefMetadata travels alongside the segmented blocks into a renderer.
type BriefMetadata struct {
	Brand       string    `json:"brand,omitempty"`
	BrandLabel  string    `json:"brand_label,omitempty"`
	BriefID     string    `json:"brief_id,omitempty"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at,omitempty,omitzero"` // omitempty keeps it optional in the schema
	RenderedAt  time.Time `json:"rendered_at"`
}

// BriefSource retrieves the latest brief for a brand.
type BriefSource interface {
	Fetch(ctx context.Context, brand string) (*Brief, error)
}

// BriefGenerator asks the backend to produce a fresh brief for a brand.
type BriefGenerator interface {
	Generate(ctx context.Context, brand string) (*Brief, error)
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into brief markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts segmented blocks (and metadata) into a final output format.
type Renderer interface {
	Render(blocks []markup.Block, meta BriefMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
