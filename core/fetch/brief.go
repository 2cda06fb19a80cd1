package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/google/uuid"
)

// sqliteTimeLayout is the format of datetime('now') in the brief store.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// BriefClient fetches and generates briefs through the brief API.
type BriefClient struct {
	baseURL string
	client  *http.Client
}

// NewBriefClient creates a BriefClient for the API rooted at baseURL.
func NewBriefClient(baseURL string, timeout time.Duration) *BriefClient {
	return &BriefClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newClient(timeout),
	}
}

// briefResponse is the wire shape of a stored brief.
type briefResponse struct {
	ID          string         `json:"id"`
	Brand       string         `json:"brand"`
	Markdown    string         `json:"markdown"`
	GeneratedAt string         `json:"generated_at"`
	Stats       map[string]any `json:"stats"`
}

// errorResponse is the wire shape of an API error.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Fetch returns the most recently generated brief for brand.
func (c *BriefClient) Fetch(ctx context.Context, brand string) (*core.Brief, error) {
	if _, ok := core.LookupBrand(brand); !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownBrand, brand)
	}

	resp, err := c.do(ctx, http.MethodGet, c.BriefURL(brand))
	if err != nil {
		return nil, fmt.Errorf("fetching brief for %s: %w", brand, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w for %s", core.ErrBriefNotFound, brand)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching brief for %s: unexpected status %d: %s", brand, resp.StatusCode, readDetail(resp.Body))
	}

	return decodeBrief(resp.Body)
}

// Generate asks the API to write a new brief for brand and returns it.
func (c *BriefClient) Generate(ctx context.Context, brand string) (*core.Brief, error) {
	if _, ok := core.LookupBrand(brand); !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownBrand, brand)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/brief/generate/"+url.PathEscape(brand))
	if err != nil {
		return nil, fmt.Errorf("generating brief for %s: %w", brand, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.GenerationError{
			Brand:  brand,
			Status: resp.StatusCode,
			Detail: readDetail(resp.Body),
		}
	}

	return decodeBrief(resp.Body)
}

// BriefURL returns the API address of the latest brief for brand.
func (c *BriefClient) BriefURL(brand string) string {
	return c.baseURL + "/api/brief/" + url.PathEscape(brand)
}

func (c *BriefClient) do(ctx context.Context, method, target string) (*http.Response, error) {
	resp, err := send(ctx, c.client, method, target, acceptJSON)
	if err != nil {
		return nil, fmt.Errorf("calling brief API: %w", err)
	}
	return resp, nil
}

func decodeBrief(r io.Reader) (*core.Brief, error) {
	var raw briefResponse
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding brief response: %w", err)
	}

	if _, err := uuid.Parse(raw.ID); err != nil {
		return nil, fmt.Errorf("invalid brief id %q: %w", raw.ID, err)
	}

	generatedAt, err := parseGeneratedAt(raw.GeneratedAt)
	if err != nil {
		return nil, err
	}

	return &core.Brief{
		ID:          raw.ID,
		Brand:       raw.Brand,
		Markdown:    raw.Markdown,
		GeneratedAt: generatedAt,
		Stats:       raw.Stats,
	}, nil
}

// parseGeneratedAt accepts the store's UTC datetime format or RFC 3339.
// An empty value yields the zero time.
func parseGeneratedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(sqliteTimeLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing generated_at %q: %w", s, err)
	}
	return t, nil
}

// readDetail extracts the "detail" field of an error body, falling back to
// the raw text.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(body))
}
