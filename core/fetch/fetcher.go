// Package fetch implements the brief sources.
// HTTPFetcher retrieves published brief pages; BriefClient talks to the brief API.
// Both go through send, so they share request headers.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/briefpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "briefpipe/1.0 (https://github.com/gaurav-prasanna/briefpipe)"

	acceptHTML = "text/html,application/xhtml+xml"
	acceptJSON = "application/json"

	// maxPageBytes caps a published brief page.
	maxPageBytes = 4 << 20
)

// send issues a body-less request with briefpipe's headers.
func send(ctx context.Context, client *http.Client, method, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", accept)

	return client.Do(req)
}

func newClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// HTTPFetcher fetches published brief pages.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher. A non-positive timeout uses the default.
func New(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: newClient(timeout)}
}

// Fetch downloads the brief page at pageURL.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*core.FetchResult, error) {
	resp, err := send(ctx, f.client, http.MethodGet, pageURL, acceptHTML)
	if err != nil {
		return nil, fmt.Errorf("fetching brief page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching brief page %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading brief page: %w", err)
	}

	return &core.FetchResult{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
