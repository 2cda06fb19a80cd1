package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const briefID = "3f2b8c1e-6a7d-4e2f-9b1a-0c5d7e8f9a10"

func TestBriefClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/brief/bebodywise", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "` + briefID + `",
			"brand": "bebodywise",
			"markdown": "## Summary\n- a",
			"generated_at": "2026-10-12 09:30:00",
			"stats": {"totals": {"total_ads": 42}}
		}`))
	}))
	defer srv.Close()

	c := NewBriefClient(srv.URL+"/", time.Second)
	brief, err := c.Fetch(context.Background(), "bebodywise")
	require.NoError(t, err)

	assert.Equal(t, briefID, brief.ID)
	assert.Equal(t, "bebodywise", brief.Brand)
	assert.Equal(t, "## Summary\n- a", brief.Markdown)
	assert.Equal(t, time.Date(2026, 10, 12, 9, 30, 0, 0, time.UTC), brief.GeneratedAt)
	assert.Contains(t, brief.Stats, "totals")
}

func TestBriefClient_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "No brief found for 'little_joys'."}`))
	}))
	defer srv.Close()

	_, err := NewBriefClient(srv.URL, time.Second).Fetch(context.Background(), "little_joys")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrBriefNotFound))
}

func TestBriefClient_UnknownBrandSkipsIO(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewBriefClient(srv.URL, time.Second)

	_, err := c.Fetch(context.Background(), "acme")
	assert.True(t, errors.Is(err, core.ErrUnknownBrand))

	_, err = c.Generate(context.Background(), "acme")
	assert.True(t, errors.Is(err, core.ErrUnknownBrand))

	assert.Zero(t, calls.Load())
}

func TestBriefClient_FetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewBriefClient(srv.URL, time.Second).Fetch(context.Background(), "man_matters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
	assert.Contains(t, err.Error(), "boom")
}

func TestBriefClient_FetchInvalidID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "not-a-uuid", "brand": "man_matters", "markdown": "x"}`))
	}))
	defer srv.Close()

	_, err := NewBriefClient(srv.URL, time.Second).Fetch(context.Background(), "man_matters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid brief id")
}

func TestBriefClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/brief/generate/man_matters", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "` + briefID + `",
			"brand": "man_matters",
			"markdown": "## New",
			"generated_at": "2026-10-16T08:00:00Z"
		}`))
	}))
	defer srv.Close()

	brief, err := NewBriefClient(srv.URL, time.Second).Generate(context.Background(), "man_matters")
	require.NoError(t, err)
	assert.Equal(t, "## New", brief.Markdown)
	assert.Equal(t, time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC), brief.GeneratedAt.UTC())
}

func TestBriefClient_GenerateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "ANTHROPIC_API_KEY is not configured"}`))
	}))
	defer srv.Close()

	_, err := NewBriefClient(srv.URL, time.Second).Generate(context.Background(), "bebodywise")
	require.Error(t, err)

	var genErr *core.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, http.StatusInternalServerError, genErr.Status)
	assert.Equal(t, "ANTHROPIC_API_KEY is not configured", genErr.Detail)
}

func TestParseGeneratedAt(t *testing.T) {
	tm, err := parseGeneratedAt("")
	require.NoError(t, err)
	assert.True(t, tm.IsZero())

	_, err = parseGeneratedAt("yesterday")
	assert.Error(t, err)
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "briefpipe")
		_, _ = w.Write([]byte("<html><body><h2>Brief</h2></body></html>"))
	}))
	defer srv.Close()

	f := New(0)
	res, err := f.Fetch(context.Background(), srv.URL+"/brief")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.HTML, "<h2>Brief</h2>")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}
