// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads wiki pages over the MediaWiki API and writes
// wikitext files with YAML sidecar metadata for the parse stage.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/loregraph/loregraph/internal/httputil"
	"github.com/loregraph/loregraph/pkg/types"
)

const rawDir = "raw"

// Client calls the MediaWiki action=parse API.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient builds a client from the fetch configuration.
func NewClient(cfg types.FetchConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:  cfg.APIEndpoint,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// MediaWiki action=parse response shapes. The API names its content
// fields "*".
type parseResponse struct {
	Parse *parsePayload `json:"parse"`
	Error *apiError     `json:"error"`
}

type parsePayload struct {
	Title      string        `json:"title"`
	PageID     int           `json:"pageid"`
	Wikitext   starred       `json:"wikitext"`
	Categories []starred     `json:"categories"`
	Links      []linkPayload `json:"links"`
	Images     []string      `json:"images"`
}

type starred struct {
	Content string `json:"*"`
}

type linkPayload struct {
	Content   string `json:"*"`
	Namespace int    `json:"ns"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// ParsePage fetches one page's wikitext, categories, and links. The call
// waits on the client's rate limiter and retries on HTTP 429 and 5xx.
func (c *Client) ParsePage(ctx context.Context, title string) (*types.Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"action": {"parse"},
		"page":   {title},
		"prop":   {"wikitext|categories|links|images"},
		"format": {"json"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.endpoint)
	}

	var pr parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing API response: %w", err)
	}
	if pr.Error != nil {
		return nil, fmt.Errorf("API error %s: %s", pr.Error.Code, pr.Error.Info)
	}
	if pr.Parse == nil {
		return nil, fmt.Errorf("no parse payload for %q", title)
	}

	meta := types.PageMeta{
		Title:     pr.Parse.Title,
		PageID:    pr.Parse.PageID,
		Length:    len(pr.Parse.Wikitext.Content),
		FetchedAt: time.Now().UTC(),
		SourceURL: pageURL(c.endpoint, pr.Parse.Title),
	}
	for _, cat := range pr.Parse.Categories {
		meta.Categories = append(meta.Categories, cat.Content)
	}
	for _, link := range pr.Parse.Links {
		if link.Namespace == 0 {
			meta.Links = append(meta.Links, link.Content)
		}
	}
	meta.Images = append(meta.Images, pr.Parse.Images...)

	return &types.Page{Meta: meta, Text: pr.Parse.Wikitext.Content}, nil
}

// pageURL derives the human-readable wiki URL from the API endpoint.
func pageURL(endpoint, title string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/wiki/" + strings.ReplaceAll(title, " ", "_")
}

var unsafeChars = regexp.MustCompile(`[^\w\- ]`)

// SafeTitle turns a page title into a filesystem-safe file stem.
func SafeTitle(title string) string {
	clean := unsafeChars.ReplaceAllString(title, "")
	return strings.ReplaceAll(strings.TrimSpace(clean), " ", "_")
}

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Fetched int
	Skipped int
	Failed  int
}

// Total returns the number of titles processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Skipped + r.Failed
}

// HasFailures reports whether any pages failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchBatch downloads every title into cfg.DataDir/raw as a .wikitext
// file plus a .meta.yaml sidecar. Pages already on disk are skipped, as
// are redirects and stubs shorter than cfg.MinPageLength. Downloads run
// on cfg.Workers goroutines bounded by the shared rate limiter; failures
// are reported per title and do not stop the batch.
func (c *Client) FetchBatch(ctx context.Context, titles []string, cfg types.FetchConfig, w io.Writer) (BatchResult, error) {
	dir := filepath.Join(cfg.DataDir, rawDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	minLen := cfg.MinPageLength
	if minLen <= 0 {
		minLen = 100
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	var (
		mu     sync.Mutex
		result BatchResult
	)
	report := func(f func()) {
		mu.Lock()
		defer mu.Unlock()
		f()
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, title := range titles {
		eg.Go(func() error {
			stem := SafeTitle(title)
			textPath := filepath.Join(dir, stem+".wikitext")
			if _, err := os.Stat(textPath); err == nil {
				report(func() {
					fmt.Fprintf(w, "skipped: %s (already exists)\n", stem)
					result.Skipped++
				})
				return nil
			}

			page, err := c.ParsePage(ctx, title)
			if err != nil {
				report(func() {
					fmt.Fprintf(w, "failed:  %s (%v)\n", title, err)
					result.Failed++
				})
				return nil
			}
			if page.Meta.Length < minLen {
				report(func() {
					fmt.Fprintf(w, "skipped: %s (redirect or stub, %d bytes)\n", title, page.Meta.Length)
					result.Skipped++
				})
				return nil
			}

			if err := writePage(dir, stem, page); err != nil {
				report(func() {
					fmt.Fprintf(w, "failed:  %s (%v)\n", title, err)
					result.Failed++
				})
				return nil
			}
			report(func() {
				fmt.Fprintf(w, "fetched: %s (%d bytes)\n", stem, page.Meta.Length)
				result.Fetched++
			})
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return result, err
	}

	fmt.Fprintf(w, "\nBatch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		result.Fetched, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// writePage writes the wikitext and its sidecar; the sidecar goes last
// so its presence marks a complete page.
func writePage(dir, stem string, page *types.Page) error {
	textPath := filepath.Join(dir, stem+".wikitext")
	if err := os.WriteFile(textPath, []byte(page.Text), 0o644); err != nil {
		return fmt.Errorf("writing wikitext: %w", err)
	}
	meta, err := yaml.Marshal(page.Meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stem+".meta.yaml"), meta, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// ReadPages loads every fetched page (wikitext plus sidecar) from
// dataDir/raw, in file-name order.
func ReadPages(dataDir string) ([]types.Page, error) {
	dir := filepath.Join(dataDir, rawDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading raw directory %s: %w", dir, err)
	}

	var pages []types.Page
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wikitext") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".wikitext")
		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		var meta types.PageMeta
		metaData, err := os.ReadFile(filepath.Join(dir, stem+".meta.yaml"))
		if err == nil {
			if err := yaml.Unmarshal(metaData, &meta); err != nil {
				return nil, fmt.Errorf("parsing sidecar for %s: %w", stem, err)
			}
		}
		if meta.Title == "" {
			meta.Title = strings.ReplaceAll(stem, "_", " ")
		}
		pages = append(pages, types.Page{Meta: meta, Text: string(text)})
	}
	return pages, nil
}
