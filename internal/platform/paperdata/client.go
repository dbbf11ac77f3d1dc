// Package paperdata reads the public term directory and per-term class
// feeds the catalog is built from.
package paperdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"coursecatalog/internal/catalog"
)

const (
	DefaultTermURL    = "https://api.dilanxd.com/paper/data"
	DefaultCatalogURL = "https://cdn.dil.sh/paper-data"
)

type Config struct {
	TermURL    string
	CatalogURL string
	UserAgent  string
	RPS        float64
	MaxRetries int
	Timeout    time.Duration
	// BackoffBase is the first retry delay; later retries double it.
	BackoffBase time.Duration
}

type Client struct {
	httpClient  *http.Client
	userAgent   string
	termURL     string
	catalogURL  string
	limiter     *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.TermURL == "" {
		cfg.TermURL = DefaultTermURL
	}
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = DefaultCatalogURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:   cfg.UserAgent,
		termURL:     cfg.TermURL,
		catalogURL:  strings.TrimRight(cfg.CatalogURL, "/"),
		limiter:     rate.NewLimiter(limit, 1),
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
	}
}

// TermDirectory matches the term API document.
type TermDirectory struct {
	Latest string              `json:"latest"`
	Terms  map[string]TermInfo `json:"terms"`
}

type TermInfo struct {
	Name string `json:"name"`
}

// GetTermDirectory downloads the term directory.
func (c *Client) GetTermDirectory(ctx context.Context) (*TermDirectory, error) {
	body, err := c.get(ctx, c.termURL)
	if err != nil {
		return nil, err
	}

	var dir TermDirectory
	if err := json.Unmarshal(body, &dir); err != nil {
		return nil, &catalog.MalformedDataError{Source: "term directory", Err: err}
	}
	return &dir, nil
}

// LatestTerm resolves the directory's latest term and its display name.
func (d *TermDirectory) LatestTerm() (catalog.Term, error) {
	if d.Latest == "" {
		return catalog.Term{}, &catalog.MalformedDataError{Source: "term directory", Field: "latest"}
	}
	info, ok := d.Terms[d.Latest]
	if !ok || info.Name == "" {
		return catalog.Term{}, &catalog.MalformedDataError{
			Source: "term directory",
			Field:  fmt.Sprintf("terms[%s].name", d.Latest),
		}
	}
	return catalog.Term{ID: d.Latest, Name: info.Name}, nil
}

// GetClassRecords downloads the full class feed for termID.
func (c *Client) GetClassRecords(ctx context.Context, termID string) ([]catalog.ClassRecord, error) {
	u := fmt.Sprintf("%s/%s.json", c.catalogURL, url.PathEscape(termID))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var records []catalog.ClassRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &catalog.MalformedDataError{Source: "class feed " + termID, Err: err}
	}
	if records == nil {
		return nil, &catalog.MalformedDataError{Source: "class feed " + termID, Err: errors.New("expected a JSON array, got null")}
	}
	return records, nil
}

// get retries transport errors, 429 and 5xx with exponential backoff.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := c.backoffBase << uint(i-1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retry, err := c.do(ctx, u)
		if err == nil {
			return body, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, u string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, &catalog.FetchError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, &catalog.FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, &catalog.FetchError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &catalog.FetchError{URL: u, Err: err}
	}
	return body, false, nil
}
