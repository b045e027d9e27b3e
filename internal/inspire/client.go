// Package inspire fetches canonical reference lists from the INSPIRE-HEP
// literature API. The resolver itself never talks to the network; this
// client is the bibliographic-data collaborator that supplies CanonicalEntry
// lists, consulted read-only by the core.
package inspire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fkguo/inspirecite/internal/reference"
)

const (
	// BaseURL is the INSPIRE-HEP REST API base URL.
	BaseURL = "https://inspirehep.net/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is 2 requests per second, well under the documented 15/5s
	// burst limit of the INSPIRE API.
	RateLimit = 2.0

	// referenceFields limits the literature payload to what the resolver
	// consumes.
	referenceFields = "references,arxiv_eprints,dois,titles"
)

// Client is a rate-limited HTTP client for the INSPIRE-HEP API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates a new INSPIRE-HEP API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		userAgent:  "inspirecite/1.0",
		log:        zerolog.Nop(),
	}

	if base := os.Getenv("INSPIRE_API_URL"); base != "" {
		c.baseURL = base
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchReferences fetches the reference list of a literature record and maps
// it to canonical entries. recid is the INSPIRE record id or an arXiv id
// ("arxiv:2106.15928").
func (c *Client) FetchReferences(ctx context.Context, recid string) ([]reference.CanonicalEntry, error) {
	rec, err := c.fetchLiterature(ctx, recid)
	if err != nil {
		return nil, err
	}
	entries := mapReferences(rec)
	c.log.Debug().
		Str("recid", recid).
		Int("entries", len(entries)).
		Msg("fetched canonical references")
	return entries, nil
}

func (c *Client) fetchLiterature(ctx context.Context, recid string) (*literatureRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/literature/%s?fields=%s", c.baseURL, url.PathEscape(recid), referenceFields)
	if isArxivID(recid) {
		endpoint = fmt.Sprintf("%s/arxiv/%s?fields=%s", c.baseURL, url.PathEscape(trimArxivPrefix(recid)), referenceFields)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug().Str("url", endpoint).Msg("inspire request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var rec literatureRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &rec, nil
}

func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return nil
}
