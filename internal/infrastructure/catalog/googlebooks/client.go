// Package googlebooks is the catalog gateway backed by the Google Books
// volumes API. Every provider failure degrades to "no data": callers see
// domain.ErrCatalogNotFound or an empty result, never a transport error.
package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/metrics"
)

const (
	DefaultBaseURL  = "https://www.googleapis.com/books/v1"
	defaultTimeout  = 5 * time.Second
	defaultLanguage = "en"
	maxBodyBytes    = 4 << 20
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client implements ports.CatalogGateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "googlebooks").Logger(),
	}
}

var errUpstream = errors.New("catalog provider error")

// FetchByID returns a single volume.
func (c *Client) FetchByID(ctx context.Context, volumeID string) (*domain.CatalogItem, error) {
	started := time.Now()
	if strings.TrimSpace(volumeID) == "" {
		return nil, domain.ErrCatalogNotFound
	}

	body, err := c.get(ctx, "/volumes/"+url.PathEscape(volumeID), nil)
	if err != nil {
		c.degrade("fetch", started, err, zerolog.Dict().Str("volume_id", volumeID))
		return nil, fmt.Errorf("volume %s: %w", volumeID, domain.ErrCatalogNotFound)
	}

	volume := gjson.ParseBytes(body)
	if !volume.Get("id").Exists() {
		metrics.ObserveCatalog("fetch", "not_found", started)
		return nil, fmt.Errorf("volume %s: %w", volumeID, domain.ErrCatalogNotFound)
	}

	metrics.ObserveCatalog("fetch", "ok", started)
	return parseVolume(volume), nil
}

// LookupByISBN returns the first volume the provider matches to isbn.
func (c *Client) LookupByISBN(ctx context.Context, isbn string) (*domain.CatalogItem, error) {
	started := time.Now()

	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	params.Set("maxResults", "1")

	body, err := c.get(ctx, "/volumes", params)
	if err != nil {
		c.degrade("lookup", started, err, zerolog.Dict().Str("isbn", isbn))
		return nil, fmt.Errorf("isbn %s: %w", isbn, domain.ErrCatalogNotFound)
	}

	first := gjson.GetBytes(body, "items.0")
	if !first.Exists() || !first.Get("id").Exists() {
		metrics.ObserveCatalog("lookup", "not_found", started)
		return nil, fmt.Errorf("isbn %s: %w", isbn, domain.ErrCatalogNotFound)
	}

	metrics.ObserveCatalog("lookup", "ok", started)
	return parseVolume(first), nil
}

// Search runs a volumes query. Provider failures yield an empty slice and a
// nil error.
func (c *Client) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.CatalogItem, error) {
	started := time.Now()

	body, err := c.get(ctx, "/volumes", searchParams(query, filters))
	if err != nil {
		c.degrade("search", started, err, zerolog.Dict().Str("query", query))
		return []domain.CatalogItem{}, nil
	}

	items := gjson.GetBytes(body, "items").Array()
	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if !it.Get("id").Exists() {
			continue
		}
		out = append(out, *parseVolume(it))
	}

	metrics.ObserveCatalog("search", "ok", started)
	return out, nil
}

func searchParams(query string, filters domain.SearchFilters) url.Values {
	params := url.Values{}
	params.Set("q", query)

	lang := filters.Language
	if lang == "" {
		lang = defaultLanguage
	}
	params.Set("langRestrict", lang)

	switch filters.EbookType {
	case domain.EbookFree:
		params.Set("filter", "free-ebooks")
	case domain.EbookPaid:
		params.Set("filter", "paid-ebooks")
	}
	if filters.OrderBy != "" {
		params.Set("orderBy", string(filters.OrderBy))
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", errUpstream, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed json", errUpstream)
	}
	return body, nil
}

func (c *Client) degrade(operation string, started time.Time, err error, fields *zerolog.Event) {
	metrics.ObserveCatalog(operation, "error", started)
	c.logger.Warn().Err(err).Str("operation", operation).Dict("request", fields).Msg("catalog provider unavailable")
}

// parseVolume maps a volumes resource onto a CatalogItem. Every field is
// optional.
func parseVolume(v gjson.Result) *domain.CatalogItem {
	info := v.Get("volumeInfo")

	item := &domain.CatalogItem{
		ID:          v.Get("id").String(),
		Title:       info.Get("title").String(),
		Author:      info.Get("authors.0").String(),
		PrintType:   info.Get("printType").String(),
		Rating:      info.Get("averageRating").Float(),
		Thumbnail:   info.Get("imageLinks.thumbnail").String(),
		Description: info.Get("description").String(),
		ISBN:        isbnOf(info),
	}
	for _, cat := range info.Get("categories").Array() {
		item.Categories = append(item.Categories, cat.String())
	}

	price := v.Get("saleInfo.listPrice")
	if amount := price.Get("amount"); amount.Exists() {
		if d, err := decimal.NewFromString(amount.Raw); err == nil {
			item.Price = d
			item.Currency = price.Get("currencyCode").String()
		}
	}
	return item
}

func isbnOf(info gjson.Result) string {
	if isbn := info.Get(`industryIdentifiers.#(type=="ISBN_13").identifier`); isbn.Exists() {
		return isbn.String()
	}
	return info.Get("industryIdentifiers.0.identifier").String()
}
