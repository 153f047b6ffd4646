// Package retail wraps the retail product-search collaborator. Listings come
// back with heterogeneous field names; the client surfaces them raw and the
// search stage owns normalization. Optional: absence triggers the static
// fallback catalog.
package retail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/shopsmart-labs/shopsmart-backend/pkg/errors"
)

const (
	defaultBaseURL              = "https://api.retailsearch.example.com/v1"
	defaultResultCount          = 10
	responseBodyReadLimit int64 = 1024
)

var errAPIKeyRequired = errors.New("retail api key is required")

// Client calls the retail search endpoint for raw product listings.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured retail base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the retail search client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Listing is one raw search result. Sources disagree on field names, so every
// field is optional and aliased during decode.
type Listing struct {
	ID          string
	Name        string
	Description string
	Price       *float64
	OldPrice    *float64
	Brand       string
	Category    string
	Image       string
	Rating      *float64
	Reviews     *int
	InStock     *bool
	Seller      string
}

// UnmarshalJSON maps the known field aliases onto the canonical Listing shape.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string   `json:"id"`
		ProductID    string   `json:"product_id"`
		Name         string   `json:"name"`
		Title        string   `json:"title"`
		ProductName  string   `json:"product_name"`
		Description  string   `json:"description"`
		Snippet      string   `json:"snippet"`
		Price        *float64 `json:"price"`
		SalePrice    *float64 `json:"sale_price"`
		OldPrice     *float64 `json:"old_price"`
		ListPrice    *float64 `json:"list_price"`
		Brand        string   `json:"brand"`
		Manufacturer string   `json:"manufacturer"`
		Category     string   `json:"category"`
		Image        string   `json:"image"`
		Thumbnail    string   `json:"thumbnail"`
		Rating       *float64 `json:"rating"`
		Stars        *float64 `json:"stars"`
		Reviews      *int     `json:"reviews"`
		ReviewCount  *int     `json:"review_count"`
		InStock      *bool    `json:"in_stock"`
		Available    *bool    `json:"available"`
		Seller       string   `json:"seller"`
		Store        string   `json:"store"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.ID = firstNonEmpty(raw.ID, raw.ProductID)
	l.Name = firstNonEmpty(raw.Name, raw.Title, raw.ProductName)
	l.Description = firstNonEmpty(raw.Description, raw.Snippet)
	l.Price = firstNonNilFloat(raw.Price, raw.SalePrice)
	l.OldPrice = firstNonNilFloat(raw.OldPrice, raw.ListPrice)
	l.Brand = firstNonEmpty(raw.Brand, raw.Manufacturer)
	l.Category = raw.Category
	l.Image = firstNonEmpty(raw.Image, raw.Thumbnail)
	l.Rating = firstNonNilFloat(raw.Rating, raw.Stars)
	l.Reviews = firstNonNilInt(raw.Reviews, raw.ReviewCount)
	l.InStock = firstNonNilBool(raw.InStock, raw.Available)
	l.Seller = firstNonEmpty(raw.Seller, raw.Store)
	return nil
}

// Search returns up to count raw listings for the query.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Listing, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "retail client not configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	if count <= 0 {
		count = defaultResultCount
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))

	endpoint := fmt.Sprintf("%s/products/search?%s", strings.TrimRight(c.baseURL, "/"), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build retail search request")
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute retail search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "retail search request failed")
	}

	var apiResp struct {
		Results []Listing `json:"results"`
		Items   []Listing `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode retail search response")
	}

	listings := apiResp.Results
	if len(listings) == 0 {
		listings = apiResp.Items
	}
	if len(listings) > count {
		listings = listings[:count]
	}
	return listings, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonNilFloat(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstNonNilInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstNonNilBool(values ...*bool) *bool {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
