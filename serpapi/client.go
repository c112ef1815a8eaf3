// Package serpapi is a minimal client for the SerpAPI search endpoint,
// shared by the flight and hotel search tools.
package serpapi

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

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://serpapi.com"

// Client issues search requests against a SerpAPI engine. Every call is a
// single stateless GET, no caching and no retries.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	country    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the SerpAPI endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLocale sets the interface language and country parameters.
func WithLocale(language, country string) Option {
	return func(c *Client) {
		c.language = language
		c.country = country
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(c *Client) {
		c.httpClient = clt
	}
}

// New returns a Client for the given API key.
func New(apiKey string, opts ...Option) *Client {
	ret := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: "en",
		country:  "us",
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return ret
}

// Search queries the given engine and returns the raw JSON payload. The
// api_key, engine and locale parameters are filled in by the client.
func (c *Client) Search(ctx context.Context, engine string, params url.Values) (json.RawMessage, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("serpapi: API key is missing")
	}
	values := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	values.Set("api_key", c.apiKey)
	values.Set("engine", engine)
	values.Set("hl", c.language)
	values.Set("gl", c.country)
	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search engine: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	// SerpAPI reports failures in an error field, with or without a non-200
	// status code.
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, fmt.Errorf("serpapi: %s", msg.String())
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi http %d", httpResp.StatusCode)
	}
	return body, nil
}
