// Package catfact fetches a random cat fact for the profile endpoint.
package catfact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrNoURL is returned when no fact API URL is configured.
var ErrNoURL = errors.New("API URL not found")

const cacheKey = "fact"

// Client fetches facts from a JSON API of the form {"fact": "..."}.
// Successful facts are cached for the configured TTL.
type Client struct {
	url   string
	http  *http.Client
	cache *gocache.Cache
}

// NewClient creates a Client. A zero cacheTTL disables caching.
func NewClient(url string, timeout, cacheTTL time.Duration) *Client {
	c := &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
	if cacheTTL > 0 {
		c.cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return c
}

type factResponse struct {
	Fact    string `json:"fact"`
	Message string `json:"message"`
}

// Fact returns a cat fact, from cache when available.
func (c *Client) Fact(ctx context.Context) (string, error) {
	if c.url == "" {
		return "", ErrNoURL
	}

	if c.cache != nil {
		if v, ok := c.cache.Get(cacheKey); ok {
			return v.(string), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build fact request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch fact: %w", err)
	}
	defer resp.Body.Close()

	var body factResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && body.Message != "" {
			return "", errors.New(body.Message)
		}
		return "", errors.New("error fetching cat fact")
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode fact: %w", decodeErr)
	}

	if c.cache != nil {
		c.cache.SetDefault(cacheKey, body.Fact)
	}
	return body.Fact, nil
}
