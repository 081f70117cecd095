package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Varun5711/devconnect/internal/cache"
)

const defaultBaseURL = "https://api.github.com"

// ErrNotFound covers every non-200 answer from GitHub.
var ErrNotFound = errors.New("github profile not found")

type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	cache        *cache.LRUCache[[]Repo]
	cacheTTL     time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		cache:        cache.NewLRUCache[[]Repo](256),
		cacheTTL:     cfg.CacheTTL,
	}
}

// LatestRepos returns the five most recently created public repos of
// username. No retries are made.
func (c *Client) LatestRepos(ctx context.Context, username string) ([]Repo, error) {
	if c.cacheTTL > 0 {
		if repos, ok := c.cache.Get(username); ok {
			return repos, nil
		}
	}

	params := url.Values{}
	params.Add("per_page", "5")
	params.Add("sort", "created")
	params.Add("direction", "desc")
	if c.clientID != "" {
		params.Add("client_id", c.clientID)
		params.Add("client_secret", c.clientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("User-Agent", "devconnect")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)
	}

	repos := make([]Repo, 0, 5)
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	if c.cacheTTL > 0 {
		c.cache.SetWithTTL(username, repos, c.cacheTTL)
	}

	return repos, nil
}
