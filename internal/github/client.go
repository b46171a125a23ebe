// Package github looks up public repositories of a GitHub user.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "devconnect-api"
	notFoundMsg    = "No Github profile found"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)

// Repo is the summary of one repository shown on a profile.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client calls the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL selects the public API.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Repos returns the five oldest-created repositories of username.
// A non-success upstream status is reported as NotFound; a transport failure
// as UpstreamError.
func (c *Client) Repos(ctx context.Context, username string) (repos []Repo, err error) {
	ctx, span := observability.StartSpan(ctx, "github", "Repos", attribute.String("github.username", username))
	defer func() { observability.EndSpan(span, err) }()

	if !usernamePattern.MatchString(username) {
		return nil, models.NewNotFoundError(notFoundMsg)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GithubRequestLatency.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, models.NewUpstreamError("GitHub request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observability.GithubRequestLatency.WithLabelValues("not_found").Observe(time.Since(start).Seconds())
		return nil, models.NewNotFoundError(notFoundMsg)
	}
	observability.GithubRequestLatency.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	repos = []Repo{}
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, models.NewUpstreamError("GitHub returned an invalid body", err)
	}
	return repos, nil
}
