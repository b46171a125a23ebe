// Package api is the HTTP client for the DevConnect REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"devconnect/internal/github"
	"devconnect/internal/models"
)

// DefaultTimeout bounds every request so a hung server never leaves a
// loading flag set forever.
const DefaultTimeout = 15 * time.Second

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "x-auth-token"

const maxResponseBytes = 4 << 20

// Error is a failed API call. Status is 0 for transport failures.
type Error struct {
	Status     int
	StatusText string
	// Messages holds the per-field messages of a structured error body.
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	if e.Status == 0 {
		return e.StatusText
	}
	return fmt.Sprintf("%d %s", e.Status, e.StatusText)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError converts any error into an *Error. Errors that are not API errors
// are treated as transport failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{StatusText: err.Error(), Err: err}
}

// Client talks to one API base URL. The session token is shared by all
// requests and may be swapped at any time.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient returns a client for baseURL. A non-positive timeout selects
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the default token header. An empty token removes it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current default token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type errorBody struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{StatusText: err.Error(), Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{StatusText: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{StatusText: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Status: resp.StatusCode, StatusText: "invalid response body", Err: err}
	}
	return nil
}

// responseError derives the field messages of a non-2xx response. Bodies
// without the errors array fall back to the status text alone.
func responseError(status int, raw []byte) *Error {
	apiErr := &Error{Status: status, StatusText: http.StatusText(status)}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		for _, e := range body.Errors {
			if e.Msg != "" {
				apiErr.Messages = append(apiErr.Messages, e.Msg)
			}
		}
	}
	return apiErr
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type tokenResponse struct {
	Token string `json:"token"`
}

// ProfileForm is the create or update profile body. Skills is a comma
// separated list.
type ProfileForm struct {
	Company        string `json:"company,omitempty"`
	Website        string `json:"website,omitempty"`
	Location       string `json:"location,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername,omitempty"`
	Skills         string `json:"skills"`
	YouTube        string `json:"youtube,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	Facebook       string `json:"facebook,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	Instagram      string `json:"instagram,omitempty"`
}

// ExperienceForm is the add experience body. Dates are YYYY-MM-DD.
type ExperienceForm struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// EducationForm is the add education body. Dates are YYYY-MM-DD.
type EducationForm struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// LoadUser returns the user owning the current token.
func (c *Client) LoadUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// CurrentProfile returns the caller's own profile.
func (c *Client) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile/me", nil)
}

// Profiles lists every profile.
func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ProfileByUserID returns the profile owned by userID.
func (c *Client) ProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile/user/"+idPath(userID), nil)
}

// UpsertProfile creates or updates the caller's profile.
func (c *Client) UpsertProfile(ctx context.Context, form ProfileForm) (*models.Profile, error) {
	return c.profile(ctx, http.MethodPost, "/api/profile", form)
}

// AddExperience prepends an experience entry.
func (c *Client) AddExperience(ctx context.Context, form ExperienceForm) (*models.Profile, error) {
	return c.profile(ctx, http.MethodPut, "/api/profile/experience", form)
}

// DeleteExperience removes an experience entry.
func (c *Client) DeleteExperience(ctx context.Context, id string) (*models.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/api/profile/experience/"+url.PathEscape(id), nil)
}

// AddEducation prepends an education entry.
func (c *Client) AddEducation(ctx context.Context, form EducationForm) (*models.Profile, error) {
	return c.profile(ctx, http.MethodPut, "/api/profile/education", form)
}

// DeleteEducation removes an education entry.
func (c *Client) DeleteEducation(ctx context.Context, id string) (*models.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/api/profile/education/"+url.PathEscape(id), nil)
}

// DeleteAccount removes the caller's profile, posts and user.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/profile", nil, nil)
}

// GithubRepos lists the latest public repositories of a GitHub user.
func (c *Client) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	repos := []github.Repo{}
	if err := c.do(ctx, http.MethodGet, "/api/profile/github/"+url.PathEscape(username), nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) profile(ctx context.Context, method, path string, body any) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, method, path, body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Posts lists the feed, newest first.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post returns one post.
func (c *Client) Post(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+idPath(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", map[string]string{"text": text}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes one of the caller's posts.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+idPath(id), nil, nil)
}

// Like likes a post and returns its likes.
func (c *Client) Like(ctx context.Context, postID uint) ([]models.Like, error) {
	return c.likes(ctx, "/api/posts/like/"+idPath(postID))
}

// Unlike removes the caller's like and returns the remaining likes.
func (c *Client) Unlike(ctx context.Context, postID uint) ([]models.Like, error) {
	return c.likes(ctx, "/api/posts/unlike/"+idPath(postID))
}

func (c *Client) likes(ctx context.Context, path string) ([]models.Like, error) {
	likes := []models.Like{}
	if err := c.do(ctx, http.MethodPut, path, nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// AddComment comments on a post and returns its comments.
func (c *Client) AddComment(ctx context.Context, postID uint, text string) ([]models.Comment, error) {
	comments := []models.Comment{}
	path := "/api/posts/comment/" + idPath(postID)
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"text": text}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes one of the caller's comments and returns the rest.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	path := "/api/posts/comment/" + idPath(postID) + "/" + idPath(commentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
