package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestClient_SendsTokenHeader(t *testing.T) {
	t.Parallel()
	var (
		mu       sync.Mutex
		gotToken string
	)
	token := func() string {
		mu.Lock()
		defer mu.Unlock()
		return gotToken
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotToken = r.Header.Get(TokenHeader)
		mu.Unlock()
		assert.Equal(t, "/api/auth", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"name":"Ada","avatar":"//a"}`))
	})

	c.SetToken("tok-1")
	user, err := c.LoadUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token())
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "Ada", user.Name)

	c.SetToken("")
	_, err = c.LoadUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token())
}

func TestClient_StructuredErrors(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"msg":"Status is required"},{"msg":"Skills is required"}]}`))
	})

	_, err := c.UpsertProfile(context.Background(), ProfileForm{})
	require.Error(t, err)
	apiErr := AsError(err)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad Request", apiErr.StatusText)
	assert.Equal(t, []string{"Status is required", "Skills is required"}, apiErr.Messages)
}

func TestClient_UnstructuredErrorFallsBackToStatusText(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Server Error"))
	})

	err := c.DeleteAccount(context.Background())
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.StatusText)
	assert.Empty(t, apiErr.Messages)
	assert.Equal(t, "500 Internal Server Error", apiErr.Error())
}

func TestClient_TransportErrorHasStatusZero(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Profiles(context.Background())
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.StatusText)
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := NewClient(srv.URL, 50*time.Millisecond).Posts(context.Background())
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.Zero(t, apiErr.Status)
}

func TestClient_RequestShapes(t *testing.T) {
	t.Parallel()
	type seen struct {
		method, path string
		body         map[string]any
	}
	var (
		mu  sync.Mutex
		got seen
	)
	last := func() seen {
		mu.Lock()
		defer mu.Unlock()
		return got
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := seen{method: r.Method, path: r.URL.Path}
		_ = json.NewDecoder(r.Body).Decode(&req.body)
		mu.Lock()
		got = req
		mu.Unlock()
		switch {
		case r.URL.Path == "/api/users" || (r.URL.Path == "/api/auth" && r.Method == http.MethodPost):
			_, _ = w.Write([]byte(`{"token":"t"}`))
		case r.URL.Path == "/api/posts/like/3":
			_, _ = w.Write([]byte(`[{"id":1,"user":2}]`))
		case r.URL.Path == "/api/posts/comment/3/4":
			_, _ = w.Write([]byte(`[]`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	token, err := c.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "t", token)
	assert.Equal(t, seen{http.MethodPost, "/api/users", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	}}, last())

	_, err = c.AddExperience(ctx, ExperienceForm{Title: "Dev", Company: "Acme", From: "2020-01-02"})
	require.NoError(t, err)
	req := last()
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/api/profile/experience", req.path)
	assert.Equal(t, "2020-01-02", req.body["from"])
	assert.NotContains(t, req.body, "to")

	_, err = c.DeleteEducation(ctx, "abc-123")
	require.NoError(t, err)
	req = last()
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/api/profile/education/abc-123", req.path)

	likes, err := c.Like(ctx, 3)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, uint(2), likes[0].UserID)

	comments, err := c.DeleteComment(ctx, 3, 4)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.NotNil(t, comments)
}
