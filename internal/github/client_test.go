package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepos_Success(t *testing.T) {
	var gotPath, gotQuery, gotAgent, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"dotfiles","html_url":"https://github.com/octo/dotfiles","stargazers_count":3,"forks_count":1}]`))
	}))
	defer srv.Close()

	repos, err := NewClient(srv.URL, "secret").Repos(context.Background(), "octo")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "dotfiles", repos[0].Name)
	assert.Equal(t, 3, repos[0].Stars)
	assert.Equal(t, "/users/octo/repos", gotPath)
	assert.Equal(t, "per_page=5&sort=created:asc", gotQuery)
	assert.Equal(t, "devconnect-api", gotAgent)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestRepos_UpstreamNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Repos(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Equal(t, "No Github profile found", err.Error())
}

func TestRepos_InvalidUsername(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", "").Repos(context.Background(), "../etc")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestRepos_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "").Repos(context.Background(), "octo")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeUpstream))
}

func TestRepos_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repos, err := NewClient(srv.URL, "").Repos(context.Background(), "octo")
	require.NoError(t, err)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}
