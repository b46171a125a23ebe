package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-handlers"

type testEnv struct {
	app    *fiber.App
	server *Server
}

// newTestEnv builds the full app over a fresh in-memory SQLite database.
// rdb may be nil to run without Redis.
func newTestEnv(t *testing.T, rdb *redis.Client, githubURL string) *testEnv {
	t.Helper()
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	cfg := &config.Config{
		Env:          "test",
		Port:         "0",
		JWTSecret:    testSecret,
		JWTTTLHours:  1,
		GithubAPIURL: githubURL,
	}
	srv, err := NewServerWithDeps(cfg, db, rdb, nil)
	require.NoError(t, err)
	return &testEnv{app: srv.NewApp(), server: srv}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func errorMessages(t *testing.T, body []byte) []string {
	t.Helper()
	var resp struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &resp), string(body))
	msgs := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

type profileBody struct {
	ID     uint     `json:"id"`
	Status string   `json:"status"`
	Skills []string `json:"skills"`
	Bio    string   `json:"bio"`
	User   struct {
		ID     uint   `json:"id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"user"`
	Experience []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"experience"`
	Education []struct {
		ID     string `json:"id"`
		School string `json:"school"`
	} `json:"education"`
}

func decodeProfile(t *testing.T, body []byte) profileBody {
	t.Helper()
	var p profileBody
	require.NoError(t, json.Unmarshal(body, &p), string(body))
	return p
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
