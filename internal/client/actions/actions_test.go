package actions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"devconnect/internal/client/api"
	"devconnect/internal/client/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs every event before applying it to a real store.
type recorder struct {
	store  *state.Store
	mu     sync.Mutex
	events []state.Event
}

func newRecorder() *recorder {
	return &recorder{store: state.NewStore()}
}

func (r *recorder) Dispatch(e state.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	r.store.Dispatch(e)
}

func (r *recorder) types() []state.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]state.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last() state.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

// navRecorder records each navigation with the state visible at that moment.
type navRecorder struct {
	store *state.Store
	paths []string
	seen  []state.State
}

func (n *navRecorder) Navigate(path string) {
	n.paths = append(n.paths, path)
	n.seen = append(n.seen, n.store.State())
}

type memTokens struct {
	token   string
	cleared bool
}

func (m *memTokens) Save(token string) error {
	m.token = token
	return nil
}

func (m *memTokens) Clear() error {
	m.token = ""
	m.cleared = true
	return nil
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newClient(t *testing.T, mux *http.ServeMux) *api.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, time.Second)
}

const profileJSON = `{"id":1,"user":{"id":7,"name":"Ada"},"status":"Developer","skills":["Go"],"social":{},"experience":[],"education":[]}`

func TestCreateProfile_NavigatesOnlyOnCreate(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/profile", reply(http.StatusOK, profileJSON))
	client := newClient(t, mux)

	t.Run("create", func(t *testing.T) {
		rec := newRecorder()
		nav := &navRecorder{store: rec.store}
		a := New(client, WithNavigator(nav))

		require.NoError(t, a.CreateProfile(context.Background(), rec, api.ProfileForm{Status: "Developer", Skills: "Go"}, false))

		assert.Equal(t, []state.EventType{state.GetProfile, state.SetAlert}, rec.types())
		assert.Equal(t, []string{DashboardPath}, nav.paths)
		require.Len(t, nav.seen, 1)
		assert.False(t, nav.seen[0].Profile.Loading)
		assert.NotNil(t, nav.seen[0].Profile.Profile)

		alerts := rec.store.State().Alerts
		require.Len(t, alerts, 1)
		assert.Equal(t, "Profile Created", alerts[0].Msg)
		assert.Equal(t, state.AlertSuccess, alerts[0].Type)
	})

	t.Run("edit", func(t *testing.T) {
		rec := newRecorder()
		nav := &navRecorder{store: rec.store}
		a := New(client, WithNavigator(nav))

		require.NoError(t, a.CreateProfile(context.Background(), rec, api.ProfileForm{Status: "Developer", Skills: "Go"}, true))

		assert.Empty(t, nav.paths)
		alerts := rec.store.State().Alerts
		require.Len(t, alerts, 1)
		assert.Equal(t, "Profile Updated", alerts[0].Msg)
	})
}

func TestCreateProfile_FieldErrors(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/profile", reply(http.StatusBadRequest,
		`{"errors":[{"msg":"Status is required"},{"msg":"Skills is required"}]}`))
	rec := newRecorder()
	nav := &navRecorder{store: rec.store}
	a := New(newClient(t, mux), WithNavigator(nav))

	err := a.CreateProfile(context.Background(), rec, api.ProfileForm{}, false)
	require.Error(t, err)

	assert.Equal(t, []state.EventType{state.SetAlert, state.SetAlert, state.ProfileError}, rec.types())
	assert.Equal(t, state.ErrorPayload{Msg: "Bad Request", Status: 400}, rec.last().Payload)
	assert.Empty(t, nav.paths)

	s := rec.store.State()
	assert.False(t, s.Profile.Loading)
	require.Len(t, s.Alerts, 2)
	assert.Equal(t, "Status is required", s.Alerts[0].Msg)
	assert.Equal(t, state.AlertDanger, s.Alerts[1].Type)
}

func TestGetCurrentProfile_Failures(t *testing.T) {
	t.Parallel()

	t.Run("unstructured body uses status text", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/profile/me", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		rec := newRecorder()
		err := New(newClient(t, mux)).GetCurrentProfile(context.Background(), rec)
		require.Error(t, err)
		assert.Equal(t, []state.EventType{state.ProfileError}, rec.types())
		assert.Equal(t, state.ErrorPayload{Msg: "Unauthorized", Status: 401}, rec.last().Payload)
	})

	t.Run("transport failure has status zero", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		rec := newRecorder()
		err := New(api.NewClient(srv.URL, time.Second)).GetCurrentProfile(context.Background(), rec)
		require.Error(t, err)
		payload, ok := rec.last().Payload.(state.ErrorPayload)
		require.True(t, ok)
		assert.Zero(t, payload.Status)
		assert.NotEmpty(t, payload.Msg)
		assert.False(t, rec.store.State().Profile.Loading)
	})
}

func TestAddAndDeleteEntries(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/profile/experience", reply(http.StatusOK, profileJSON))
	mux.HandleFunc("PUT /api/profile/education", reply(http.StatusOK, profileJSON))
	mux.HandleFunc("DELETE /api/profile/experience/{id}", reply(http.StatusOK, profileJSON))
	mux.HandleFunc("DELETE /api/profile/education/{id}", reply(http.StatusInternalServerError, "Server Error"))
	client := newClient(t, mux)
	ctx := context.Background()

	rec := newRecorder()
	nav := &navRecorder{store: rec.store}
	a := New(client, WithNavigator(nav))

	require.NoError(t, a.AddExperience(ctx, rec, api.ExperienceForm{Title: "Dev", Company: "Acme", From: "2020-01-01"}))
	require.NoError(t, a.AddEducation(ctx, rec, api.EducationForm{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2010-01-01"}))
	assert.Equal(t, []string{DashboardPath, DashboardPath}, nav.paths)

	require.NoError(t, a.DeleteExperience(ctx, rec, "abc"))
	assert.Len(t, nav.paths, 2)

	err := a.DeleteEducation(ctx, rec, "abc")
	require.Error(t, err)

	assert.Equal(t, []state.EventType{
		state.UpdateProfile, state.SetAlert,
		state.UpdateProfile, state.SetAlert,
		state.UpdateProfile, state.SetAlert,
		state.ProfileError,
	}, rec.types())

	var msgs []string
	for _, alert := range rec.store.State().Alerts {
		msgs = append(msgs, alert.Msg)
	}
	assert.Equal(t, []string{"Experience Added", "Education Added", "Experience Removed"}, msgs)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("declined sends nothing", func(t *testing.T) {
		var hits atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) { hits.Add(1) })
		rec := newRecorder()
		var prompt string
		a := New(newClient(t, mux), WithConfirmer(ConfirmerFunc(func(p string) bool {
			prompt = p
			return false
		})))

		err := a.DeleteAccount(context.Background(), rec)
		assert.True(t, errors.Is(err, ErrDeclined))
		assert.Equal(t, DeleteAccountPrompt, prompt)
		assert.Zero(t, hits.Load())
		assert.Empty(t, rec.types())
	})

	t.Run("confirmed", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /api/profile", reply(http.StatusOK, `{"msg":"User removed"}`))
		rec := newRecorder()
		tokens := &memTokens{token: "old"}
		client := newClient(t, mux)
		client.SetToken("old")
		a := New(client,
			WithConfirmer(ConfirmerFunc(func(string) bool { return true })),
			WithTokenStore(tokens),
			WithAlertTimeout(time.Millisecond))

		require.NoError(t, a.DeleteAccount(context.Background(), rec))
		assert.Equal(t, []state.EventType{state.ClearProfile, state.AccountDeleted, state.SetAlert}, rec.types())
		assert.True(t, tokens.cleared)
		assert.Empty(t, client.Token())

		// The deletion notice is persistent even with a short alert timeout.
		time.Sleep(20 * time.Millisecond)
		alerts := rec.store.State().Alerts
		require.Len(t, alerts, 1)
		assert.Equal(t, "Your account has been permanently deleted", alerts[0].Msg)
		assert.Zero(t, alerts[0].Timeout)
	})
}

func TestAlertsExpire(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/profile/experience", reply(http.StatusOK, profileJSON))
	rec := newRecorder()
	a := New(newClient(t, mux), WithAlertTimeout(20*time.Millisecond))

	require.NoError(t, a.AddExperience(context.Background(), rec, api.ExperienceForm{}))
	assert.Len(t, rec.store.State().Alerts, 1)
	assert.Eventually(t, func() bool {
		return len(rec.store.State().Alerts) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, state.RemoveAlert, rec.last().Type)
}

func TestLoginAndLogout(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", reply(http.StatusOK, `{"token":"tok-9"}`))
	mux.HandleFunc("GET /api/auth", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(api.TokenHeader) != "tok-9" {
			reply(http.StatusUnauthorized, `{"errors":[{"msg":"No token, authorization denied"}]}`)(w, r)
			return
		}
		reply(http.StatusOK, `{"id":7,"name":"Ada"}`)(w, r)
	})
	client := newClient(t, mux)
	tokens := &memTokens{}
	rec := newRecorder()
	a := New(client, WithTokenStore(tokens))

	require.NoError(t, a.Login(context.Background(), rec, "ada@example.com", "secret1"))
	assert.Equal(t, []state.EventType{state.LoginSuccess, state.UserLoaded}, rec.types())
	assert.Equal(t, "tok-9", tokens.token)
	s := rec.store.State()
	assert.True(t, s.Auth.IsAuthenticated)
	require.NotNil(t, s.Auth.User)
	assert.Equal(t, "Ada", s.Auth.User.Name)

	require.NoError(t, a.Logout(rec))
	assert.True(t, tokens.cleared)
	assert.Empty(t, client.Token())
	assert.False(t, rec.store.State().Auth.IsAuthenticated)
}

func TestLogin_Failure(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", reply(http.StatusBadRequest, `{"errors":[{"msg":"Invalid Credentials"}]}`))
	rec := newRecorder()
	tokens := &memTokens{token: "stale"}

	err := New(newClient(t, mux), WithTokenStore(tokens)).Login(context.Background(), rec, "a@b.c", "x")
	require.Error(t, err)
	assert.Equal(t, []state.EventType{state.SetAlert, state.LoginFail}, rec.types())
	assert.True(t, tokens.cleared)
	assert.Equal(t, "Invalid Credentials", rec.store.State().Alerts[0].Msg)
}

func TestLoadUser_AuthError(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth", reply(http.StatusUnauthorized, `{"errors":[{"msg":"Token is not valid"}]}`))
	rec := newRecorder()

	err := New(newClient(t, mux)).LoadUser(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, []state.EventType{state.AuthError}, rec.types())
	assert.False(t, rec.store.State().Auth.Loading)
}

func TestGithubRepos(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/profile/github/octocat", reply(http.StatusOK, `[{"id":1,"name":"hello","stargazers_count":3}]`))
	mux.HandleFunc("GET /api/profile/github/ghost", reply(http.StatusNotFound, `{"errors":[{"msg":"No Github profile found"}]}`))
	client := newClient(t, mux)

	rec := newRecorder()
	a := New(client)
	require.NoError(t, a.GetGithubRepos(context.Background(), rec, "octocat"))
	repos := rec.store.State().Profile.Repos
	require.Len(t, repos, 1)
	assert.Equal(t, 3, repos[0].Stars)

	require.Error(t, a.GetGithubRepos(context.Background(), rec, "ghost"))
	assert.Equal(t, state.NoRepos, rec.last().Type)
	assert.Empty(t, rec.store.State().Profile.Repos)
}

func TestPostActions(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", reply(http.StatusOK, `[{"id":1,"text":"hi","likes":[],"comments":[]}]`))
	mux.HandleFunc("POST /api/posts", reply(http.StatusOK, `{"id":2,"text":"new","likes":[],"comments":[]}`))
	mux.HandleFunc("PUT /api/posts/like/1", reply(http.StatusBadRequest, `{"errors":[{"msg":"Post already liked"}]}`))
	mux.HandleFunc("PUT /api/posts/unlike/1", reply(http.StatusOK, `[]`))
	mux.HandleFunc("POST /api/posts/comment/1", reply(http.StatusOK, `[{"id":5,"text":"nice"}]`))
	mux.HandleFunc("DELETE /api/posts/comment/1/5", reply(http.StatusOK, `[]`))
	mux.HandleFunc("DELETE /api/posts/2", reply(http.StatusOK, `{"msg":"Post removed"}`))
	ctx := context.Background()
	rec := newRecorder()
	a := New(newClient(t, mux))

	require.NoError(t, a.GetPosts(ctx, rec))
	require.NoError(t, a.AddPost(ctx, rec, "new"))
	posts := rec.store.State().Post.Posts
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)

	require.Error(t, a.AddLike(ctx, rec, 1))
	assert.Equal(t, state.PostError, rec.last().Type)

	require.NoError(t, a.RemoveLike(ctx, rec, 1))
	require.NoError(t, a.AddComment(ctx, rec, 1, "nice"))
	assert.Len(t, rec.store.State().Post.Posts[1].Comments, 1)
	require.NoError(t, a.DeleteComment(ctx, rec, 1, 5))
	assert.Empty(t, rec.store.State().Post.Posts[1].Comments)

	require.NoError(t, a.DeletePost(ctx, rec, 2))
	require.Len(t, rec.store.State().Post.Posts, 1)

	assert.Equal(t, []state.EventType{
		state.GetPosts,
		state.AddPost, state.SetAlert,
		state.SetAlert, state.PostError,
		state.UpdateLikes,
		state.AddComment, state.SetAlert,
		state.RemoveComment, state.SetAlert,
		state.DeletePost, state.SetAlert,
	}, rec.types())
}
