package state

import (
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceAuth(t *testing.T) {
	t.Parallel()
	s := InitialState().Auth
	assert.True(t, s.Loading)

	s = ReduceAuth(s, Event{Type: LoginSuccess, Payload: "tok"})
	assert.Equal(t, "tok", s.Token)
	assert.True(t, s.IsAuthenticated)
	assert.False(t, s.Loading)

	user := &models.User{ID: 1, Name: "Ada"}
	s = ReduceAuth(s, Event{Type: UserLoaded, Payload: user})
	assert.Same(t, user, s.User)
	assert.Equal(t, "tok", s.Token)

	for _, typ := range []EventType{AuthError, LoginFail, RegisterFail, Logout, AccountDeleted} {
		cleared := ReduceAuth(s, Event{Type: typ})
		assert.Equal(t, AuthState{}, cleared, typ)
	}
	assert.Equal(t, "tok", s.Token, "reducer must not mutate its input")
}

func TestReduceProfile(t *testing.T) {
	t.Parallel()
	s := InitialState().Profile
	assert.True(t, s.Loading)
	assert.Nil(t, s.Profile)

	p := &models.Profile{ID: 3, Status: "Developer"}
	s = ReduceProfile(s, Event{Type: GetProfile, Payload: p})
	assert.Same(t, p, s.Profile)
	assert.False(t, s.Loading)

	errored := ReduceProfile(s, Event{Type: ProfileError, Payload: ErrorPayload{Msg: "Bad Request", Status: 400}})
	assert.Nil(t, errored.Profile)
	assert.False(t, errored.Loading)
	require.NotNil(t, errored.Error)
	assert.Equal(t, 400, errored.Error.Status)
	assert.Same(t, p, s.Profile)

	s = ReduceProfile(s, Event{Type: GetProfiles, Payload: []models.Profile(nil)})
	assert.NotNil(t, s.Profiles)

	s = ReduceProfile(s, Event{Type: ClearProfile})
	assert.Nil(t, s.Profile)
	assert.Empty(t, s.Repos)
}

func TestReduceAlerts(t *testing.T) {
	t.Parallel()
	var alerts []Alert
	alerts = ReduceAlerts(alerts, Event{Type: SetAlert, Payload: Alert{ID: "a", Msg: "one"}})
	before := alerts
	alerts = ReduceAlerts(alerts, Event{Type: SetAlert, Payload: Alert{ID: "b", Msg: "two"}})
	require.Len(t, alerts, 2)
	assert.Len(t, before, 1)

	alerts = ReduceAlerts(alerts, Event{Type: RemoveAlert, Payload: "a"})
	require.Len(t, alerts, 1)
	assert.Equal(t, "b", alerts[0].ID)

	assert.Equal(t, alerts, ReduceAlerts(alerts, Event{Type: GetProfile}))
}

func TestReducePost(t *testing.T) {
	t.Parallel()
	s := ReducePost(InitialState().Post, Event{Type: GetPosts, Payload: []models.Post{{ID: 1}, {ID: 2}}})
	assert.False(t, s.Loading)

	s = ReducePost(s, Event{Type: AddPost, Payload: &models.Post{ID: 3}})
	require.Len(t, s.Posts, 3)
	assert.Equal(t, uint(3), s.Posts[0].ID)

	original := s.Posts
	s = ReducePost(s, Event{Type: UpdateLikes, Payload: LikesPayload{PostID: 1, Likes: []models.Like{{ID: 9, UserID: 4}}}})
	assert.Len(t, s.Posts[1].Likes, 1)
	assert.Empty(t, original[1].Likes)

	s.Post = &models.Post{ID: 2}
	s = ReducePost(s, Event{Type: AddComment, Payload: CommentsPayload{PostID: 2, Comments: []models.Comment{{ID: 5}, {ID: 6}}}})
	assert.Len(t, s.Post.Comments, 2)
	assert.Len(t, s.Posts[2].Comments, 2)

	s = ReducePost(s, Event{Type: RemoveComment, Payload: CommentRef{PostID: 2, CommentID: 5}})
	require.Len(t, s.Post.Comments, 1)
	assert.Equal(t, uint(6), s.Post.Comments[0].ID)

	s = ReducePost(s, Event{Type: DeletePost, Payload: uint(1)})
	require.Len(t, s.Posts, 2)
	for _, p := range s.Posts {
		assert.NotEqual(t, uint(1), p.ID)
	}
}

func TestReduce_UnrelatedSlicesUntouched(t *testing.T) {
	t.Parallel()
	s := InitialState()
	s.Auth = AuthState{Token: "t", IsAuthenticated: true}
	next := Reduce(s, Event{Type: GetProfile, Payload: &models.Profile{ID: 1}})
	assert.Equal(t, s.Auth, next.Auth)
	assert.Equal(t, s.Post, next.Post)
	assert.Equal(t, s.Alerts, next.Alerts)
}
