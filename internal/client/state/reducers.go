package state

import (
	"devconnect/internal/github"
	"devconnect/internal/models"
)

// AuthState is the session slice.
type AuthState struct {
	Token           string       `json:"token,omitempty"`
	IsAuthenticated bool         `json:"is_authenticated"`
	Loading         bool         `json:"loading"`
	User            *models.User `json:"user"`
}

// ProfileState is the profile slice. A nil Profile with Loading set means a
// fetch is in flight; with Loading clear it means the profile is absent.
type ProfileState struct {
	Profile  *models.Profile  `json:"profile"`
	Profiles []models.Profile `json:"profiles"`
	Repos    []github.Repo    `json:"repos"`
	Loading  bool             `json:"loading"`
	Error    *ErrorPayload    `json:"error,omitempty"`
}

// PostState is the feed slice.
type PostState struct {
	Posts   []models.Post `json:"posts"`
	Post    *models.Post  `json:"post"`
	Loading bool          `json:"loading"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// State is the whole client state.
type State struct {
	Auth    AuthState    `json:"auth"`
	Profile ProfileState `json:"profile"`
	Alerts  []Alert      `json:"alerts"`
	Post    PostState    `json:"post"`
}

// InitialState is the state before any request settles.
func InitialState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Profiles: []models.Profile{}, Repos: []github.Repo{}, Loading: true},
		Alerts:  []Alert{},
		Post:    PostState{Posts: []models.Post{}, Loading: true},
	}
}

// Reduce applies e to every slice.
func Reduce(s State, e Event) State {
	return State{
		Auth:    ReduceAuth(s.Auth, e),
		Profile: ReduceProfile(s.Profile, e),
		Alerts:  ReduceAlerts(s.Alerts, e),
		Post:    ReducePost(s.Post, e),
	}
}

// ReduceAuth returns the next session slice.
func ReduceAuth(s AuthState, e Event) AuthState {
	switch e.Type {
	case UserLoaded:
		user, _ := e.Payload.(*models.User)
		s.IsAuthenticated = true
		s.Loading = false
		s.User = user
	case RegisterSuccess, LoginSuccess:
		s.Token, _ = e.Payload.(string)
		s.IsAuthenticated = true
		s.Loading = false
	case RegisterFail, LoginFail, AuthError, Logout, AccountDeleted:
		s = AuthState{}
	}
	return s
}

// ReduceProfile returns the next profile slice.
func ReduceProfile(s ProfileState, e Event) ProfileState {
	switch e.Type {
	case GetProfile, UpdateProfile:
		s.Profile, _ = e.Payload.(*models.Profile)
		s.Loading = false
		s.Error = nil
	case GetProfiles:
		profiles, _ := e.Payload.([]models.Profile)
		s.Profiles = nonNil(profiles)
		s.Loading = false
	case GetRepos:
		repos, _ := e.Payload.([]github.Repo)
		s.Repos = nonNil(repos)
		s.Loading = false
	case NoRepos:
		s.Repos = []github.Repo{}
	case ProfileError:
		payload, _ := e.Payload.(ErrorPayload)
		s.Error = &payload
		s.Profile = nil
		s.Loading = false
	case ClearProfile:
		s.Profile = nil
		s.Repos = []github.Repo{}
		s.Loading = false
	}
	return s
}

// ReduceAlerts returns the next alert list.
func ReduceAlerts(alerts []Alert, e Event) []Alert {
	switch e.Type {
	case SetAlert:
		alert, ok := e.Payload.(Alert)
		if !ok {
			return alerts
		}
		next := make([]Alert, 0, len(alerts)+1)
		next = append(next, alerts...)
		return append(next, alert)
	case RemoveAlert:
		id, _ := e.Payload.(string)
		return filter(alerts, func(a Alert) bool { return a.ID != id })
	}
	return alerts
}

// ReducePost returns the next feed slice.
func ReducePost(s PostState, e Event) PostState {
	switch e.Type {
	case GetPosts:
		posts, _ := e.Payload.([]models.Post)
		s.Posts = nonNil(posts)
		s.Loading = false
	case GetPost:
		s.Post, _ = e.Payload.(*models.Post)
		s.Loading = false
	case AddPost:
		if post, ok := e.Payload.(*models.Post); ok && post != nil {
			next := make([]models.Post, 0, len(s.Posts)+1)
			s.Posts = append(append(next, *post), s.Posts...)
		}
		s.Loading = false
	case DeletePost:
		id, _ := e.Payload.(uint)
		s.Posts = filter(s.Posts, func(p models.Post) bool { return p.ID != id })
		s.Loading = false
	case PostError:
		payload, _ := e.Payload.(ErrorPayload)
		s.Error = &payload
		s.Loading = false
	case UpdateLikes:
		payload, _ := e.Payload.(LikesPayload)
		s.Posts = mapPost(s.Posts, payload.PostID, func(p models.Post) models.Post {
			p.Likes = payload.Likes
			return p
		})
		s.Post = updatePost(s.Post, payload.PostID, func(p models.Post) models.Post {
			p.Likes = payload.Likes
			return p
		})
		s.Loading = false
	case AddComment:
		payload, _ := e.Payload.(CommentsPayload)
		s.Posts = mapPost(s.Posts, payload.PostID, func(p models.Post) models.Post {
			p.Comments = payload.Comments
			return p
		})
		s.Post = updatePost(s.Post, payload.PostID, func(p models.Post) models.Post {
			p.Comments = payload.Comments
			return p
		})
		s.Loading = false
	case RemoveComment:
		ref, _ := e.Payload.(CommentRef)
		drop := func(p models.Post) models.Post {
			p.Comments = filter(p.Comments, func(c models.Comment) bool { return c.ID != ref.CommentID })
			return p
		}
		s.Posts = mapPost(s.Posts, ref.PostID, drop)
		s.Post = updatePost(s.Post, ref.PostID, drop)
		s.Loading = false
	}
	return s
}

// mapPost returns a copy of posts with fn applied to the post with id.
func mapPost(posts []models.Post, id uint, fn func(models.Post) models.Post) []models.Post {
	next := make([]models.Post, len(posts))
	for i, p := range posts {
		if p.ID == id {
			p = fn(p)
		}
		next[i] = p
	}
	return next
}

func updatePost(post *models.Post, id uint, fn func(models.Post) models.Post) *models.Post {
	if post == nil || post.ID != id {
		return post
	}
	next := fn(*post)
	return &next
}

func filter[T any](items []T, keep func(T) bool) []T {
	next := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			next = append(next, item)
		}
	}
	return next
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
