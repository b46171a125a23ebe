// Package state holds the client's application state. Every change goes
// through Store.Dispatch, which runs pure reducers keyed by event type.
package state

import (
	"time"

	"devconnect/internal/models"
)

// EventType names a state transition.
type EventType string

const (
	UserLoaded      EventType = "USER_LOADED"
	AuthError       EventType = "AUTH_ERROR"
	RegisterSuccess EventType = "REGISTER_SUCCESS"
	RegisterFail    EventType = "REGISTER_FAIL"
	LoginSuccess    EventType = "LOGIN_SUCCESS"
	LoginFail       EventType = "LOGIN_FAIL"
	Logout          EventType = "LOGOUT"
	AccountDeleted  EventType = "ACCOUNT_DELETED"

	GetProfile    EventType = "GET_PROFILE"
	GetProfiles   EventType = "GET_PROFILES"
	UpdateProfile EventType = "UPDATE_PROFILE"
	ProfileError  EventType = "PROFILE_ERROR"
	ClearProfile  EventType = "CLEAR_PROFILE"
	GetRepos      EventType = "GET_REPOS"
	NoRepos       EventType = "NO_REPOS"

	SetAlert    EventType = "SET_ALERT"
	RemoveAlert EventType = "REMOVE_ALERT"

	GetPosts      EventType = "GET_POSTS"
	GetPost       EventType = "GET_POST"
	AddPost       EventType = "ADD_POST"
	DeletePost    EventType = "DELETE_POST"
	UpdateLikes   EventType = "UPDATE_LIKES"
	AddComment    EventType = "ADD_COMMENT"
	RemoveComment EventType = "REMOVE_COMMENT"
	PostError     EventType = "POST_ERROR"
)

// Event is a dispatched transition. Payload types per event:
//
//	USER_LOADED                          *models.User
//	REGISTER_SUCCESS, LOGIN_SUCCESS      string (token)
//	GET_PROFILE, UPDATE_PROFILE          *models.Profile
//	GET_PROFILES                         []models.Profile
//	GET_REPOS                            []github.Repo
//	PROFILE_ERROR, POST_ERROR            ErrorPayload
//	SET_ALERT                            Alert
//	REMOVE_ALERT                         string (alert id)
//	GET_POSTS                            []models.Post
//	GET_POST, ADD_POST                   *models.Post
//	DELETE_POST                          uint (post id)
//	UPDATE_LIKES                         LikesPayload
//	ADD_COMMENT                          CommentsPayload
//	REMOVE_COMMENT                       CommentRef
type Event struct {
	Type    EventType
	Payload any
}

// ErrorPayload describes a failed request.
type ErrorPayload struct {
	Msg    string `json:"msg"`
	Status int    `json:"status"`
}

// Alert severities.
const (
	AlertSuccess = "success"
	AlertDanger  = "danger"
)

// Alert is a transient notification. A zero Timeout keeps it until removed.
type Alert struct {
	ID      string        `json:"id"`
	Msg     string        `json:"msg"`
	Type    string        `json:"alert_type"`
	Timeout time.Duration `json:"-"`
}

// LikesPayload carries the likes of one post.
type LikesPayload struct {
	PostID uint
	Likes  []models.Like
}

// CommentsPayload carries the comments of one post.
type CommentsPayload struct {
	PostID   uint
	Comments []models.Comment
}

// CommentRef identifies a removed comment.
type CommentRef struct {
	PostID    uint
	CommentID uint
}
