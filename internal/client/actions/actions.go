// Package actions implements the client's units of work. Each action issues
// one API call and, on every exit path, dispatches exactly one primary event
// plus any alerts.
package actions

import (
	"errors"
	"time"

	"devconnect/internal/client/api"
	"devconnect/internal/client/state"

	"github.com/google/uuid"
)

// DefaultAlertTimeout is how long a transient alert stays visible.
const DefaultAlertTimeout = 5 * time.Second

// DashboardPath is where create and add actions navigate on success.
const DashboardPath = "/dashboard"

// DeleteAccountPrompt is the confirmation question for account deletion.
const DeleteAccountPrompt = "Are you sure? This can NOT be undone!"

// ErrDeclined is returned when the user declines a confirmation.
var ErrDeclined = errors.New("action declined")

// Dispatcher applies events to the state. *state.Store implements it.
type Dispatcher interface {
	Dispatch(state.Event)
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// Confirmer asks the user a yes or no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// TokenStore persists the session token across processes.
type TokenStore interface {
	Save(token string) error
	Clear() error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Actions binds the client collaborators shared by every action.
type Actions struct {
	api          *api.Client
	nav          Navigator
	confirm      Confirmer
	tokens       TokenStore
	alertTimeout time.Duration
}

// Option configures Actions.
type Option func(*Actions)

// WithNavigator sets the navigator. The default discards navigation.
func WithNavigator(n Navigator) Option {
	return func(a *Actions) { a.nav = n }
}

// WithConfirmer sets the confirmer. The default declines every question.
func WithConfirmer(c Confirmer) Option {
	return func(a *Actions) { a.confirm = c }
}

// WithTokenStore sets where session tokens are persisted.
func WithTokenStore(s TokenStore) Option {
	return func(a *Actions) { a.tokens = s }
}

// WithAlertTimeout sets the lifetime of transient alerts.
func WithAlertTimeout(d time.Duration) Option {
	return func(a *Actions) { a.alertTimeout = d }
}

// New returns Actions calling client.
func New(client *api.Client, opts ...Option) *Actions {
	a := &Actions{
		api:          client,
		nav:          NavigatorFunc(func(string) {}),
		confirm:      ConfirmerFunc(func(string) bool { return false }),
		alertTimeout: DefaultAlertTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetAlert shows an alert and returns its id. A positive timeout schedules
// its removal; zero keeps it until removed explicitly.
func (a *Actions) SetAlert(d Dispatcher, msg, alertType string, timeout time.Duration) string {
	id := uuid.NewString()
	d.Dispatch(state.Event{Type: state.SetAlert, Payload: state.Alert{
		ID: id, Msg: msg, Type: alertType, Timeout: timeout,
	}})
	if timeout > 0 {
		time.AfterFunc(timeout, func() {
			d.Dispatch(state.Event{Type: state.RemoveAlert, Payload: id})
		})
	}
	return id
}

func (a *Actions) alert(d Dispatcher, msg, alertType string) {
	a.SetAlert(d, msg, alertType, a.alertTimeout)
}

// fail dispatches one danger alert per field message when alerts is set,
// then the error event, and returns the API error.
func (a *Actions) fail(d Dispatcher, err error, typ state.EventType, alerts bool) error {
	apiErr := api.AsError(err)
	if alerts {
		for _, msg := range apiErr.Messages {
			a.alert(d, msg, state.AlertDanger)
		}
	}
	d.Dispatch(state.Event{Type: typ, Payload: state.ErrorPayload{
		Msg: apiErr.StatusText, Status: apiErr.Status,
	}})
	return apiErr
}

func (a *Actions) saveToken(token string) error {
	a.api.SetToken(token)
	if a.tokens == nil {
		return nil
	}
	return a.tokens.Save(token)
}

func (a *Actions) clearToken() error {
	a.api.SetToken("")
	if a.tokens == nil {
		return nil
	}
	return a.tokens.Clear()
}
