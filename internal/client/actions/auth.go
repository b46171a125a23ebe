package actions

import (
	"context"
	"errors"

	"devconnect/internal/client/api"
	"devconnect/internal/client/state"
)

// LoadUser resolves the user owning the current token.
func (a *Actions) LoadUser(ctx context.Context, d Dispatcher) error {
	user, err := a.api.LoadUser(ctx)
	if err != nil {
		d.Dispatch(state.Event{Type: state.AuthError})
		return api.AsError(err)
	}
	d.Dispatch(state.Event{Type: state.UserLoaded, Payload: user})
	return nil
}

// Register creates an account, stores its token and loads the user.
func (a *Actions) Register(ctx context.Context, d Dispatcher, name, email, password string) error {
	token, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return a.authFailed(d, err, state.RegisterFail)
	}
	return a.authenticated(ctx, d, token, state.RegisterSuccess)
}

// Login exchanges credentials for a token and loads the user.
func (a *Actions) Login(ctx context.Context, d Dispatcher, email, password string) error {
	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.authFailed(d, err, state.LoginFail)
	}
	return a.authenticated(ctx, d, token, state.LoginSuccess)
}

// Logout forgets the session.
func (a *Actions) Logout(d Dispatcher) error {
	d.Dispatch(state.Event{Type: state.ClearProfile})
	d.Dispatch(state.Event{Type: state.Logout})
	return a.clearToken()
}

func (a *Actions) authenticated(ctx context.Context, d Dispatcher, token string, typ state.EventType) error {
	saveErr := a.saveToken(token)
	d.Dispatch(state.Event{Type: typ, Payload: token})
	return errors.Join(saveErr, a.LoadUser(ctx, d))
}

func (a *Actions) authFailed(d Dispatcher, err error, typ state.EventType) error {
	apiErr := api.AsError(err)
	for _, msg := range apiErr.Messages {
		a.alert(d, msg, state.AlertDanger)
	}
	d.Dispatch(state.Event{Type: typ})
	_ = a.clearToken()
	return apiErr
}
