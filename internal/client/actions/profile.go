package actions

import (
	"context"

	"devconnect/internal/client/api"
	"devconnect/internal/client/state"
	"devconnect/internal/models"
)

// GetCurrentProfile loads the caller's profile.
func (a *Actions) GetCurrentProfile(ctx context.Context, d Dispatcher) error {
	profile, err := a.api.CurrentProfile(ctx)
	if err != nil {
		return a.fail(d, err, state.ProfileError, false)
	}
	d.Dispatch(state.Event{Type: state.GetProfile, Payload: profile})
	return nil
}

// GetProfiles loads the developer directory.
func (a *Actions) GetProfiles(ctx context.Context, d Dispatcher) error {
	profiles, err := a.api.Profiles(ctx)
	if err != nil {
		return a.fail(d, err, state.ProfileError, false)
	}
	d.Dispatch(state.Event{Type: state.GetProfiles, Payload: profiles})
	return nil
}

// GetProfileByID loads the profile owned by userID.
func (a *Actions) GetProfileByID(ctx context.Context, d Dispatcher, userID uint) error {
	profile, err := a.api.ProfileByUserID(ctx, userID)
	if err != nil {
		return a.fail(d, err, state.ProfileError, false)
	}
	d.Dispatch(state.Event{Type: state.GetProfile, Payload: profile})
	return nil
}

// GetGithubRepos loads the latest repositories of a GitHub user.
func (a *Actions) GetGithubRepos(ctx context.Context, d Dispatcher, username string) error {
	repos, err := a.api.GithubRepos(ctx, username)
	if err != nil {
		d.Dispatch(state.Event{Type: state.NoRepos})
		return api.AsError(err)
	}
	d.Dispatch(state.Event{Type: state.GetRepos, Payload: repos})
	return nil
}

// CreateProfile creates or updates the caller's profile. edit only selects
// the alert text and whether to navigate; the server decides create versus
// update on its own.
func (a *Actions) CreateProfile(ctx context.Context, d Dispatcher, form api.ProfileForm, edit bool) error {
	profile, err := a.api.UpsertProfile(ctx, form)
	if err != nil {
		return a.fail(d, err, state.ProfileError, true)
	}
	d.Dispatch(state.Event{Type: state.GetProfile, Payload: profile})
	if edit {
		a.alert(d, "Profile Updated", state.AlertSuccess)
		return nil
	}
	a.alert(d, "Profile Created", state.AlertSuccess)
	a.nav.Navigate(DashboardPath)
	return nil
}

// AddExperience prepends an experience entry.
func (a *Actions) AddExperience(ctx context.Context, d Dispatcher, form api.ExperienceForm) error {
	profile, err := a.api.AddExperience(ctx, form)
	if err != nil {
		return a.fail(d, err, state.ProfileError, true)
	}
	a.updated(d, profile, "Experience Added")
	a.nav.Navigate(DashboardPath)
	return nil
}

// AddEducation prepends an education entry.
func (a *Actions) AddEducation(ctx context.Context, d Dispatcher, form api.EducationForm) error {
	profile, err := a.api.AddEducation(ctx, form)
	if err != nil {
		return a.fail(d, err, state.ProfileError, true)
	}
	a.updated(d, profile, "Education Added")
	a.nav.Navigate(DashboardPath)
	return nil
}

// DeleteExperience removes an experience entry.
func (a *Actions) DeleteExperience(ctx context.Context, d Dispatcher, id string) error {
	profile, err := a.api.DeleteExperience(ctx, id)
	if err != nil {
		return a.fail(d, err, state.ProfileError, false)
	}
	a.updated(d, profile, "Experience Removed")
	return nil
}

// DeleteEducation removes an education entry.
func (a *Actions) DeleteEducation(ctx context.Context, d Dispatcher, id string) error {
	profile, err := a.api.DeleteEducation(ctx, id)
	if err != nil {
		return a.fail(d, err, state.ProfileError, false)
	}
	a.updated(d, profile, "Education Removed")
	return nil
}

// DeleteAccount asks for confirmation and then deletes the caller's account.
// A declined confirmation sends nothing and returns ErrDeclined.
func (a *Actions) DeleteAccount(ctx context.Context, d Dispatcher) error {
	if !a.confirm.Confirm(DeleteAccountPrompt) {
		return ErrDeclined
	}
	if err := a.api.DeleteAccount(ctx); err != nil {
		return a.fail(d, err, state.ProfileError, false)
	}
	d.Dispatch(state.Event{Type: state.ClearProfile})
	d.Dispatch(state.Event{Type: state.AccountDeleted})
	a.SetAlert(d, "Your account has been permanently deleted", state.AlertSuccess, 0)
	return a.clearToken()
}

func (a *Actions) updated(d Dispatcher, profile *models.Profile, msg string) {
	d.Dispatch(state.Event{Type: state.UpdateProfile, Payload: profile})
	a.alert(d, msg, state.AlertSuccess)
}
