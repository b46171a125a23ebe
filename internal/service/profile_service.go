package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/events"
	"devconnect/internal/github"
	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

const noProfileMsg = "There is no profile for this user"

// RepoLister looks up public repositories of a GitHub user.
type RepoLister interface {
	Repos(ctx context.Context, username string) ([]github.Repo, error)
}

// ProfileService provides profile, sub-entry and account business logic.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	github   RepoLister
	events   events.Publisher
	revoke   func(ctx context.Context, jti string, ttl time.Duration) error
}

// UpsertProfileInput is the create-or-update payload. Empty strings are treated as not supplied.
type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string `validate:"notblank" msg:"Status is required"`
	GithubUsername string
	Skills         string `validate:"notblank" msg:"Skills is required"`
	YouTube        string
	Twitter        string
	Facebook       string
	LinkedIn       string
	Instagram      string
}

// ExperienceInput is the add-experience payload. Dates are YYYY-MM-DD or RFC3339.
type ExperienceInput struct {
	Title       string `validate:"notblank" msg:"Title is required"`
	Company     string `validate:"notblank" msg:"Company is required"`
	Location    string
	From        string `validate:"notblank" msg:"From date is required"`
	To          string
	Current     bool
	Description string
}

// EducationInput is the add-education payload.
type EducationInput struct {
	School       string `validate:"notblank" msg:"School is required"`
	Degree       string `validate:"notblank" msg:"Degree is required"`
	FieldOfStudy string `validate:"notblank" msg:"Field of study is required"`
	From         string `validate:"notblank" msg:"From date is required"`
	To           string
	Current      bool
	Description  string
}

// DeleteAccountInput identifies the account and the token that requested its removal.
type DeleteAccountInput struct {
	UserID      uint
	TokenID     string
	TokenExpiry time.Time
}

// NewProfileService returns a new ProfileService.
func NewProfileService(
	profiles repository.ProfileRepository,
	users repository.UserRepository,
	repos RepoLister,
	publisher events.Publisher,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		github:   repos,
		events:   publisher,
		revoke:   cache.BlacklistToken,
	}
}

// ParseSkills splits a comma-delimited list, trimming items and dropping empty ones.
// Order is preserved and duplicates are kept.
func ParseSkills(csv string) models.StringList {
	skills := models.StringList{}
	for _, item := range strings.Split(csv, ",") {
		if s := strings.TrimSpace(item); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func (in UpsertProfileInput) patch(skills models.StringList) models.ProfilePatch {
	opt := func(v string) *string {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return &v
	}
	return models.ProfilePatch{
		Company:        opt(in.Company),
		Website:        opt(in.Website),
		Location:       opt(in.Location),
		Bio:            opt(in.Bio),
		Status:         opt(in.Status),
		GithubUsername: opt(in.GithubUsername),
		Skills:         skills,
		YouTube:        opt(in.YouTube),
		Twitter:        opt(in.Twitter),
		Facebook:       opt(in.Facebook),
		LinkedIn:       opt(in.LinkedIn),
		Instagram:      opt(in.Instagram),
	}
}

// GetMine returns the profile of the authenticated user.
func (s *ProfileService) GetMine(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if models.IsCode(err, models.CodeNotFound) {
		return nil, models.NewNotFoundError(noProfileMsg)
	}
	return profile, err
}

// Upsert creates the user's profile or updates the supplied fields of the
// existing one. It reports whether a profile was created.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, bool, error) {
	msgs := validation.Struct(in)
	skills := ParseSkills(in.Skills)
	if len(skills) == 0 && strings.TrimSpace(in.Skills) != "" {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		return nil, false, models.NewValidationError(msgs...)
	}

	patch := in.patch(skills)
	created, err := s.upsert(ctx, in.UserID, patch)
	if err != nil {
		return nil, false, err
	}

	profile, err := s.profiles.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, false, err
	}

	publish(ctx, s.events, events.New(events.ProfileUpserted, in.UserID, map[string]any{"created": created}))
	return profile, created, nil
}

func (s *ProfileService) upsert(ctx context.Context, userID uint, patch models.ProfilePatch) (bool, error) {
	_, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		err = s.profiles.Update(ctx, userID, patch)
		if !models.IsCode(err, models.CodeNotFound) {
			return false, err
		}
		// Deleted since the cached read; fall through to create.
	case !models.IsCode(err, models.CodeNotFound):
		return false, err
	}

	profile := &models.Profile{UserID: userID}
	patch.Apply(profile)
	err = s.profiles.Create(ctx, profile)
	if errors.Is(err, repository.ErrProfileExists) {
		return false, s.profiles.Update(ctx, userID, patch)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns every profile with its owner's public fields.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.List(ctx)
}

// GetByUserID returns the profile owned by userID.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	if userID == 0 {
		return nil, models.NewNotFoundError("Profile not found")
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// DeleteAccount removes the user with every record they own, then revokes
// the token used for the request.
func (s *ProfileService) DeleteAccount(ctx context.Context, in DeleteAccountInput) error {
	if err := s.users.DeleteAccount(ctx, in.UserID); err != nil {
		observability.AccountDeletions.WithLabelValues("error").Inc()
		return err
	}
	observability.AccountDeletions.WithLabelValues("ok").Inc()

	if in.TokenID != "" && s.revoke != nil {
		if err := s.revoke(ctx, in.TokenID, time.Until(in.TokenExpiry)); err != nil {
			slog.WarnContext(ctx, "token revocation failed",
				slog.Uint64("user_id", uint64(in.UserID)),
				slog.String("error", err.Error()),
			)
		}
	}

	publish(ctx, s.events, events.New(events.AccountDeleted, in.UserID, nil))
	return nil
}

// AddExperience prepends an experience entry to the user's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	msgs := validation.Struct(in)
	from, to, dateMsgs := parseRange(in.From, in.To)
	if len(msgs) == 0 {
		msgs = dateMsgs
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profiles.AddExperience(ctx, userID, profile.ID, exp); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// RemoveExperience deletes one experience entry. An unknown id leaves the profile unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID uint, expID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	removed, err := s.profiles.RemoveExperience(ctx, userID, profile.ID, expID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return profile, nil
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry to the user's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	msgs := validation.Struct(in)
	from, to, dateMsgs := parseRange(in.From, in.To)
	if len(msgs) == 0 {
		msgs = dateMsgs
	}
	if len(msgs) > 0 {
		return nil, models.NewValidationError(msgs...)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profiles.AddEducation(ctx, userID, profile.ID, edu); err != nil {
		return nil, err
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// RemoveEducation deletes one education entry. An unknown id leaves the profile unchanged.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID uint, eduID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	removed, err := s.profiles.RemoveEducation(ctx, userID, profile.ID, eduID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return profile, nil
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// GithubRepos returns the user's public repositories, cached for ten minutes.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	username = strings.TrimSpace(username)
	var repos []github.Repo
	err := cache.Aside(ctx, cache.GithubReposKey(strings.ToLower(username)), &repos, cache.GithubReposTTL, func() error {
		var err error
		repos, err = s.github.Repos(ctx, username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseRange(fromRaw, toRaw string) (time.Time, *time.Time, []string) {
	var msgs []string
	from, err := ParseDate(fromRaw)
	if err != nil {
		msgs = append(msgs, "From date is invalid")
	}
	var to *time.Time
	if strings.TrimSpace(toRaw) != "" {
		t, err := ParseDate(toRaw)
		if err != nil {
			msgs = append(msgs, "To date is invalid")
		} else {
			to = &t
		}
	}
	return from, to, msgs
}
