package repository

import (
	"context"
	"errors"
	"log/slog"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"

	"gorm.io/gorm"
)

// ErrProfileExists is returned by Create when the owner already has a profile.
var ErrProfileExists = errors.New("profile already exists for user")

// ProfileRepository defines persistence operations for profiles and their sub-entries.
// Sub-entry writes are single statements, so concurrent adds and removes for the
// same owner never overwrite each other.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, userID uint, patch models.ProfilePatch) error
	AddExperience(ctx context.Context, userID, profileID uint, exp *models.Experience) error
	RemoveExperience(ctx context.Context, userID, profileID uint, expID string) (bool, error)
	AddEducation(ctx context.Context, userID, profileID uint, edu *models.Education) error
	RemoveEducation(ctx context.Context, userID, profileID uint, eduID string) (bool, error)
}

type profileRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db, log: observability.NewRepoLogger("profiles")}
}

// withDetails loads the owner's public fields and sub-entries newest first.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_key DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_key DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileByUserKey(userID), &profile, cache.ProfileTTL, func() error {
		defer observability.TrackQuery("get_by_user", "profiles")()
		if err := withDetails(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := cache.Aside(ctx, cache.ProfilesListKey, &profiles, cache.ProfilesTTL, func() error {
		defer observability.TrackQuery("list", "profiles")()
		if err := withDetails(r.db.WithContext(ctx)).Order("id").Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

// Create inserts a new profile. It returns ErrProfileExists when the unique
// owner index rejects the row, so callers can fall back to an update.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	defer observability.TrackQuery("create", "profiles")()
	if err := r.db.WithContext(ctx).Omit("User", "Experience", "Education").Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrProfileExists
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	r.log.LogCreate(ctx, slog.Uint64("user_id", uint64(profile.UserID)))
	return nil
}

// Update applies only the supplied fields of patch to the owner's profile.
func (r *profileRepository) Update(ctx context.Context, userID uint, patch models.ProfilePatch) error {
	defer observability.TrackQuery("update", "profiles")()
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Updates(cols)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Profile not found")
	}
	cache.InvalidateProfile(ctx, userID)
	r.log.LogUpdate(ctx, slog.Uint64("user_id", uint64(userID)), slog.Int("columns", len(cols)))
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, userID, profileID uint, exp *models.Experience) error {
	defer observability.TrackQuery("add_experience", "experiences")()
	exp.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

// RemoveExperience deletes the entry when it belongs to the profile and reports whether one was removed.
func (r *profileRepository) RemoveExperience(ctx context.Context, userID, profileID uint, expID string) (bool, error) {
	defer observability.TrackQuery("remove_experience", "experiences")()
	return r.removeEntry(ctx, userID, &models.Experience{}, profileID, expID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID, profileID uint, edu *models.Education) error {
	defer observability.TrackQuery("add_education", "educations")()
	edu.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

// RemoveEducation deletes the entry when it belongs to the profile and reports whether one was removed.
func (r *profileRepository) RemoveEducation(ctx context.Context, userID, profileID uint, eduID string) (bool, error) {
	defer observability.TrackQuery("remove_education", "educations")()
	return r.removeEntry(ctx, userID, &models.Education{}, profileID, eduID)
}

func (r *profileRepository) removeEntry(ctx context.Context, userID uint, model any, profileID uint, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND profile_id = ?", id, profileID).Delete(model)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidateProfile(ctx, userID)
	}
	return res.RowsAffected > 0, nil
}
