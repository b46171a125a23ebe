// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	DeleteAccount(ctx context.Context, id uint) error
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		defer observability.TrackQuery("get_by_id", "users")()
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackQuery("get_by_email", "users")()
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, slog.Uint64("user_id", uint64(user.ID)))
	return nil
}

// DeleteAccount removes the user and everything they own in one transaction:
// profile sub-entries, profile, likes and comments (theirs and those on their
// posts), posts, then the user row. Any failure rolls the whole cascade back.
func (r *userRepository) DeleteAccount(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete_account", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profileIDs := tx.Model(&models.Profile{}).Select("id").Where("user_id = ?", id)
		postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)

		steps := []struct {
			model any
			query string
			args  []any
		}{
			{&models.Experience{}, "profile_id IN (?)", []any{profileIDs}},
			{&models.Education{}, "profile_id IN (?)", []any{profileIDs}},
			{&models.Like{}, "user_id = ? OR post_id IN (?)", []any{id, postIDs}},
			{&models.Comment{}, "user_id = ? OR post_id IN (?)", []any{id, postIDs}},
			{&models.Post{}, "user_id = ?", []any{id}},
			{&models.Profile{}, "user_id = ?", []any{id}},
		}
		for _, step := range steps {
			if err := tx.Where(step.query, step.args...).Delete(step.model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User not found")
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		r.log.LogError(ctx, err, "delete_account")
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, id)
	cache.InvalidateProfile(ctx, id)
	r.log.LogDelete(ctx, slog.Uint64("user_id", uint64(id)))
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505, SQLite "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
