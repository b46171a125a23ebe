package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"

	"devconnect/internal/events"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users and issues tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens *Tokens
	events events.Publisher
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string `validate:"notblank" msg:"Name is required"`
	Email    string `validate:"required,email" msg:"Please include a valid email"`
	Password string `validate:"min=6" msg:"Please enter a password with 6 or more characters"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `validate:"required,email" msg:"Please include a valid email"`
	Password string `validate:"required" msg:"Password is required"`
}

// NewAuthService returns a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *Tokens, publisher events.Publisher) *AuthService {
	return &AuthService{users: users, tokens: tokens, events: publisher}
}

// Register creates the account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if msgs := validation.Struct(in); len(msgs) > 0 {
		return "", models.NewValidationError(msgs...)
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewValidationError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Avatar:   GravatarURL(in.Email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	publish(ctx, s.events, events.New(events.UserRegistered, user.ID, map[string]any{"name": user.Name}))
	return token, nil
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if msgs := validation.Struct(in); len(msgs) > 0 {
		return "", models.NewValidationError(msgs...)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewValidationError("Invalid Credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", models.NewValidationError("Invalid Credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// CurrentUser returns the authenticated user without the password.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GravatarURL returns the avatar URL for email: size 200, rating pg, default mm.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(normalizeEmail(email)))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
