package service

import (
	"context"
	"sync"
	"testing"

	"devconnect/internal/events"
	"devconnect/internal/github"
	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	deleteAccountFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) DeleteAccount(ctx context.Context, id uint) error {
	return s.deleteAccountFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "user", Avatar: "//avatar"}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		deleteAccountFn: func(context.Context, uint) error { return nil },
	}
}

type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	listFn             func(context.Context) ([]models.Profile, error)
	createFn           func(context.Context, *models.Profile) error
	updateFn           func(context.Context, uint, models.ProfilePatch) error
	addExperienceFn    func(context.Context, uint, uint, *models.Experience) error
	removeExperienceFn func(context.Context, uint, uint, string) (bool, error)
	addEducationFn     func(context.Context, uint, uint, *models.Education) error
	removeEducationFn  func(context.Context, uint, uint, string) (bool, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context) ([]models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, userID uint, patch models.ProfilePatch) error {
	return s.updateFn(ctx, userID, patch)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, userID, profileID uint, exp *models.Experience) error {
	return s.addExperienceFn(ctx, userID, profileID, exp)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, userID, profileID uint, id string) (bool, error) {
	return s.removeExperienceFn(ctx, userID, profileID, id)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, userID, profileID uint, edu *models.Education) error {
	return s.addEducationFn(ctx, userID, profileID, edu)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, userID, profileID uint, id string) (bool, error) {
	return s.removeEducationFn(ctx, userID, profileID, id)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(context.Context, uint) (*models.Profile, error) {
			return nil, models.NewNotFoundError("Profile not found")
		},
		listFn:             func(context.Context) ([]models.Profile, error) { return []models.Profile{}, nil },
		createFn:           func(context.Context, *models.Profile) error { return nil },
		updateFn:           func(context.Context, uint, models.ProfilePatch) error { return nil },
		addExperienceFn:    func(context.Context, uint, uint, *models.Experience) error { return nil },
		removeExperienceFn: func(context.Context, uint, uint, string) (bool, error) { return false, nil },
		addEducationFn:     func(context.Context, uint, uint, *models.Education) error { return nil },
		removeEducationFn:  func(context.Context, uint, uint, string) (bool, error) { return false, nil },
	}
}

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	listFn          func(context.Context) ([]models.Post, error)
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	deleteFn        func(context.Context, uint) error
	likeFn          func(context.Context, uint, uint) error
	unlikeFn        func(context.Context, uint, uint) (bool, error)
	listLikesFn     func(context.Context, uint) ([]models.Like, error)
	addCommentFn    func(context.Context, *models.Comment) error
	getCommentFn    func(context.Context, uint, uint) (*models.Comment, error)
	deleteCommentFn func(context.Context, uint, uint) error
	listCommentsFn  func(context.Context, uint) ([]models.Comment, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) { return s.listFn(ctx) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *postRepoStub) Like(ctx context.Context, postID, userID uint) error {
	return s.likeFn(ctx, postID, userID)
}
func (s *postRepoStub) Unlike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.unlikeFn(ctx, postID, userID)
}
func (s *postRepoStub) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.listLikesFn(ctx, postID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, postID, commentID)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, postID, commentID uint) error {
	return s.deleteCommentFn(ctx, postID, commentID)
}
func (s *postRepoStub) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listCommentsFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		listFn:   func(context.Context) ([]models.Post, error) { return []models.Post{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		deleteFn:        func(context.Context, uint) error { return nil },
		likeFn:          func(context.Context, uint, uint) error { return nil },
		unlikeFn:        func(context.Context, uint, uint) (bool, error) { return true, nil },
		listLikesFn:     func(context.Context, uint) ([]models.Like, error) { return []models.Like{}, nil },
		addCommentFn:    func(context.Context, *models.Comment) error { return nil },
		getCommentFn:    func(_ context.Context, postID, id uint) (*models.Comment, error) { return &models.Comment{ID: id, PostID: postID, UserID: 1}, nil },
		deleteCommentFn: func(context.Context, uint, uint) error { return nil },
		listCommentsFn:  func(context.Context, uint) ([]models.Comment, error) { return []models.Comment{}, nil },
	}
}

type repoListerStub struct {
	calls int
	fn    func(context.Context, string) ([]github.Repo, error)
}

func (s *repoListerStub) Repos(ctx context.Context, username string) ([]github.Repo, error) {
	s.calls++
	return s.fn(ctx, username)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func assertValidationMessages(t *testing.T, err error, want ...string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, want, appErr.Messages())
}
