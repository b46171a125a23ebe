package service

import (
	"context"
	"errors"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

const notAuthorizedMsg = "User not authorized"

// PostService provides feed business logic.
type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// Create publishes a post with the author's current name and avatar.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   userID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// Get returns one post with likes and comments.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, postID)
}

// Delete removes a post owned by userID.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError(notAuthorizedMsg)
	}
	return s.posts.Delete(ctx, postID)
}

// Like records the user's like and returns the post's likes.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.posts.Like(ctx, postID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return nil, models.NewValidationError("Post already liked")
		}
		return nil, err
	}
	return s.posts.ListLikes(ctx, postID)
}

// Unlike removes the user's like and returns the post's likes.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	removed, err := s.posts.Unlike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewValidationError("Post has not yet been liked")
	}
	return s.posts.ListLikes(ctx, postID)
}

// Comment adds a comment and returns the post's comments, newest first.
func (s *PostService) Comment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}

// DeleteComment removes a comment written by userID and returns the remaining comments.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.posts.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError(notAuthorizedMsg)
	}
	if err := s.posts.DeleteComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(ctx, postID)
}
