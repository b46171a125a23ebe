package actions

import (
	"context"

	"devconnect/internal/client/state"
)

// GetPosts loads the feed.
func (a *Actions) GetPosts(ctx context.Context, d Dispatcher) error {
	posts, err := a.api.Posts(ctx)
	if err != nil {
		return a.fail(d, err, state.PostError, false)
	}
	d.Dispatch(state.Event{Type: state.GetPosts, Payload: posts})
	return nil
}

// GetPost loads one post.
func (a *Actions) GetPost(ctx context.Context, d Dispatcher, id uint) error {
	post, err := a.api.Post(ctx, id)
	if err != nil {
		return a.fail(d, err, state.PostError, false)
	}
	d.Dispatch(state.Event{Type: state.GetPost, Payload: post})
	return nil
}

// AddPost publishes a post.
func (a *Actions) AddPost(ctx context.Context, d Dispatcher, text string) error {
	post, err := a.api.CreatePost(ctx, text)
	if err != nil {
		return a.fail(d, err, state.PostError, true)
	}
	d.Dispatch(state.Event{Type: state.AddPost, Payload: post})
	a.alert(d, "Post Created", state.AlertSuccess)
	return nil
}

// DeletePost removes one of the caller's posts.
func (a *Actions) DeletePost(ctx context.Context, d Dispatcher, id uint) error {
	if err := a.api.DeletePost(ctx, id); err != nil {
		return a.fail(d, err, state.PostError, true)
	}
	d.Dispatch(state.Event{Type: state.DeletePost, Payload: id})
	a.alert(d, "Post Removed", state.AlertSuccess)
	return nil
}

// AddLike likes a post.
func (a *Actions) AddLike(ctx context.Context, d Dispatcher, postID uint) error {
	likes, err := a.api.Like(ctx, postID)
	if err != nil {
		return a.fail(d, err, state.PostError, true)
	}
	d.Dispatch(state.Event{Type: state.UpdateLikes, Payload: state.LikesPayload{PostID: postID, Likes: likes}})
	return nil
}

// RemoveLike removes the caller's like from a post.
func (a *Actions) RemoveLike(ctx context.Context, d Dispatcher, postID uint) error {
	likes, err := a.api.Unlike(ctx, postID)
	if err != nil {
		return a.fail(d, err, state.PostError, true)
	}
	d.Dispatch(state.Event{Type: state.UpdateLikes, Payload: state.LikesPayload{PostID: postID, Likes: likes}})
	return nil
}

// AddComment comments on a post.
func (a *Actions) AddComment(ctx context.Context, d Dispatcher, postID uint, text string) error {
	comments, err := a.api.AddComment(ctx, postID, text)
	if err != nil {
		return a.fail(d, err, state.PostError, true)
	}
	d.Dispatch(state.Event{Type: state.AddComment, Payload: state.CommentsPayload{PostID: postID, Comments: comments}})
	a.alert(d, "Comment Added", state.AlertSuccess)
	return nil
}

// DeleteComment removes one of the caller's comments.
func (a *Actions) DeleteComment(ctx context.Context, d Dispatcher, postID, commentID uint) error {
	if _, err := a.api.DeleteComment(ctx, postID, commentID); err != nil {
		return a.fail(d, err, state.PostError, true)
	}
	d.Dispatch(state.Event{Type: state.RemoveComment, Payload: state.CommentRef{PostID: postID, CommentID: commentID}})
	a.alert(d, "Comment Removed", state.AlertSuccess)
	return nil
}
