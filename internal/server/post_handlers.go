package server

import (
	"github.com/gofiber/fiber/v2"
)

type textRequest struct {
	Text string `json:"text"`
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body textRequest true "Post"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req textRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.Create(ctx, currentUserID(c), req.Text)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(post)
}

// GetPosts handles GET /api/posts
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := s.postService.List(ctx)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found", fiber.StatusNotFound)
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.Get(ctx, postID)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{msg=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found", fiber.StatusNotFound)
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.postService.Delete(ctx, currentUserID(c), postID); err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id
// @Summary Like post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {array} models.Like
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/like/{id} [put]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found", fiber.StatusNotFound)
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	likes, err := s.postService.Like(ctx, currentUserID(c), postID)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id
// @Summary Unlike post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {array} models.Like
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/unlike/{id} [put]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found", fiber.StatusNotFound)
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	likes, err := s.postService.Unlike(ctx, currentUserID(c), postID)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(likes)
}

// CreateComment handles POST /api/posts/comment/:id
// @Summary Comment on post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body textRequest true "Comment"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/comment/{id} [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found", fiber.StatusNotFound)
	if err != nil {
		return nil
	}
	var req textRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := s.postService.Comment(ctx, currentUserID(c), postID, req.Text)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id
// @Summary Delete own comment
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {array} models.Comment
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/comment/{id}/{comment_id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", "Post not found", fiber.StatusNotFound)
	if err != nil {
		return nil
	}
	commentID, err := parseID(c, "comment_id", "Comment does not exist", fiber.StatusNotFound)
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := s.postService.DeleteComment(ctx, currentUserID(c), postID, commentID)
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(comments)
}
