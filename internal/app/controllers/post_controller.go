package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/services"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// PostController handles posts and everything hanging off a post:
// topics, resources, comments, likes and bookmarks
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// ListPosts lists posts, newest first
// @Summary List posts
// @Description Optional topicId and authorId narrow the list
// @Tags posts
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Param topicId query int false "Topic filter"
// @Param authorId query int false "Author filter"
// @Success 200 {array} models.Post
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	limit, offset := helpers.ParseLimitOffset(ctx)

	topicID, err := helpers.ParseOptionalIDQuery(ctx, "topicId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	authorID, err := helpers.ParseOptionalIDQuery(ctx, "authorId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filter := dto.PostFilter{TopicID: topicID, AuthorID: authorID}
	posts, err := c.postService.ListPosts(ctx.Request.Context(), filter, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns a single post
// @Summary Get post
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{postId} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	post, err := c.postService.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, post)
}

// CreatePost publishes a post with optional topics and resources
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Professionals cannot create posts"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postID", post.ID).Int64("authorID", userID).Msg("Post created")
	ctx.JSON(http.StatusCreated, post)
}

// GetPostTopics lists the topics a post is tagged with
// @Summary Post topics
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} models.Topic
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{postId}/topics [get]
func (c *PostController) GetPostTopics(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	topics, err := c.postService.GetPostTopics(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, topics)
}

// GetPostResources lists the resources attached to a post
// @Summary Post resources
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} models.Resource
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{postId}/resources [get]
func (c *PostController) GetPostResources(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	resources, err := c.postService.GetPostResources(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resources)
}

// ListComments lists a post's comments with their authors
// @Summary List comments
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} dto.CommentResponse
// @Router /posts/{postId}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	comments, err := c.postService.ListComments(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// CreateComment comments on a post and notifies its author
// @Summary Create comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Professionals cannot comment"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{postId}/comments [post]
func (c *PostController) CreateComment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.postService.CreateComment(ctx.Request.Context(), userID, postID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, comment)
}

// ListLikes lists the likes on a post
// @Summary List likes
// @Tags likes
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} models.Like
// @Router /posts/{postId}/likes [get]
func (c *PostController) ListLikes(ctx *gin.Context) {
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	likes, err := c.postService.ListLikes(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, likes)
}

// LikePost likes a post once
// @Summary Like post
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 201 {object} models.Like
// @Failure 400 {object} dto.ErrorResponse "Already liked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{postId}/likes [post]
func (c *PostController) LikePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	like, err := c.postService.LikePost(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, like)
}

// UnlikePost removes the caller's like
// @Summary Unlike post
// @Tags likes
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Like not found"
// @Router /posts/{postId}/likes [delete]
func (c *PostController) UnlikePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	if err := c.postService.UnlikePost(ctx.Request.Context(), userID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// BookmarkPost bookmarks a post once
// @Summary Bookmark post
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 201 {object} models.Bookmark
// @Failure 400 {object} dto.ErrorResponse "Already bookmarked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{postId}/bookmarks [post]
func (c *PostController) BookmarkPost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	bookmark, err := c.postService.BookmarkPost(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, bookmark)
}

// RemoveBookmark deletes the caller's bookmark
// @Summary Remove bookmark
// @Tags bookmarks
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Bookmark not found"
// @Router /posts/{postId}/bookmarks [delete]
func (c *PostController) RemoveBookmark(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "postId")
	if !ok {
		return
	}

	if err := c.postService.RemoveBookmark(ctx.Request.Context(), userID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListBookmarks lists the caller's bookmarks with the bookmarked posts
// @Summary List bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BookmarkResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /bookmarks [get]
func (c *PostController) ListBookmarks(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	bookmarks, err := c.postService.ListBookmarks(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookmarks)
}
