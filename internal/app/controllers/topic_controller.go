package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/services"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// TopicController handles topic operations
type TopicController struct {
	topicService services.TopicService
}

// NewTopicController creates a new TopicController
func NewTopicController(topicService services.TopicService) *TopicController {
	return &TopicController{topicService: topicService}
}

// ListTopics lists all topics by name
// @Summary List topics
// @Tags topics
// @Produce json
// @Success 200 {array} models.Topic
// @Router /topics [get]
func (c *TopicController) ListTopics(ctx *gin.Context) {
	topics, err := c.topicService.ListTopics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, topics)
}

// CreateTopic creates a topic
// @Summary Create topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTopicRequest true "Topic"
// @Success 201 {object} models.Topic
// @Failure 400 {object} dto.ErrorResponse "Invalid request or duplicate name"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Professionals cannot create topics"
// @Router /topics [post]
func (c *TopicController) CreateTopic(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTopicRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	topic, err := c.topicService.CreateTopic(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, topic)
}

// GetTopicPosts lists posts tagged with a topic
// @Summary Posts by topic
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Post
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /topics/{id}/posts [get]
func (c *TopicController) GetTopicPosts(ctx *gin.Context) {
	topicID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	posts, err := c.topicService.GetTopicPosts(ctx.Request.Context(), topicID, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, posts)
}
