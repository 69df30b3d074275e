package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/services"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// LearningPathController handles learning paths, their steps and per-user progress
type LearningPathController struct {
	learningPathService services.LearningPathService
	logger              zerolog.Logger
}

// NewLearningPathController creates a new LearningPathController
func NewLearningPathController(learningPathService services.LearningPathService, logger zerolog.Logger) *LearningPathController {
	return &LearningPathController{
		learningPathService: learningPathService,
		logger:              logger,
	}
}

// ListLearningPaths lists learning paths, newest first
// @Summary List learning paths
// @Tags learning-paths
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.LearningPath
// @Router /learning-paths [get]
func (c *LearningPathController) ListLearningPaths(ctx *gin.Context) {
	limit, offset := helpers.ParseLimitOffset(ctx)

	paths, err := c.learningPathService.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paths)
}

// GetLearningPath returns a path with its creator and steps
// @Summary Get learning path
// @Tags learning-paths
// @Produce json
// @Param id path int true "Learning path ID"
// @Success 200 {object} dto.LearningPathDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Learning path not found"
// @Router /learning-paths/{id} [get]
func (c *LearningPathController) GetLearningPath(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	path, err := c.learningPathService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, path)
}

// CreateLearningPath creates a path with optional initial steps
// @Summary Create learning path
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLearningPathRequest true "Learning path"
// @Success 201 {object} dto.LearningPathDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Professionals cannot create learning paths"
// @Router /learning-paths [post]
func (c *LearningPathController) CreateLearningPath(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateLearningPathRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	path, err := c.learningPathService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("pathID", path.ID).Int("steps", len(path.Steps)).Msg("Learning path created")
	ctx.JSON(http.StatusCreated, path)
}

// AddStep appends a step to a path the caller created
// @Summary Add learning path step
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Learning path ID"
// @Param request body dto.CreateStepRequest true "Step"
// @Success 201 {object} models.LearningPathStep
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Learning path not found"
// @Router /learning-paths/{id}/steps [post]
func (c *LearningPathController) AddStep(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateStepRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	step, err := c.learningPathService.AddStep(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, step)
}

// GetProgress returns the caller's progress on a path
// @Summary Learning progress
// @Tags learning-paths
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param pathId path int true "Learning path ID"
// @Success 200 {object} dto.LearningProgressResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not your progress"
// @Failure 404 {object} dto.ErrorResponse "Learning path not found"
// @Router /users/{id}/learning-progress/{pathId} [get]
func (c *LearningPathController) GetProgress(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	pathIDValue, ok := pathID(ctx, "pathId")
	if !ok {
		return
	}

	progress, err := c.learningPathService.GetProgress(ctx.Request.Context(), actorID, userID, pathIDValue)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// UpdateStepProgress records progress on one step. The first call for a step
// answers 201, later calls update the same row and answer 200.
// @Summary Update step progress
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param pathId path int true "Learning path ID"
// @Param stepId path int true "Step ID"
// @Param request body dto.UpdateProgressRequest false "Progress"
// @Success 200 {object} models.UserLearningProgress "Updated"
// @Success 201 {object} models.UserLearningProgress "Created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not your progress"
// @Failure 404 {object} dto.ErrorResponse "Path or step not found"
// @Router /users/{id}/learning-progress/{pathId}/steps/{stepId} [post]
func (c *LearningPathController) UpdateStepProgress(ctx *gin.Context) {
	actorID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	pathIDValue, ok := pathID(ctx, "pathId")
	if !ok {
		return
	}
	stepID, ok := pathID(ctx, "stepId")
	if !ok {
		return
	}

	// an empty body, sized or chunked, means completed=false
	var req dto.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(ctx, err)
		return
	}

	progress, created, err := c.learningPathService.UpsertProgress(ctx.Request.Context(), actorID, userID, pathIDValue, stepID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, progress)
}
