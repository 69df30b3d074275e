package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/services"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
)

// ConnectionController handles connection requests between users
type ConnectionController struct {
	connectionService services.ConnectionService
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionService services.ConnectionService) *ConnectionController {
	return &ConnectionController{connectionService: connectionService}
}

// ListConnections lists the caller's connections with the other party embedded
// @Summary List connections
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ConnectionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /connections [get]
func (c *ConnectionController) ListConnections(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	connections, err := c.connectionService.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, connections)
}

// CreateConnection sends a connection request
// @Summary Request connection
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConnectionRequest true "Receiver"
// @Success 201 {object} models.Connection
// @Failure 400 {object} dto.ErrorResponse "Invalid request or already connected"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Router /connections [post]
func (c *ConnectionController) CreateConnection(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateConnectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	connection, err := c.connectionService.Request(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, connection)
}

// UpdateConnection accepts or rejects a connection
// @Summary Update connection status
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Param request body dto.UpdateConnectionRequest true "accepted or rejected"
// @Success 200 {object} models.Connection
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Connection not found"
// @Router /connections/{id} [put]
func (c *ConnectionController) UpdateConnection(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateConnectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	connection, err := c.connectionService.UpdateStatus(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, connection)
}
