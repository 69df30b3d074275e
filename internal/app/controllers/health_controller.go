package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
)

// Health reports that the API is up
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Time: time.Now().UTC()})
}
