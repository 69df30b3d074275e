package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/znurfzh/ethic-sub000/internal/middleware"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// requireUserID returns the authenticated user id, answering 401 when there is none
func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Authentication required"))
		return 0, false
	}
	return userID, true
}

// pathID parses a positive id path parameter, answering 400 when it is malformed
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := helpers.ParseIDParam(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return id, true
}
