package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWithError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err, "Resource not found"), err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, dto.ErrorCodeForbidden, apperrors.MessageOf(err, "Permission denied"), err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, apperrors.MessageOf(err, "Invalid credentials"), err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, apperrors.MessageOf(err, "Authentication required"), err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Validation failed"), err)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, apperrors.MessageOf(err, "Email already exists"), err)
	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, apperrors.MessageOf(err, "Username already exists"), err)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, apperrors.MessageOf(err, "Resource already exists"), err)
	case errors.Is(err, apperrors.ErrConflict):
		// duplicates answer 400, not 409; clients already rely on it
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeConflict, apperrors.MessageOf(err, "Conflict"), err)
	case errors.Is(err, apperrors.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, apperrors.MessageOf(err, "Bad request"), err)
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// HandleValidationError writes a 400 for a failed bind. Validator errors carry one
// entry per offending field.
func HandleValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]dto.FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			fields = append(fields, dto.FieldError{
				Field:   e.Field(),
				Message: formatValidationError(e),
			})
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if len(fields) == 1 {
			errorDetail = errorDetail.WithField(fields[0].Field)
		}
		errorDetail = errorDetail.WithDetails(fields)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	message := "Invalid request body"
	switch {
	case errors.Is(err, io.EOF):
		message = "Request body is required"
	case errors.As(err, &typeErr):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).
			WithField(typeErr.Field).
			WithDetails(typeErr.Field + " has the wrong type")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	case errors.As(err, &syntaxErr):
		message = "Malformed JSON"
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func abortWithError(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	errorDetail := dto.NewErrorDetail(code, message)
	if details := apperrors.DetailsOf(err); details != nil {
		errorDetail = errorDetail.WithDetails(details)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(errorDetail))
}
