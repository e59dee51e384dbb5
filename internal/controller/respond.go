// Package controller holds the HTTP error mapping shared by the admin and
// user controller packages.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sooraj-Rao/quiz-builder/internal/apperr"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
)

// WriteError translates a service error into the matching HTTP status and
// error payload.
func WriteError(ctx *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: ve.Error(), Fields: ve.Fields})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrTestNotFound),
		errors.Is(err, apperr.ErrUserNotFound),
		errors.Is(err, apperr.ErrAttemptNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrAlreadyAttempted),
		errors.Is(err, apperr.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrEmailRegistered),
		errors.Is(err, apperr.ErrTestCodeExists):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Server error"})
	}
}
