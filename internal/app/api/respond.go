package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/domain"
	"product-catalog/internal/shared/logger"
)

// respondError converts a service error into the structured `{"error": msg}`
// response. Client errors (400/401/403/404) carry their own message; anything
// else is a dependency failure and maps to 500 with the endpoint's fallback
// message, logged with context. Nothing escapes the handler boundary uncaught.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	ctx := c.Request.Context()

	var (
		validationErr *domain.ValidationError
		authnErr      *domain.AuthenticationError
		authzErr      *domain.AuthorizationError
		notFoundErr   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Debug(ctx, "validation_failed", validationErr.Msg, nil)
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &authnErr):
		log.Debug(ctx, "authentication_failed", authnErr.Msg, nil)
		c.JSON(http.StatusUnauthorized, gin.H{"error": authnErr.Msg})
	case errors.As(err, &authzErr):
		log.Debug(ctx, "authorization_failed", authzErr.Msg, nil)
		c.JSON(http.StatusForbidden, gin.H{"error": authzErr.Msg})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Msg})
	default:
		log.Error(ctx, "request_failed", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
