package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/middleware"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/payments"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
)

// ownerID extracts the authenticated user id set by the auth middleware.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	return userID, true
}

// respondServiceError translates pipeline errors into their HTTP kinds.
// Expected caller outcomes keep their specific kind; everything else is a
// generic internal error with the detail kept out of the response.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidImage), errors.Is(err, services.ErrUnknownStyle):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
	case errors.Is(err, services.ErrPaymentDeclined):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "payment verification failed"})
	case errors.Is(err, models.ErrProjectAlreadyUnlocked):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "project already unlocked"})
	case errors.Is(err, payments.ErrMissingSecret):
		c.JSON(http.StatusPreconditionFailed, models.ErrorResponse{Error: "payment verification is not configured"})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "processing failed, please try again",
		})
	}
}
