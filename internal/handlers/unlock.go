package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
)

type UnlockHandler struct {
	service *services.ProjectService
	log     *zap.Logger
}

func NewUnlockHandler(service *services.ProjectService, log *zap.Logger) *UnlockHandler {
	return &UnlockHandler{
		service: service,
		log:     log,
	}
}

// Unlock godoc
// @Summary     Verify a payment reference and unlock the original
// @Description Verifies the reference with the configured payment provider and returns a time-limited signed download URL.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Router      /unlock [post]
func (h *UnlockHandler) Unlock(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	var req models.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid payload",
			Message: err.Error(),
		})
		return
	}

	downloadURL, err := h.service.Unlock(c.Request.Context(), userID, req.ResourceID, req.Reference)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, models.UnlockResponse{DownloadURL: downloadURL})
}
