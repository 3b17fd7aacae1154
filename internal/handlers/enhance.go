package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
)

type EnhanceHandler struct {
	service *services.ProjectService
	log     *zap.Logger
}

func NewEnhanceHandler(service *services.ProjectService, log *zap.Logger) *EnhanceHandler {
	return &EnhanceHandler{
		service: service,
		log:     log,
	}
}

// Enhance godoc
// @Summary     Analyze and enhance an uploaded photo
// @Description Runs vision analysis and AI enhancement, stores the original and a watermarked preview, and creates a locked project.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Router      /enhance [post]
func (h *EnhanceHandler) Enhance(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	var req models.EnhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid payload",
			Message: err.Error(),
		})
		return
	}

	project, err := h.service.Enhance(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, models.EnhanceResponse{
		ProjectID:  project.ID.String(),
		PreviewURL: project.PreviewURL,
		Vision:     project.Vision,
	})
}
