package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/services"
)

type ProjectsHandler struct {
	service *services.ProjectService
	log     *zap.Logger
}

func NewProjectsHandler(service *services.ProjectService, log *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		service: service,
		log:     log,
	}
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	projects, err := h.service.ListProjects(userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = models.FromProject(&projects[i])
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}

	project, err := h.service.GetProject(userID, c.Param("project_id"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, models.FromProject(project))
}
