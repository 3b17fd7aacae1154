package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aya-mash/image-enhancer-ai-saas-starter-kit/internal/models"
)

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
