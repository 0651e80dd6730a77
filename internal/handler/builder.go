package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toolhub/internal/sitebuilder"
)

type BuilderHandler struct {
	Builder *sitebuilder.Builder
	Logger  *zap.Logger
}

func (h *BuilderHandler) Register(r *gin.Engine) {
	r.POST("/website-builder", h.generate)
}

type generateRequest struct {
	Description string `json:"description"`
}

// @Summary Generate a single-page website
// @Tags builder
// @Success 200 {object} map[string]any
// @Router /website-builder [post]
func (h *BuilderHandler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "description is required"})
		return
	}

	component, html, err := h.Builder.Generate(c.Request.Context(), req.Description)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("website generation failed", zap.Error(err))
		}
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"component": component,
		"html":      html,
	})
}
