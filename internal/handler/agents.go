package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toolhub/internal/agent"
)

type AgentsHandler struct {
	Runner *agent.Runner
	Logger *zap.Logger
}

func (h *AgentsHandler) Register(r *gin.Engine) {
	group := r.Group("/agents")
	group.GET("", h.listAgents)
	group.POST("/:id", h.runAgent)
}

// @Summary List available agents
// @Tags agents
// @Success 200 {object} map[string]any
// @Router /agents [get]
func (h *AgentsHandler) listAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": agent.List()})
}

type runAgentRequest struct {
	Inputs map[string]string `json:"inputs"`
}

// @Summary Run an agent
// @Tags agents
// @Param id path string true "agent id"
// @Success 200 {object} map[string]any
// @Router /agents/{id} [post]
func (h *AgentsHandler) runAgent(c *gin.Context) {
	var req runAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	id := c.Param("id")
	output, err := h.Runner.Run(c.Request.Context(), id, req.Inputs)
	if err != nil {
		var missing *agent.MissingInputError
		switch {
		case errors.Is(err, agent.ErrUnknownAgent):
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		case errors.As(err, &missing):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "missing": missing.Missing})
		default:
			if h.Logger != nil {
				h.Logger.Warn("agent run failed", zap.String("agent", id), zap.Error(err))
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"agent": id, "output": output})
}
