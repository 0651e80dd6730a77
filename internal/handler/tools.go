package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toolhub/internal/client/producthunt"
	"toolhub/internal/ingest"
	"toolhub/internal/models"
	"toolhub/internal/repository"
	"toolhub/internal/scraper"
)

// maxPageLimit mirrors the store's clamp so the pagination meta reflects
// the page size actually served.
const maxPageLimit = 100

type ToolsHandler struct {
	Repo   repository.ToolRepository
	Sync   *ingest.SyncService
	Logger *zap.Logger
}

func (h *ToolsHandler) Register(r *gin.Engine) {
	group := r.Group("/ai-tools")
	group.GET("", h.listTools)
	group.POST("/sync", h.syncProductHunt)
	group.POST("/sync-aitools", h.syncScraped)
	group.POST("/sync-all", h.syncAll)
	group.GET("/trending", h.trending)
	group.GET("/categories", h.categories)
	group.GET("/stats", h.stats)
}

// @Summary List AI tools
// @Tags tools
// @Param page query int false "page (1-based)"
// @Param limit query int false "page size"
// @Param search query string false "substring across name/tagline/description"
// @Param category query string false "category filter"
// @Param source query string false "source filter"
// @Param sort query string false "votes|name|rating|featured"
// @Success 200 {object} map[string]any
// @Router /ai-tools [get]
func (h *ToolsHandler) listTools(c *gin.Context) {
	params := repository.ListToolsParams{
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 20),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Source:   c.Query("source"),
		Sort:     c.Query("sort"),
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > maxPageLimit {
		params.Limit = maxPageLimit
	}

	tools, err := h.Repo.ListTools(c.Request.Context(), params)
	if err != nil {
		h.fail(c, "list tools failed", err)
		return
	}
	total, err := h.Repo.CountTools(c.Request.Context(), params)
	if err != nil {
		h.fail(c, "count tools failed", err)
		return
	}
	if tools == nil {
		tools = []models.Tool{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tools":      tools,
		"pagination": paginationMeta(params.Page, params.Limit, total),
	})
}

// @Summary Sync tools from Product Hunt
// @Tags tools
// @Success 200 {object} map[string]any
// @Router /ai-tools/sync [post]
func (h *ToolsHandler) syncProductHunt(c *gin.Context) {
	result, err := h.Sync.SyncProductHunt(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("product hunt sync failed", zap.Error(err))
		}
		c.JSON(sourceErrorStatus(err), gin.H{"message": err.Error()})
		return
	}
	h.syncResponse(c, "Product Hunt sync complete", result)
}

// @Summary Sync tools from scrape targets
// @Tags tools
// @Success 200 {object} map[string]any
// @Router /ai-tools/sync-aitools [post]
func (h *ToolsHandler) syncScraped(c *gin.Context) {
	result, err := h.Sync.SyncScrapedSites(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("scrape sync failed", zap.Error(err))
		}
		c.JSON(sourceErrorStatus(err), gin.H{"message": err.Error()})
		return
	}
	h.syncResponse(c, "Scrape sync complete", result)
}

// @Summary Sync tools from all sources
// @Tags tools
// @Success 200 {object} map[string]any
// @Router /ai-tools/sync-all [post]
func (h *ToolsHandler) syncAll(c *gin.Context) {
	result, err := h.Sync.SyncAll(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("sync all failed", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	h.syncResponse(c, "Sync complete", result)
}

// @Summary Trending tools by votes
// @Tags tools
// @Param limit query int false "limit"
// @Success 200 {object} map[string]any
// @Router /ai-tools/trending [get]
func (h *ToolsHandler) trending(c *gin.Context) {
	limit := intQuery(c, "limit", 10)
	tools, err := h.Repo.TrendingTools(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, "trending tools failed", err)
		return
	}
	if tools == nil {
		tools = []models.Tool{}
	}
	c.JSON(http.StatusOK, gin.H{"tools": tools})
}

// @Summary Tool counts by category
// @Tags tools
// @Success 200 {object} map[string]any
// @Router /ai-tools/categories [get]
func (h *ToolsHandler) categories(c *gin.Context) {
	rows, err := h.Repo.CountByCategory(c.Request.Context())
	if err != nil {
		h.fail(c, "count by category failed", err)
		return
	}
	if rows == nil {
		rows = []repository.CategoryCount{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

// @Summary Catalog statistics
// @Tags tools
// @Success 200 {object} map[string]any
// @Router /ai-tools/stats [get]
func (h *ToolsHandler) stats(c *gin.Context) {
	stats, err := h.Repo.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "stats failed", err)
		return
	}
	byCategory, err := h.Repo.CountByCategory(c.Request.Context())
	if err != nil {
		h.fail(c, "stats failed", err)
		return
	}
	bySource, err := h.Repo.CountBySource(c.Request.Context())
	if err != nil {
		h.fail(c, "stats failed", err)
		return
	}
	sources, err := h.Repo.ListSourceStates(c.Request.Context())
	if err != nil {
		h.fail(c, "stats failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":       stats,
		"by_category": byCategory,
		"by_source":   bySource,
		"sources":     sources,
	})
}

func (h *ToolsHandler) syncResponse(c *gin.Context, message string, result ingest.Result) {
	body := gin.H{
		"message":     message,
		"synced":      result.Inserted,
		"total_found": result.Candidates,
	}
	if len(result.Errors) > 0 {
		body["errors"] = result.Errors
	}
	c.JSON(http.StatusOK, body)
}

func (h *ToolsHandler) fail(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Warn(msg, zap.Error(err))
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": fmt.Sprintf("%s: %v", msg, err)})
}

// sourceErrorStatus maps a whole-source failure to an HTTP status: upstream
// trouble is a gateway problem, anything else is internal.
func sourceErrorStatus(err error) int {
	switch {
	case errors.Is(err, producthunt.ErrUnavailable),
		errors.Is(err, producthunt.ErrProtocol),
		errors.Is(err, scraper.ErrUnavailable),
		errors.Is(err, scraper.ErrNoRecords):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func paginationMeta(page, limit int, total int64) gin.H {
	return gin.H{
		"page":    page,
		"limit":   limit,
		"total":   total,
		"hasMore": int64(page*limit) < total,
	}
}
