package handler

import (
	"context"
	"time"

	"toolhub/internal/models"
	"toolhub/internal/repository"
)

// stubRepo returns canned data and records the params it was called with.
type stubRepo struct {
	tools      []models.Tool
	trending   []models.Tool
	byCategory []repository.CategoryCount
	bySource   []repository.SourceCount
	stats      repository.Stats
	sources    []models.SourceState

	listErr    error
	lastParams repository.ListToolsParams
}

func (r *stubRepo) UpsertTool(_ context.Context, tool *models.Tool) (bool, error) {
	r.tools = append(r.tools, *tool)
	return true, nil
}

func (r *stubRepo) ListTools(_ context.Context, params repository.ListToolsParams) ([]models.Tool, error) {
	r.lastParams = params
	if r.listErr != nil {
		return nil, r.listErr
	}
	return pageOf(r.tools, params.Page, params.Limit), nil
}

func (r *stubRepo) CountTools(_ context.Context, _ repository.ListToolsParams) (int64, error) {
	return int64(len(r.tools)), nil
}

func (r *stubRepo) TrendingTools(_ context.Context, limit int) ([]models.Tool, error) {
	if limit < len(r.trending) {
		return r.trending[:limit], nil
	}
	return r.trending, nil
}

func (r *stubRepo) CountByCategory(_ context.Context) ([]repository.CategoryCount, error) {
	return r.byCategory, nil
}

func (r *stubRepo) CountBySource(_ context.Context) ([]repository.SourceCount, error) {
	return r.bySource, nil
}

func (r *stubRepo) Stats(_ context.Context) (repository.Stats, error) {
	return r.stats, nil
}

func (r *stubRepo) GetSyncState(_ context.Context, _ string) (*models.SyncState, error) {
	return nil, nil
}

func (r *stubRepo) SaveSyncState(_ context.Context, _ *models.SyncState) error {
	return nil
}

func (r *stubRepo) UpsertSourceState(_ context.Context, _ *models.SourceState) error {
	return nil
}

func (r *stubRepo) ListSourceStates(_ context.Context) ([]models.SourceState, error) {
	return r.sources, nil
}

func pageOf(tools []models.Tool, page, limit int) []models.Tool {
	start := (page - 1) * limit
	if start >= len(tools) {
		return nil
	}
	end := start + limit
	if end > len(tools) {
		end = len(tools)
	}
	return tools[start:end]
}

func makeTools(n int) []models.Tool {
	now := time.Now().UTC()
	out := make([]models.Tool, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Tool{
			ID:        "id-" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Name:      "Tool " + string(rune('A'+i%26)),
			Source:    "Product Hunt",
			Category:  "General",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}
