package ingest

import (
	"context"
	"fmt"

	"toolhub/internal/models"
	"toolhub/internal/repository"
)

// stubRepo is an in-memory ToolRepository with the same dedup surface as
// the real table: one row, reachable through its source_id key and its
// name+source key, so an upsert reconciles whichever key it collides on.
type stubRepo struct {
	rows         []*models.Tool
	index        map[string]*models.Tool
	syncStates   map[string]*models.SyncState
	sourceStates map[string]*models.SourceState

	// failNames makes UpsertTool fail for tools with these names.
	failNames map[string]bool

	upsertCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		index:        map[string]*models.Tool{},
		syncStates:   map[string]*models.SyncState{},
		sourceStates: map[string]*models.SourceState{},
		failNames:    map[string]bool{},
	}
}

func toolKeys(tool *models.Tool) []string {
	keys := []string{"nm:" + tool.Name + "|" + tool.Source}
	if tool.SourceID != nil && *tool.SourceID != "" {
		keys = append([]string{"sid:" + *tool.SourceID}, keys...)
	}
	return keys
}

func (r *stubRepo) UpsertTool(_ context.Context, tool *models.Tool) (bool, error) {
	r.upsertCalls++
	if r.failNames[tool.Name] {
		return false, fmt.Errorf("store down")
	}
	keys := toolKeys(tool)
	for _, k := range keys {
		if existing, ok := r.index[k]; ok {
			existing.Tagline = tool.Tagline
			existing.Votes = tool.Votes
			existing.UpdatedAt = tool.UpdatedAt
			return false, nil
		}
	}
	cp := *tool
	r.rows = append(r.rows, &cp)
	for _, k := range keys {
		r.index[k] = &cp
	}
	return true, nil
}

func (r *stubRepo) ListTools(_ context.Context, _ repository.ListToolsParams) ([]models.Tool, error) {
	out := make([]models.Tool, 0, len(r.rows))
	for _, t := range r.rows {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubRepo) CountTools(_ context.Context, _ repository.ListToolsParams) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *stubRepo) TrendingTools(_ context.Context, _ int) ([]models.Tool, error) {
	return nil, nil
}

func (r *stubRepo) CountByCategory(_ context.Context) ([]repository.CategoryCount, error) {
	return nil, nil
}

func (r *stubRepo) CountBySource(_ context.Context) ([]repository.SourceCount, error) {
	return nil, nil
}

func (r *stubRepo) Stats(_ context.Context) (repository.Stats, error) {
	return repository.Stats{TotalTools: int64(len(r.rows))}, nil
}

func (r *stubRepo) GetSyncState(_ context.Context, scope string) (*models.SyncState, error) {
	return r.syncStates[scope], nil
}

func (r *stubRepo) SaveSyncState(_ context.Context, state *models.SyncState) error {
	cp := *state
	r.syncStates[state.Scope] = &cp
	return nil
}

func (r *stubRepo) UpsertSourceState(_ context.Context, item *models.SourceState) error {
	cp := *item
	r.sourceStates[item.Name] = &cp
	return nil
}

func (r *stubRepo) ListSourceStates(_ context.Context) ([]models.SourceState, error) {
	out := make([]models.SourceState, 0, len(r.sourceStates))
	for _, s := range r.sourceStates {
		out = append(out, *s)
	}
	return out, nil
}
