package repository

import (
	"context"
	"time"

	"toolhub/internal/models"
)

// ToolRepository is the catalog store: atomic upserts for the sync pipeline
// and paged/filtered reads for the API.
type ToolRepository interface {
	// UpsertTool inserts the tool if no row exists under its dedup key
	// (source_id when set, otherwise name+source) and reports whether a
	// fresh insert happened. When the row already exists, mutable fields
	// are refreshed and updated_at is bumped.
	UpsertTool(ctx context.Context, tool *models.Tool) (inserted bool, err error)

	ListTools(ctx context.Context, params ListToolsParams) ([]models.Tool, error)
	CountTools(ctx context.Context, params ListToolsParams) (int64, error)
	TrendingTools(ctx context.Context, limit int) ([]models.Tool, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountBySource(ctx context.Context) ([]SourceCount, error)
	Stats(ctx context.Context) (Stats, error)

	GetSyncState(ctx context.Context, scope string) (*models.SyncState, error)
	SaveSyncState(ctx context.Context, state *models.SyncState) error
	UpsertSourceState(ctx context.Context, item *models.SourceState) error
	ListSourceStates(ctx context.Context) ([]models.SourceState, error)
}

type ListToolsParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Source   string
	Sort     string
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type Stats struct {
	TotalTools       int64      `json:"total_tools"`
	TotalVotes       int64      `json:"total_votes"`
	Categories       int64      `json:"categories"`
	Sources          int64      `json:"sources"`
	LatestFeaturedAt *time.Time `json:"latest_featured_at,omitempty"`
}
