package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toolhub/internal/models"
	"toolhub/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertTool(ctx context.Context, tool *models.Tool) (bool, error) {
	if s == nil || s.db == nil || tool == nil {
		return false, nil
	}

	// DO NOTHING without a column list: the insert is a no-op whichever
	// unique index it collides with, so concurrent syncs cannot
	// double-insert.
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(tool)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	updates := map[string]any{
		"tagline":     tool.Tagline,
		"description": tool.Description,
		"votes":       tool.Votes,
		"url":         tool.URL,
		"website":     tool.Website,
		"category":    tool.Category,
		"rating":      tool.Rating,
		"topics":      tool.Topics,
		"featured_at": tool.FeaturedAt,
		"raw_json":    tool.RawJSON,
		"updated_at":  time.Now().UTC(),
	}

	if tool.SourceID != nil && *tool.SourceID != "" {
		// name can change upstream for the same source_id.
		updates["name"] = tool.Name
		res := s.db.WithContext(ctx).Model(&models.Tool{}).
			Where("source_id = ?", *tool.SourceID).
			Updates(updates)
		if res.Error != nil {
			return false, res.Error
		}
		if res.RowsAffected > 0 {
			return false, nil
		}
		// The insert no-opped but no row carries this source_id: the
		// conflict was on (name, source). Reconcile that row instead of
		// dropping the record.
		delete(updates, "name")
	}
	return false, s.db.WithContext(ctx).Model(&models.Tool{}).
		Where("name = ? AND source = ?", tool.Name, tool.Source).
		Updates(updates).Error
}

func (s *Store) ListTools(ctx context.Context, params repository.ListToolsParams) ([]models.Tool, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyToolFilters(s.db.WithContext(ctx).Model(&models.Tool{}), params)
	query = query.Order(orderClause(params.Sort))

	limit := normalizeLimit(params.Limit, 20)
	offset := pageOffset(params.Page, limit)

	var items []models.Tool
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTools(ctx context.Context, params repository.ListToolsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	query := applyToolFilters(s.db.WithContext(ctx).Model(&models.Tool{}), params)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) TrendingTools(ctx context.Context, limit int) ([]models.Tool, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit = normalizeLimit(limit, 10)
	var items []models.Tool
	if err := s.db.WithContext(ctx).
		Model(&models.Tool{}).
		Order("votes desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.CategoryCount
	if err := s.db.WithContext(ctx).
		Model(&models.Tool{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) CountBySource(ctx context.Context) ([]repository.SourceCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.SourceCount
	if err := s.db.WithContext(ctx).
		Model(&models.Tool{}).
		Select("source, COUNT(*) AS count").
		Group("source").
		Order("count desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) Stats(ctx context.Context) (repository.Stats, error) {
	if s == nil || s.db == nil {
		return repository.Stats{}, nil
	}
	var row struct {
		TotalTools       int64
		TotalVotes       int64
		Categories       int64
		Sources          int64
		LatestFeaturedAt *time.Time
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Tool{}).
		Select(`
			COUNT(*) AS total_tools,
			COALESCE(SUM(votes),0) AS total_votes,
			COUNT(DISTINCT category) AS categories,
			COUNT(DISTINCT source) AS sources,
			MAX(featured_at) AS latest_featured_at
		`).
		Scan(&row).Error; err != nil {
		return repository.Stats{}, err
	}
	return repository.Stats{
		TotalTools:       row.TotalTools,
		TotalVotes:       row.TotalVotes,
		Categories:       row.Categories,
		Sources:          row.Sources,
		LatestFeaturedAt: row.LatestFeaturedAt,
	}, nil
}

func (s *Store) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var state models.SyncState
	err := s.db.WithContext(ctx).
		Where("scope = ?", scope).
		First(&state).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	if s == nil || s.db == nil || state == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cursor",
			"last_success_at",
			"last_attempt_at",
			"last_error",
			"stats_json",
		}),
	}).Create(state).Error
}

func (s *Store) UpsertSourceState(ctx context.Context, item *models.SourceState) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source_type",
			"endpoint",
			"enabled",
			"last_sync_at",
			"last_error",
			"health_status",
			"config",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListSourceStates(ctx context.Context) ([]models.SourceState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SourceState
	if err := s.db.WithContext(ctx).
		Model(&models.SourceState{}).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func applyToolFilters(query *gorm.DB, params repository.ListToolsParams) *gorm.DB {
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR tagline ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if category := strings.TrimSpace(params.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if source := strings.TrimSpace(params.Source); source != "" {
		query = query.Where("source = ?", source)
	}
	return query
}

func orderClause(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "votes":
		return "votes desc"
	case "name":
		return "name asc"
	case "rating":
		return "rating desc"
	default:
		return "featured_at desc NULLS LAST"
	}
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func pageOffset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}
