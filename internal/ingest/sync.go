package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"toolhub/internal/client/producthunt"
	"toolhub/internal/classifier"
	"toolhub/internal/config"
	"toolhub/internal/models"
	"toolhub/internal/repository"
	"toolhub/internal/scraper"
)

// PostSource is the Product Hunt surface the orchestrator depends on.
type PostSource interface {
	Posts(ctx context.Context, first int, after string) (producthunt.Page, error)
}

// PageScraper is the scraping surface the orchestrator depends on.
type PageScraper interface {
	Scrape(ctx context.Context, target config.ScrapeTarget) ([]scraper.Record, error)
}

// SourceError records one isolated failure inside a sync run: either a
// whole source that could not be reached or a single record that could not
// be stored.
type SourceError struct {
	Source string `json:"source"`
	Record string `json:"record,omitempty"`
	Error  string `json:"error"`
}

// Result aggregates one sync run. Inserted counts fresh inserts only;
// reconciling updates of existing rows are not counted.
type Result struct {
	Inserted   int           `json:"inserted"`
	Candidates int           `json:"candidates"`
	Errors     []SourceError `json:"errors,omitempty"`
}

// SyncService drives source clients, applies the classifier and
// transformer, and reconciles results into the store.
type SyncService struct {
	Repo       repository.ToolRepository
	Posts      PostSource
	Scraper    PageScraper
	Targets    []config.ScrapeTarget
	Classifier *classifier.Classifier
	PageSize   int
	Logger     *zap.Logger
}

// SyncProductHunt runs one bounded Product Hunt cycle: one page of posts,
// resuming from the stored cursor. A fetch failure is fatal for this
// source; store failures on individual records are collected and skipped.
func (s *SyncService) SyncProductHunt(ctx context.Context) (Result, error) {
	if s.Posts == nil {
		return Result{}, fmt.Errorf("product hunt client is nil")
	}
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	after := ""
	state, err := s.Repo.GetSyncState(ctx, "producthunt")
	if err != nil {
		return Result{}, err
	}
	if state != nil && state.Cursor != nil {
		after = *state.Cursor
	}

	now := time.Now().UTC()
	page, err := s.Posts.Posts(ctx, pageSize, after)
	if err != nil {
		s.writeSyncError(ctx, "producthunt", now, err)
		s.writeSourceState(ctx, SourceProductHunt, "api", now, err)
		return Result{}, err
	}

	result := Result{}
	for _, post := range page.Posts {
		if !s.Classifier.IsAITool(post.Name, post.Tagline, post.Description, post.Topics) {
			continue
		}
		result.Candidates++
		tool := FromPost(post, now)
		inserted, err := s.Repo.UpsertTool(ctx, &tool)
		if err != nil {
			result.Errors = append(result.Errors, SourceError{
				Source: SourceProductHunt,
				Record: post.Name,
				Error:  err.Error(),
			})
			if s.Logger != nil {
				s.Logger.Warn("upsert tool failed",
					zap.String("source", SourceProductHunt),
					zap.String("name", post.Name),
					zap.Error(err),
				)
			}
			continue
		}
		if inserted {
			result.Inserted++
		}
	}

	cursor := ""
	if page.HasNextPage {
		cursor = page.EndCursor
	}
	s.saveSyncState(ctx, "producthunt", cursor, now, result)
	s.writeSourceState(ctx, SourceProductHunt, "api", now, nil)

	return result, nil
}

// SyncScrapedSites runs one cycle over every configured scrape target. One
// target's failure never aborts the remaining targets.
func (s *SyncService) SyncScrapedSites(ctx context.Context) (Result, error) {
	if s.Scraper == nil {
		return Result{}, fmt.Errorf("scraper is nil")
	}

	now := time.Now().UTC()
	result := Result{}
	reached := 0
	for _, target := range s.Targets {
		records, err := s.Scraper.Scrape(ctx, target)
		if err != nil {
			result.Errors = append(result.Errors, SourceError{
				Source: target.Name,
				Error:  err.Error(),
			})
			s.writeSourceState(ctx, target.Name, "scrape", now, err)
			if s.Logger != nil {
				s.Logger.Warn("scrape failed",
					zap.String("target", target.Name),
					zap.String("url", target.URL),
					zap.Error(err),
				)
			}
			continue
		}
		reached++

		for _, rec := range records {
			if !s.Classifier.IsAITool(rec.Name, "", rec.Description, nil) {
				continue
			}
			result.Candidates++
			tool := FromScraped(rec, now)
			inserted, err := s.Repo.UpsertTool(ctx, &tool)
			if err != nil {
				result.Errors = append(result.Errors, SourceError{
					Source: target.Name,
					Record: rec.Name,
					Error:  err.Error(),
				})
				continue
			}
			if inserted {
				result.Inserted++
			}
		}
		s.writeSourceState(ctx, target.Name, "scrape", now, nil)
	}

	// LastSuccessAt only moves when at least one target was scraped.
	if len(s.Targets) > 0 && reached == 0 {
		s.writeSyncError(ctx, "scraper", now, fmt.Errorf("all %d scrape targets failed", len(s.Targets)))
	} else {
		s.saveSyncState(ctx, "scraper", "", now, result)
	}
	return result, nil
}

// SyncAll runs every source's full cycle independently. One source's total
// failure is reported in the error list and does not prevent the others
// from running.
func (s *SyncService) SyncAll(ctx context.Context) (Result, error) {
	result := Result{}

	if s.Posts != nil {
		phResult, err := s.SyncProductHunt(ctx)
		result.Inserted += phResult.Inserted
		result.Candidates += phResult.Candidates
		result.Errors = append(result.Errors, phResult.Errors...)
		if err != nil {
			result.Errors = append(result.Errors, SourceError{
				Source: SourceProductHunt,
				Error:  err.Error(),
			})
		}
	}

	if s.Scraper != nil {
		scrapeResult, err := s.SyncScrapedSites(ctx)
		result.Inserted += scrapeResult.Inserted
		result.Candidates += scrapeResult.Candidates
		result.Errors = append(result.Errors, scrapeResult.Errors...)
		if err != nil {
			result.Errors = append(result.Errors, SourceError{
				Source: "scraper",
				Error:  err.Error(),
			})
		}
	}

	return result, nil
}

func (s *SyncService) saveSyncState(ctx context.Context, scope, cursor string, now time.Time, result Result) {
	state := &models.SyncState{
		Scope:         scope,
		LastAttemptAt: &now,
		LastSuccessAt: &now,
		StatsJSON: mustJSON(map[string]int{
			"inserted":   result.Inserted,
			"candidates": result.Candidates,
			"errors":     len(result.Errors),
		}),
	}
	if cursor != "" {
		state.Cursor = &cursor
	}
	if err := s.Repo.SaveSyncState(ctx, state); err != nil && s.Logger != nil {
		s.Logger.Warn("save sync state failed", zap.String("scope", scope), zap.Error(err))
	}
}

func (s *SyncService) writeSyncError(ctx context.Context, scope string, now time.Time, cause error) {
	msg := cause.Error()
	state := &models.SyncState{
		Scope:         scope,
		LastAttemptAt: &now,
		LastError:     &msg,
	}
	if prev, err := s.Repo.GetSyncState(ctx, scope); err == nil && prev != nil {
		state.Cursor = prev.Cursor
		state.LastSuccessAt = prev.LastSuccessAt
	}
	if err := s.Repo.SaveSyncState(ctx, state); err != nil && s.Logger != nil {
		s.Logger.Warn("save sync state failed", zap.String("scope", scope), zap.Error(err))
	}
}

func (s *SyncService) writeSourceState(ctx context.Context, name, sourceType string, now time.Time, cause error) {
	item := &models.SourceState{
		Name:         name,
		SourceType:   sourceType,
		Enabled:      true,
		LastSyncAt:   &now,
		HealthStatus: "ok",
	}
	if cause != nil {
		msg := cause.Error()
		item.LastError = &msg
		item.HealthStatus = "error"
	}
	if err := s.Repo.UpsertSourceState(ctx, item); err != nil && s.Logger != nil {
		s.Logger.Warn("save source state failed", zap.String("source", name), zap.Error(err))
	}
}
