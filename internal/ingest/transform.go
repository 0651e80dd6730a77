package ingest

import (
	"encoding/json"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"toolhub/internal/client/producthunt"
	"toolhub/internal/models"
	"toolhub/internal/scraper"
)

// SourceProductHunt is the provenance label for API-sourced tools. Scraped
// tools carry their target name instead.
const SourceProductHunt = "Product Hunt"

const defaultCategory = "General"

// FromPost maps one Product Hunt post to a canonical Tool document.
// Pure aside from id generation; never consults the store.
func FromPost(post producthunt.Post, now time.Time) models.Tool {
	tool := models.Tool{
		ID:          uuid.NewString(),
		SourceID:    strPtr(post.ID),
		Name:        post.Name,
		Source:      SourceProductHunt,
		Tagline:     post.Tagline,
		Description: post.Description,
		Votes:       post.VotesCount,
		URL:         strPtr(post.URL),
		Website:     strPtr(post.Website),
		Category:    defaultCategory,
		Rating:      syntheticRating(post.Name),
		Topics:      mustJSON(post.Topics),
		CreatedAt:   now,
		UpdatedAt:   now,
		RawJSON:     mustJSON(post),
	}
	if !post.CreatedAt.IsZero() {
		featured := post.CreatedAt
		tool.FeaturedAt = &featured
	}
	return tool
}

// FromScraped maps one scraped record to a canonical Tool document.
func FromScraped(rec scraper.Record, now time.Time) models.Tool {
	return models.Tool{
		ID:          uuid.NewString(),
		Name:        rec.Name,
		Source:      rec.Source,
		Description: rec.Description,
		Votes:       0,
		Category:    defaultCategory,
		Rating:      syntheticRating(rec.Name),
		Topics:      mustJSON([]string{}),
		CreatedAt:   now,
		UpdatedAt:   now,
		RawJSON:     mustJSON(rec),
	}
}

// syntheticRating is a deterministic placeholder in [3.50, 5.00] derived
// from the tool name. It stands in until a real rating source exists.
func syntheticRating(name string) decimal.Decimal {
	h := fnv.New32a()
	h.Write([]byte(name))
	cents := 350 + int64(h.Sum32()%151)
	return decimal.New(cents, -2)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mustJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(data)
}
