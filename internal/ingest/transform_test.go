package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"toolhub/internal/client/producthunt"
	"toolhub/internal/scraper"
)

func TestFromPost(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	featured := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	post := producthunt.Post{
		ID:          "ph-123",
		Name:        "WriteBot",
		Tagline:     "AI writing companion",
		Description: "drafts emails for you",
		VotesCount:  42,
		CreatedAt:   featured,
		URL:         "https://producthunt.com/posts/writebot",
		Website:     "https://writebot.example",
		Topics:      []string{"Artificial Intelligence"},
	}

	tool := FromPost(post, now)

	if tool.ID == "" {
		t.Fatalf("expected generated id")
	}
	if tool.SourceID == nil || *tool.SourceID != "ph-123" {
		t.Fatalf("source_id = %v, want ph-123", tool.SourceID)
	}
	if tool.Source != SourceProductHunt {
		t.Fatalf("source = %q", tool.Source)
	}
	if tool.Votes != 42 {
		t.Fatalf("votes = %d, want 42", tool.Votes)
	}
	if tool.Category != "General" {
		t.Fatalf("category = %q, want General", tool.Category)
	}
	if tool.FeaturedAt == nil || !tool.FeaturedAt.Equal(featured) {
		t.Fatalf("featured_at = %v, want %v", tool.FeaturedAt, featured)
	}
	if !tool.CreatedAt.Equal(now) || !tool.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not stamped with now")
	}
	if tool.UpdatedAt.Before(tool.CreatedAt) {
		t.Fatalf("updated_at before created_at")
	}
}

func TestFromPostGeneratesUniqueIDs(t *testing.T) {
	now := time.Now().UTC()
	post := producthunt.Post{ID: "ph-1", Name: "Same"}
	a := FromPost(post, now)
	b := FromPost(post, now)
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids per transform")
	}
}

func TestFromScrapedDefaults(t *testing.T) {
	now := time.Now().UTC()
	tool := FromScraped(scraper.Record{
		Name:        "PixelForge",
		Description: "generative image editing",
		Source:      "AI Tools Directory",
	}, now)

	if tool.SourceID != nil {
		t.Fatalf("scraped tool should have no source_id")
	}
	if tool.Source != "AI Tools Directory" {
		t.Fatalf("source = %q", tool.Source)
	}
	if tool.Votes != 0 {
		t.Fatalf("votes default = %d, want 0", tool.Votes)
	}
	if tool.Category != "General" {
		t.Fatalf("category = %q, want General", tool.Category)
	}
	if string(tool.Topics) != "[]" {
		t.Fatalf("topics = %s, want empty array", tool.Topics)
	}
}

func TestSyntheticRatingDeterministicAndBounded(t *testing.T) {
	lo := decimal.New(350, -2)
	hi := decimal.New(500, -2)
	for _, name := range []string{"WriteBot", "PixelForge", "x", "A very long tool name indeed"} {
		first := syntheticRating(name)
		if !first.Equal(syntheticRating(name)) {
			t.Fatalf("rating for %q not deterministic", name)
		}
		if first.LessThan(lo) || first.GreaterThan(hi) {
			t.Fatalf("rating for %q = %s, want within [3.50, 5.00]", name, first)
		}
	}
}
