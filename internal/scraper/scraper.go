package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"toolhub/internal/config"
)

// ErrUnavailable covers fetch failures and non-2xx responses from a target.
var ErrUnavailable = errors.New("scrape target unavailable")

// ErrNoRecords means the page was fetched and parsed but no selector
// produced a usable record.
var ErrNoRecords = errors.New("no records extracted")

// Record is one raw scraped listing.
type Record struct {
	Name        string
	Description string
	Source      string
}

// selectorCandidates are tried in priority order; the first selector that
// yields any valid record wins for the page.
var selectorCandidates = []string{
	"h2, h3",
	".title",
	".name",
	`[class*="tool"]`,
	`[class*="card"] h4`,
	"article h2",
}

// boilerplate substrings disqualify an element text from being a tool name.
var boilerplate = []string{
	"browse",
	"submit",
	"login",
	"sign in",
	"sign up",
	"subscribe",
	"newsletter",
	"categories",
	"advertise",
}

const maxDescriptionLen = 300

type Scraper struct {
	httpClient *http.Client
	userAgent  string
	maxPerPage int
	logger     *zap.Logger
}

func New(httpClient *http.Client, cfg config.ScraperConfig, logger *zap.Logger) *Scraper {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	maxPerPage := cfg.MaxPerPage
	if maxPerPage <= 0 {
		maxPerPage = 10
	}
	return &Scraper{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		maxPerPage: maxPerPage,
		logger:     logger,
	}
}

// Scrape fetches one target page and extracts up to maxPerPage records.
func (s *Scraper) Scrape(ctx context.Context, target config.ScrapeTarget) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrNoRecords, err)
	}

	records := s.Extract(doc, target.Name)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecords, target.URL)
	}
	return records, nil
}

// Extract walks the selector candidates over a parsed document. Selector
// search short-circuits: once a selector yields a valid record, the
// remaining candidates are not consulted for this page.
func (s *Scraper) Extract(doc *goquery.Document, sourceName string) []Record {
	for _, selector := range selectorCandidates {
		records := s.extractWith(doc, selector, sourceName)
		if len(records) > 0 {
			if s.logger != nil {
				s.logger.Debug("selector matched",
					zap.String("source", sourceName),
					zap.String("selector", selector),
					zap.Int("records", len(records)),
				)
			}
			return records
		}
	}
	return nil
}

func (s *Scraper) extractWith(doc *goquery.Document, selector, sourceName string) []Record {
	var records []Record
	seen := map[string]struct{}{}

	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(records) >= s.maxPerPage {
			return false
		}
		name := cleanName(sel.Text())
		if name == "" {
			return true
		}
		if _, ok := seen[name]; ok {
			return true
		}
		seen[name] = struct{}{}
		records = append(records, Record{
			Name:        name,
			Description: describeNear(sel),
			Source:      sourceName,
		})
		return true
	})

	return records
}

// cleanName trims the element text and rejects texts that cannot be a tool
// name: too short, too long, or known page boilerplate.
func cleanName(text string) string {
	name := strings.Join(strings.Fields(text), " ")
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return ""
	}
	lower := strings.ToLower(name)
	for _, word := range boilerplate {
		if strings.Contains(lower, word) {
			return ""
		}
	}
	return name
}

// describeNear takes a best-effort description from the next sibling, then
// the parent, of the matched element.
func describeNear(sel *goquery.Selection) string {
	if desc := cleanDescription(sel.Next().Text()); desc != "" {
		return desc
	}
	return cleanDescription(sel.Parent().Text())
}

func cleanDescription(text string) string {
	desc := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(desc) < 10 {
		return ""
	}
	runes := []rune(desc)
	if len(runes) > maxDescriptionLen {
		desc = string(runes[:maxDescriptionLen])
	}
	return desc
}
