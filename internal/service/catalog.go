package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Kwasin02/estimator-warframe/internal/cache"
	"github.com/Kwasin02/estimator-warframe/internal/model"

	"go.uber.org/zap"
)

const (
	DefaultSearchLimit = 20
	maxSearchLimit     = 50
)

// CatalogService answers fuzzy item searches against the cached catalog
// snapshot. The catalog changes rarely, so one 24h slot shared by all
// requests is enough; order books are never cached.
type CatalogService struct {
	items *cache.Slot[[]model.CatalogItem]
	log   *zap.Logger
	now   func() time.Time
}

func NewCatalogService(items *cache.Slot[[]model.CatalogItem], log *zap.Logger) *CatalogService {
	return &CatalogService{items: items, log: log, now: time.Now}
}

// Primed reports whether a catalog snapshot has ever been loaded.
func (s *CatalogService) Primed() bool {
	return s.items.Primed()
}

// Search scores every catalog item against query and returns the top
// matches. limit is clamped to [1,50]. A blank query returns an empty
// result without touching the cache.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) *model.ItemsSearchResponse {
	query = strings.TrimSpace(query)
	if limit < 1 {
		limit = 1
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if query == "" {
		return &model.ItemsSearchResponse{
			Query:    "",
			Count:    0,
			Results:  []model.ItemSearchResult{},
			CachedAt: s.cachedAt(),
		}
	}

	items := s.items.GetOrFetch(ctx)
	normQ := Normalize(query)

	type scored struct {
		item  model.CatalogItem
		score int
	}
	matches := make([]scored, 0, 32)
	for _, it := range items {
		normSlug := Normalize(it.Slug)
		normName := Normalize(it.Name)
		switch {
		case strings.HasPrefix(normSlug, normQ) || strings.HasPrefix(normName, normQ):
			matches = append(matches, scored{item: it, score: 0})
		case strings.Contains(normSlug+" "+normName+" "+Normalize(strings.Join(it.Tags, " ")), normQ):
			matches = append(matches, scored{item: it, score: 1})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.score != b.score {
			return a.score < b.score
		}
		if pa, pb := intentPriority(a.item.Tags), intentPriority(b.item.Tags); pa != pb {
			return pa < pb
		}
		return len(a.item.Slug) < len(b.item.Slug)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]model.ItemSearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, model.ItemSearchResult{
			Slug:  m.item.Slug,
			Name:  m.item.Name,
			Icon:  m.item.Icon,
			Thumb: m.item.Thumb,
			Tags:  m.item.Tags,
		})
	}

	s.log.Debug("catalog search", zap.String("q", query), zap.Int("matches", len(results)))
	return &model.ItemsSearchResponse{
		Query:    query,
		Count:    len(results),
		Results:  results,
		CachedAt: s.cachedAt(),
	}
}

func (s *CatalogService) cachedAt() time.Time {
	if t, ok := s.items.FetchedAt(); ok {
		return t.UTC()
	}
	return s.now().UTC()
}

// intentPriority orders matches by what a buyer most likely meant: full
// warframe sets first, then blueprint parts, with mods and cosmetics
// pushed below everything else. Lower is better.
func intentPriority(tags []string) int {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[Normalize(t)] = true
	}
	switch {
	case set["warframe"] && set["set"]:
		return 0
	case set["warframe"] && set["blueprint"] && set["component"]:
		return 1
	case set["warframe"] && set["blueprint"]:
		return 2
	case set["mod"]:
		return 5
	case set["skin"] || set["arcane_helmet"]:
		return 6
	default:
		return 3
	}
}
