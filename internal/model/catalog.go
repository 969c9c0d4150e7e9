package model

import "time"

// CatalogItem is one tradable item from the marketplace catalog, flattened
// from whichever upstream shape it arrived in (flat or i18n-nested).
type CatalogItem struct {
	Slug  string   `json:"slug"`
	Name  string   `json:"name"`
	Icon  *string  `json:"icon"`
	Thumb *string  `json:"thumb"`
	Tags  []string `json:"tags"`
}

type ItemSearchResult struct {
	Slug  string   `json:"slug"`
	Name  string   `json:"name"`
	Icon  *string  `json:"icon"`
	Thumb *string  `json:"thumb"`
	Tags  []string `json:"tags"`
}

type ItemsSearchResponse struct {
	Query    string             `json:"q"`
	Count    int                `json:"count"`
	Results  []ItemSearchResult `json:"results"`
	CachedAt time.Time          `json:"cachedAt"`
}
