package model

import "fmt"

// SortOption identifies one of the supported catalogue orderings.
type SortOption string

const (
	SortPriceAsc    SortOption = "price-asc"
	SortPriceDesc   SortOption = "price-desc"
	SortNameAsc     SortOption = "name-asc"
	SortNameDesc    SortOption = "name-desc"
	SortNewest      SortOption = "newest"
	SortOldest      SortOption = "oldest"
	SortRating      SortOption = "rating"
	SortPopularity  SortOption = "popularity"
	SortBestSelling SortOption = "best-selling"
)

// DefaultSortOption is applied when the user has made no selection.
const DefaultSortOption = SortNewest

var sortOptions = map[SortOption]struct{}{
	SortPriceAsc:    {},
	SortPriceDesc:   {},
	SortNameAsc:     {},
	SortNameDesc:    {},
	SortNewest:      {},
	SortOldest:      {},
	SortRating:      {},
	SortPopularity:  {},
	SortBestSelling: {},
}

// Valid reports whether s is one of the nine supported options.
func (s SortOption) Valid() bool {
	_, ok := sortOptions[s]
	return ok
}

func (s SortOption) String() string {
	return string(s)
}

// ParseSortOption validates a raw sort option string.
func ParseSortOption(raw string) (SortOption, error) {
	opt := SortOption(raw)
	if !opt.Valid() {
		return "", fmt.Errorf("unknown sort option: %q", raw)
	}
	return opt, nil
}

// ViewMode controls how the presentation layer lays out the catalogue.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// Valid reports whether v is a supported view mode.
func (v ViewMode) Valid() bool {
	return v == ViewModeGrid || v == ViewModeList
}
