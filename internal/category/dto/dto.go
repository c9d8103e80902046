package dto

// CategoryFilters is a resolved listing query. SortBy and SortDir have
// already passed the allow-list and are safe to interpolate.
type CategoryFilters struct {
	Search  string
	SortBy  string
	SortDir string
	Limit   int
	Offset  int
}
