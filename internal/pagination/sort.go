package pagination

import "strings"

// SortFields is a fixed allow-list of column names that may appear in ORDER BY.
type SortFields map[string]struct{}

func NewSortFields(fields ...string) SortFields {
	set := make(SortFields, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// ResolveSortField returns requested when it is allow-listed (exact,
// case-sensitive match) and def otherwise. Only the returned value may be
// interpolated into SQL.
func ResolveSortField(requested string, allowed SortFields, def string) string {
	if _, ok := allowed[requested]; ok {
		return requested
	}
	return def
}

// Direction maps any case of "asc" to ASC; every other value is DESC.
func Direction(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
