package pagination

import (
	"net/url"
	"strconv"
)

type Link struct {
	URL    *string `json:"url"`
	Active bool    `json:"active"`
}

type Meta struct {
	CurrentPage  int     `json:"current_page"`
	FirstPageURL string  `json:"first_page_url"`
	From         int     `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	Links        []Link  `json:"links"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           int     `json:"to"`
	Total        int     `json:"total"`
}

// Result is the envelope returned by every list operation.
type Result[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// BuildURL sets page and per_page on base while keeping every other
// parameter from query. Keys are encoded in sorted order.
func BuildURL(base string, page, perPage int, query url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}

	q := u.Query()
	for key, values := range query {
		q[key] = append([]string(nil), values...)
	}
	q.Set(ParamPage, strconv.Itoa(page))
	q.Set(ParamPerPage, strconv.Itoa(perPage))

	u.RawQuery = q.Encode()
	return u.String()
}

// BuildMeta computes page metadata for a listing. Pages past the end are
// clamped to the last page, so the result always describes a real page.
func BuildMeta(basePath string, query url.Values, total, page, perPage int) Meta {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	currentPage := min(page, lastPage)
	offset := (currentPage - 1) * perPage

	pageURL := func(p int) string {
		return BuildURL(basePath, p, perPage, query)
	}

	var nextPageURL, prevPageURL *string
	if currentPage < lastPage {
		next := pageURL(currentPage + 1)
		nextPageURL = &next
	}
	if currentPage > 1 {
		prev := pageURL(currentPage - 1)
		prevPageURL = &prev
	}

	links := make([]Link, 0, lastPage+2)
	links = append(links, Link{URL: prevPageURL})
	for p := 1; p <= lastPage; p++ {
		u := pageURL(p)
		links = append(links, Link{URL: &u, Active: p == currentPage})
	}
	links = append(links, Link{URL: nextPageURL})

	from := 0
	if total > 0 {
		from = offset + 1
	}

	return Meta{
		CurrentPage:  currentPage,
		FirstPageURL: pageURL(1),
		From:         from,
		LastPage:     lastPage,
		LastPageURL:  pageURL(lastPage),
		Links:        links,
		NextPageURL:  nextPageURL,
		Path:         basePathOnly(basePath),
		PerPage:      perPage,
		PrevPageURL:  prevPageURL,
		To:           min(offset+perPage, total),
		Total:        total,
	}
}

func basePathOnly(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	if u.Scheme == "" || u.Host == "" {
		return u.Path
	}
	return u.Scheme + "://" + u.Host + u.Path
}
