package catalog

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/vedran77/sortinghat/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Query holds the list parameters accepted by GET /fav.
type Query struct {
	House      string
	Search     string
	SortBy     string
	Descending bool
	Page       int
	PageSize   int
}

// Page is one slice of a filtered and sorted character list.
type Page struct {
	Items       []domain.Character `json:"data"`
	TotalItems  int                `json:"totalItems"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}

// QueryFromValues reads house, q, sortBy, sortOrder, pageNumber and pageSize.
// Unparseable numbers fall back to the defaults.
func QueryFromValues(v url.Values) Query {
	return Query{
		House:      strings.TrimSpace(v.Get("house")),
		Search:     strings.TrimSpace(v.Get("q")),
		SortBy:     strings.TrimSpace(v.Get("sortBy")),
		Descending: strings.EqualFold(strings.TrimSpace(v.Get("sortOrder")), "DESC"),
		Page:       atoiOr(v.Get("pageNumber"), DefaultPage),
		PageSize:   atoiOr(v.Get("pageSize"), DefaultPageSize),
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

var sortFields = map[string]func(domain.Character) string{
	"id":       func(c domain.Character) string { return c.ID },
	"name":     func(c domain.Character) string { return c.Name },
	"house":    func(c domain.Character) string { return c.House },
	"image":    func(c domain.Character) string { return c.Image },
	"species":  func(c domain.Character) string { return c.Species },
	"gender":   func(c domain.Character) string { return c.Gender },
	"patronus": func(c domain.Character) string { return c.Patronus },
	"actor":    func(c domain.Character) string { return c.Actor },
}

// Apply filters, sorts and paginates chars. The input slice is not modified.
func Apply(chars []domain.Character, q Query) Page {
	filtered := make([]domain.Character, 0, len(chars))
	search := strings.ToLower(q.Search)
	for _, c := range chars {
		if q.House != "" && !strings.EqualFold(c.House, q.House) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		filtered = append(filtered, c)
	}

	if field, ok := sortFields[q.SortBy]; ok {
		slices.SortStableFunc(filtered, func(a, b domain.Character) int {
			cmp := strings.Compare(field(a), field(b))
			if q.Descending {
				return -cmp
			}
			return cmp
		})
	}

	page := max(q.Page, 1)
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(filtered)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}

	items := []domain.Character{}
	if page <= totalPages {
		start := (page - 1) * size
		end := start + min(size, total-start)
		items = filtered[start:end]
	}

	return Page{
		Items:       items,
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
