// Package filter narrows a catalog listing down to the items matching a set
// of criteria and cuts the result into pages.
package filter

import (
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// DefaultPageSize is used when a caller passes a page size below 1
const DefaultPageSize = 6

// Criteria holds the optional filter values. Empty fields are ignored.
type Criteria struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Year     string `json:"year,omitempty"`
	Category string `json:"category,omitempty"`
}

// IsEmpty reports whether no criterion is set
func (c Criteria) IsEmpty() bool {
	return c.Title == "" && c.Author == "" && c.Year == "" && c.Category == ""
}

// Result is one page of matching items
type Result[T domain.CatalogItem] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
}

// Apply filters items by c and returns the requested page. The page is
// clamped into [1, TotalPages]. Apply never mutates items.
func Apply[T domain.CatalogItem](items []T, c Criteria, page, pageSize int) Result[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, c) {
			matched = append(matched, item)
		}
	}

	total := len(matched)
	totalPages := TotalPages(total, pageSize)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Items:      matched[start:end:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

// TotalPages returns max(1, ceil(total/pageSize))
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Matches reports whether item satisfies every non-empty criterion
func Matches(item domain.CatalogItem, c Criteria) bool {
	if c.Title != "" && !containsFold(item.DisplayName(), c.Title) {
		return false
	}
	if c.Category != "" && item.CategoryTag() != c.Category {
		return false
	}
	if c.Author == "" && c.Year == "" {
		return true
	}

	authored, ok := item.(domain.Authored)
	if !ok {
		return false
	}
	if c.Author != "" && !containsFold(authored.AuthorName(), c.Author) {
		return false
	}
	// "20" matches 2020 and 2021
	if c.Year != "" && !strings.Contains(strconv.Itoa(authored.PublicationYear()), c.Year) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
