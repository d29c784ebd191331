package filter

import (
	"strconv"
	"strings"
	"testing"

	"storefront/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func booksFromTitles(titles []string) []domain.Book {
	categories := []string{domain.BookCategoryFiction, domain.BookCategoryHistory, domain.BookCategoryScience}
	books := make([]domain.Book, len(titles))
	for i, title := range titles {
		books[i] = domain.Book{
			ID:       i + 1,
			Title:    title,
			Author:   "Author " + strconv.Itoa(i%4),
			Year:     1995 + i%30,
			Category: categories[i%len(categories)],
			Price:    decimal.NewFromInt(10),
		}
	}
	return books
}

func isSubsequence(sub, all []domain.Book) bool {
	j := 0
	for _, b := range all {
		if j < len(sub) && sub[j].ID == b.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestProperty_VisibleItemsAreMatchingSubsequence(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("visible items are an ordered subset that satisfies every criterion", prop.ForAll(
		func(titles []string, needle string, year string, page int, pageSize int) bool {
			books := booksFromTitles(titles)
			criteria := Criteria{Title: needle, Year: year}

			result := Apply(books, criteria, page, pageSize)

			if !isSubsequence(result.Items, books) {
				return false
			}
			for _, b := range result.Items {
				if !strings.Contains(strings.ToLower(b.Title), strings.ToLower(needle)) {
					return false
				}
				if !strings.Contains(strconv.Itoa(b.Year), year) {
					return false
				}
			}
			return len(result.Items) <= result.PageSize && result.Page >= 1 && result.Page <= result.TotalPages
		},
		gen.SliceOf(gen.AlphaString()),
		gen.OneConstOf("", "a", "B", "ab"),
		gen.OneConstOf("", "19", "20", "2001"),
		gen.IntRange(-3, 12),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TotalPagesFormula(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total pages is max(1, ceil(total/pageSize))", prop.ForAll(
		func(total int, pageSize int) bool {
			expected := total / pageSize
			if total%pageSize != 0 {
				expected++
			}
			if expected < 1 {
				expected = 1
			}
			return TotalPages(total, pageSize) == expected
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_PagesPartitionMatches(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("walking every page yields every match exactly once", prop.ForAll(
		func(titles []string, pageSize int) bool {
			books := booksFromTitles(titles)
			first := Apply(books, Criteria{}, 1, pageSize)

			seen := 0
			for p := 1; p <= first.TotalPages; p++ {
				r := Apply(books, Criteria{}, p, pageSize)
				for i, b := range r.Items {
					if b.ID != books[(p-1)*pageSize+i].ID {
						return false
					}
				}
				seen += len(r.Items)
			}
			return seen == len(books)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(1, 7),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestApply_TitleFilterReturnsOnlyMatch(t *testing.T) {
	books := []domain.Book{
		{ID: 1, Title: "A", Price: decimal.NewFromInt(1)},
		{ID: 2, Title: "X", Price: decimal.NewFromInt(1)},
	}

	result := Apply(books, Criteria{Title: "A"}, 1, DefaultPageSize)

	if len(result.Items) != 1 || result.Items[0].ID != 1 {
		t.Fatalf("expected only book 1, got %+v", result.Items)
	}
	if result.TotalCount != 1 || result.TotalPages != 1 {
		t.Errorf("unexpected totals: count=%d pages=%d", result.TotalCount, result.TotalPages)
	}
}

func TestApply_YearIsSubstringMatch(t *testing.T) {
	books := []domain.Book{
		{ID: 1, Title: "One", Year: 2020},
		{ID: 2, Title: "Two", Year: 2021},
		{ID: 3, Title: "Three", Year: 1999},
	}

	result := Apply(books, Criteria{Year: "20"}, 1, 10)

	if result.TotalCount != 2 {
		t.Fatalf("expected 2 matches, got %d", result.TotalCount)
	}
}

func TestApply_AuthorAndCategory(t *testing.T) {
	books := []domain.Book{
		{ID: 1, Title: "One", Author: "Ursula K. Le Guin", Category: domain.BookCategoryFiction},
		{ID: 2, Title: "Two", Author: "Ursula Franklin", Category: domain.BookCategoryScience},
		{ID: 3, Title: "Three", Author: "Carl Sagan", Category: domain.BookCategoryScience},
	}

	result := Apply(books, Criteria{Author: "ursula", Category: domain.BookCategoryScience}, 1, 10)

	if result.TotalCount != 1 || result.Items[0].ID != 2 {
		t.Fatalf("expected only book 2, got %+v", result.Items)
	}
}

func TestApply_PageIsClamped(t *testing.T) {
	books := booksFromTitles([]string{"a", "b", "c", "d", "e", "f", "g"})

	high := Apply(books, Criteria{}, 99, 3)
	if high.Page != 3 || len(high.Items) != 1 || high.Items[0].ID != 7 {
		t.Errorf("expected last page with book 7, got page=%d items=%+v", high.Page, high.Items)
	}

	low := Apply(books, Criteria{}, 0, 3)
	if low.Page != 1 || len(low.Items) != 3 {
		t.Errorf("expected first page, got page=%d len=%d", low.Page, len(low.Items))
	}
}

func TestApply_EmptyInputHasOnePage(t *testing.T) {
	result := Apply([]domain.Book{}, Criteria{Title: "nothing"}, 5, 6)

	if result.TotalPages != 1 || result.Page != 1 || len(result.Items) != 0 {
		t.Errorf("unexpected result for empty input: %+v", result)
	}
}

func TestApply_AuthorCriterionSkipsUnauthoredItems(t *testing.T) {
	products := []domain.CafeteriaProduct{
		{ID: 1, Name: "Espresso", Category: domain.ProductCategoryCoffee},
	}

	if got := Apply(products, Criteria{Author: "x"}, 1, 6); got.TotalCount != 0 {
		t.Errorf("expected no matches, got %d", got.TotalCount)
	}
	if got := Apply(products, Criteria{Category: domain.ProductCategoryCoffee}, 1, 6); got.TotalCount != 1 {
		t.Errorf("expected one coffee, got %d", got.TotalCount)
	}
}
