package domain

import "github.com/shopspring/decimal"

// Book categories
const (
	BookCategoryFiction  = "fiction"
	BookCategoryScience  = "science"
	BookCategoryHistory  = "history"
	BookCategoryChildren = "children"
	BookCategoryClassics = "classics"
)

// Book represents a book in the store catalog
type Book struct {
	ID       int             `json:"id" db:"id"`
	Title    string          `json:"title" db:"title"`
	Author   string          `json:"author" db:"author"`
	Year     int             `json:"year" db:"year"`
	Category string          `json:"category" db:"category"`
	ImageURL string          `json:"image_url" db:"image_url"`
	Synopsis string          `json:"synopsis" db:"synopsis"`
	Price    decimal.Decimal `json:"price" db:"price"`
}

func (b Book) ItemID() int                { return b.ID }
func (b Book) DisplayName() string        { return b.Title }
func (b Book) CategoryTag() string        { return b.Category }
func (b Book) UnitPrice() decimal.Decimal { return b.Price }
func (b Book) AuthorName() string         { return b.Author }
func (b Book) PublicationYear() int       { return b.Year }

// IsBookCategory reports whether c is one of the known book categories
func IsBookCategory(c string) bool {
	switch c {
	case BookCategoryFiction, BookCategoryScience, BookCategoryHistory, BookCategoryChildren, BookCategoryClassics:
		return true
	}
	return false
}
