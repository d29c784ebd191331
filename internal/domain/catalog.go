package domain

import "github.com/shopspring/decimal"

// CatalogItem is anything that can be listed, filtered and put in a cart
type CatalogItem interface {
	ItemID() int
	DisplayName() string
	CategoryTag() string
	UnitPrice() decimal.Decimal
}

// Authored is implemented by catalog items that carry an author and a publication year
type Authored interface {
	AuthorName() string
	PublicationYear() int
}
