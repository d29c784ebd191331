package domain

import "github.com/shopspring/decimal"

// Cafeteria product categories
const (
	ProductCategoryCoffee = "coffee"
	ProductCategoryDrink  = "drink"
	ProductCategorySnack  = "snack"
)

// CafeteriaProduct represents an item on the cafeteria menu
type CafeteriaProduct struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	// Available is optional; a product without the flag counts as available.
	Available *bool `json:"available,omitempty" db:"available"`
}

func (p CafeteriaProduct) ItemID() int                { return p.ID }
func (p CafeteriaProduct) DisplayName() string        { return p.Name }
func (p CafeteriaProduct) CategoryTag() string        { return p.Category }
func (p CafeteriaProduct) UnitPrice() decimal.Decimal { return p.Price }

// IsAvailable reports whether the product can currently be ordered
func (p CafeteriaProduct) IsAvailable() bool {
	return p.Available == nil || *p.Available
}
