package domain

// ReviewDateLayout is the layout of Review.Date
const ReviewDateLayout = "2006-01-02"

// Review is a user rating and comment on a book
type Review struct {
	ID      int    `json:"id"`
	BookID  int    `json:"book_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}
