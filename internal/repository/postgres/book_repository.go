// Package postgres serves the read-only catalog from Postgres tables created
// by the goose migrations in /migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a repository.BookRepository backed by the books table
func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

// List retrieves books ordered by id, optionally narrowed to one category
func (r *bookRepository) List(ctx context.Context, category string) ([]domain.Book, error) {
	query := `
		SELECT id, title, author, year, category, image_url, synopsis, price
		FROM books
	`
	args := []interface{}{}

	if category != "" && category != repository.CategoryAll {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var book domain.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Year,
			&book.Category,
			&book.ImageURL,
			&book.Synopsis,
			&book.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// FindByID retrieves a book by ID using parameterized queries
func (r *bookRepository) FindByID(ctx context.Context, id int) (domain.Book, error) {
	query := `
		SELECT id, title, author, year, category, image_url, synopsis, price
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.Category,
		&book.ImageURL,
		&book.Synopsis,
		&book.Price,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Book{}, repository.ErrBookNotFound
		}
		return domain.Book{}, fmt.Errorf("failed to find book by ID: %w", err)
	}

	return book, nil
}
