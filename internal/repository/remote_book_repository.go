package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/domain"
)

// maxRemoteBody caps how much of a remote catalog response is read
const maxRemoteBody = 8 << 20

type remoteBookRepository struct {
	baseURL string
	client  *http.Client
}

// NewRemoteBookRepository creates a BookRepository backed by a single GET
// endpoint. The endpoint may answer with a bare array of books or with an
// object carrying the array under "books" or "data".
func NewRemoteBookRepository(baseURL string, client *http.Client) BookRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteBookRepository{baseURL: baseURL, client: client}
}

// List fetches the catalog. Transport failures and non-2xx answers are
// returned as errors; an unexpected body shape is an empty catalog.
func (r *remoteBookRepository) List(ctx context.Context, category string) ([]domain.Book, error) {
	endpoint := r.baseURL
	if category != "" && category != CategoryAll {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + "category=" + url.QueryEscape(category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	return decodeBooks(body), nil
}

func (r *remoteBookRepository) FindByID(ctx context.Context, id int) (domain.Book, error) {
	books, err := r.List(ctx, "")
	if err != nil {
		return domain.Book{}, err
	}
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, ErrBookNotFound
}

// decodeBooks accepts `[...]`, `{"books":[...]}` or `{"data":[...]}` and
// returns an empty slice for anything else.
func decodeBooks(body []byte) []domain.Book {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []domain.Book{}
	}

	switch trimmed[0] {
	case '[':
		return decodeBookArray(trimmed)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return []domain.Book{}
		}
		for _, key := range []string{"books", "data"} {
			raw, ok := envelope[key]
			if ok && len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '[' {
				return decodeBookArray(raw)
			}
		}
	}
	return []domain.Book{}
}

func decodeBookArray(raw []byte) []domain.Book {
	books := []domain.Book{}
	if err := json.Unmarshal(raw, &books); err != nil {
		return []domain.Book{}
	}
	return books
}
