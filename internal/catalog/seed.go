// Package catalog provides the book seed data the store is initialized with.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"bookshelf/internal/domain"
)

// Default returns the built-in catalog. ISBNs are the original catalog keys;
// review maps start absent, so a fresh book reports no reviews collection.
func Default() []domain.Book {
	return []domain.Book{
		{ISBN: "1", Title: "Things Fall Apart", Author: "Chinua Achebe"},
		{ISBN: "2", Title: "Fairy tales", Author: "Hans Christian Andersen"},
		{ISBN: "3", Title: "The Divine Comedy", Author: "Dante Alighieri"},
		{ISBN: "4", Title: "The Epic Of Gilgamesh", Author: "Unknown"},
		{ISBN: "5", Title: "The Book Of Job", Author: "Unknown"},
		{ISBN: "6", Title: "One Thousand and One Nights", Author: "Unknown"},
		{ISBN: "7", Title: "Njál's Saga", Author: "Unknown"},
		{ISBN: "8", Title: "Pride and Prejudice", Author: "Jane Austen"},
		{ISBN: "9", Title: "Le Père Goriot", Author: "Honoré de Balzac"},
		{ISBN: "10", Title: "Molloy, Malone Dies, The Unnamable, the trilogy", Author: "Samuel Beckett"},
	}
}

type seedEntry struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// LoadFile reads a JSON array of {isbn,title,author} entries to use instead
// of the built-in catalog.
func LoadFile(path string) ([]domain.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}

	books := make([]domain.Book, 0, len(entries))
	for _, e := range entries {
		if e.ISBN == "" {
			return nil, fmt.Errorf("catalog seed entry without isbn")
		}
		books = append(books, domain.Book{ISBN: e.ISBN, Title: e.Title, Author: e.Author})
	}
	return books, nil
}
