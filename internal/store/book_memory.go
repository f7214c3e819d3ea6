package store

import (
	"context"
	"sync"

	"bookshelf/internal/book"
	"bookshelf/internal/entity"
)

// BookMemory is an in-memory Repository for tests and the memory store
// driver. Insertion order is preserved to match the Postgres listing.
type BookMemory struct {
	mu    sync.RWMutex
	books []entity.Book
	index map[string]int
}

func NewBookMemory() *BookMemory {
	return &BookMemory{index: make(map[string]int)}
}

func (r *BookMemory) List(ctx context.Context) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *BookMemory) Create(ctx context.Context, b *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[b.ID] = len(r.books)
	r.books = append(r.books, *b)
	return nil
}

func (r *BookMemory) Update(ctx context.Context, b *entity.Book) (entity.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[b.ID]
	if !ok {
		return entity.Book{}, book.ErrNotFound
	}
	stored := &r.books[i]
	stored.Title = b.Title
	stored.Author = b.Author
	stored.Description = b.Description
	stored.Image = b.Image
	stored.Link = b.Link
	stored.UpdatedAt = b.UpdatedAt
	return *stored, nil
}

func (r *BookMemory) Delete(ctx context.Context, id string) (entity.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return entity.Book{}, book.ErrNotFound
	}
	deleted := r.books[i]
	r.books = append(r.books[:i], r.books[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.books); j++ {
		r.index[r.books[j].ID] = j
	}
	return deleted, nil
}
