package book

import (
	"context"
	"time"

	"bookshelf/internal/entity"

	"github.com/google/uuid"
)

// Service provides book-related business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all books in insertion order.
func (s *Service) List(ctx context.Context) ([]entity.Book, error) {
	return s.repo.List(ctx)
}

// Create validates the draft, assigns a fresh id and stores the book.
func (s *Service) Create(ctx context.Context, d Draft) (entity.Book, error) {
	if err := d.Validate(); err != nil {
		return entity.Book{}, err
	}
	now := time.Now().UTC()
	b := entity.Book{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Image:       d.Image,
		Link:        d.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return entity.Book{}, err
	}
	return b, nil
}

// Update replaces every mutable field of the book with the given id.
// Returns ErrNotFound when the id does not exist.
func (s *Service) Update(ctx context.Context, id string, d Draft) (entity.Book, error) {
	if err := d.Validate(); err != nil {
		return entity.Book{}, err
	}
	b := entity.Book{
		ID:          id,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Image:       d.Image,
		Link:        d.Link,
		UpdatedAt:   time.Now().UTC(),
	}
	return s.repo.Update(ctx, &b)
}

// Delete removes the book with the given id and returns it.
// Returns ErrNotFound when the id does not exist.
func (s *Service) Delete(ctx context.Context, id string) (entity.Book, error) {
	return s.repo.Delete(ctx, id)
}
