package book

import (
	"context"

	"bookshelf/internal/entity"
)

// Repository defines the contract for book storage.
//
// Update and Delete must be atomic with their existence check: when the
// id does not exist they return ErrNotFound without mutating anything,
// even under concurrent deletes of the same id.
type Repository interface {
	List(ctx context.Context) ([]entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, b *entity.Book) (entity.Book, error)
	Delete(ctx context.Context, id string) (entity.Book, error)
}
