package store

//Repository implementation (Postgres)

import (
	"context"
	"errors"

	"bookshelf/internal/book"
	"bookshelf/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	const query = `
	SELECT id, title, author, description, image, link, created_at, updated_at
	FROM books
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Image, &b.Link, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const insertSQL = `
	INSERT INTO books (id, title, author, description, image, link, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, insertSQL,
		b.ID, b.Title, b.Author, b.Description, b.Image, b.Link, b.CreatedAt, b.UpdatedAt)
	return err
}

// Update is a single conditional statement: a missing id surfaces as
// ErrNotFound straight from the RETURNING scan, with no separate
// existence check to race against.
func (r *BookPG) Update(ctx context.Context, b *entity.Book) (entity.Book, error) {
	const updateSQL = `
	UPDATE books
	SET title = $2, author = $3, description = $4, image = $5, link = $6, updated_at = $7
	WHERE id = $1
	RETURNING id, title, author, description, image, link, created_at, updated_at
	`
	var out entity.Book
	err := r.db.QueryRow(ctx, updateSQL,
		b.ID, b.Title, b.Author, b.Description, b.Image, b.Link, b.UpdatedAt).
		Scan(&out.ID, &out.Title, &out.Author, &out.Description, &out.Image, &out.Link, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Book{}, book.ErrNotFound
	}
	if err != nil {
		return entity.Book{}, err
	}
	return out, nil
}

// Delete removes the row and returns it, atomically reporting not-found.
func (r *BookPG) Delete(ctx context.Context, id string) (entity.Book, error) {
	const deleteSQL = `
	DELETE FROM books
	WHERE id = $1
	RETURNING id, title, author, description, image, link, created_at, updated_at
	`
	var out entity.Book
	err := r.db.QueryRow(ctx, deleteSQL, id).
		Scan(&out.ID, &out.Title, &out.Author, &out.Description, &out.Image, &out.Link, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Book{}, book.ErrNotFound
	}
	if err != nil {
		return entity.Book{}, err
	}
	return out, nil
}
