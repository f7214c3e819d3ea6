package entity

import "time"

// Book represents one record in the collection. ID is assigned by the
// server on create and never changes; every other field is replaced
// wholesale by an update.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
