package book

import "errors"

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Draft holds the mutable fields of a book as submitted by a caller.
// Image and Link may be empty; the rest are required.
type Draft struct {
	Title       string
	Author      string
	Description string
	Image       string
	Link        string
}

// ValidationError reports a malformed draft. It is raised before any
// store access happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid book: " + e.Field + " " + e.Message
}

// Validate checks the required fields of a draft.
func (d Draft) Validate() error {
	switch {
	case d.Title == "":
		return &ValidationError{Field: "title", Message: "is required"}
	case d.Author == "":
		return &ValidationError{Field: "author", Message: "is required"}
	case d.Description == "":
		return &ValidationError{Field: "description", Message: "is required"}
	}
	return nil
}
