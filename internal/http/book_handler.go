package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookshelf/internal/book"
	"bookshelf/internal/entity"
	"bookshelf/internal/httpx"
)

type BookHandler struct {
	svc *book.Service
}

func NewBookHandler(svc *book.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

// bookInput is the declared schema for create and update payloads.
// Image and link may be empty strings but must be present as fields.
type bookInput struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	Link        string `json:"link"`
}

func (in bookInput) draft() book.Draft {
	return book.Draft{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Image:       in.Image,
		Link:        in.Link,
	}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, httpx.CodeInternalError, "server error", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSONSuccess(r, w, books)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in bookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "malformed JSON body", nil)
		return
	}
	if details := ValidateStruct(in); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "invalid book", details)
		return
	}

	created, err := h.svc.Create(r.Context(), in.draft())
	if err != nil {
		writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, created)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var in bookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "malformed JSON body", nil)
		return
	}
	if details := ValidateStruct(in); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "invalid book", details)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, in.draft())
	if err != nil {
		writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, updated)
}

// Delete removes the book and returns the deleted record.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(r, w, deleted)
}

// bookID extracts the id path segment from /api/books/{id} with
// net/http's ServeMux-style prefix trimming.
func bookID(r *http.Request) (string, bool) {
	const prefix = "/api/books/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func writeBookError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *book.ValidationError
	switch {
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, httpx.CodeNotFound, "Book not found", nil)
	case errors.As(err, &vErr):
		details := []httpx.ErrorDetail{{Field: vErr.Field, Message: vErr.Message}}
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "invalid book", details)
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, httpx.CodeInternalError, "server error", nil)
	}
}
