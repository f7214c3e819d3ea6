package http

import (
	"net/http"

	"bookshelf/internal/httpx"
)

// NewRouter assembles the gateway surface. Every /api route is
// protected: the auth middleware rejects missing or invalid sessions
// before validation or store access happens.
func NewRouter(books *BookHandler, uploads *UploadHandler, jwtSecret string) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			books.List(w, r)
		case http.MethodPost:
			books.Create(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	api.HandleFunc("/api/books/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			books.Update(w, r)
		case http.MethodDelete:
			books.Delete(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	api.HandleFunc("/api/uploads", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		uploads.Upload(w, r)
	})
	api.HandleFunc("/api/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		Session(w, r)
	})

	return httpx.AuthMiddleware(jwtSecret)(api)
}
