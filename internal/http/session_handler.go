package http

import (
	"net/http"

	"bookshelf/internal/httpx"
)

type sessionOutput struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject,omitempty"`
}

// Session is a probe behind the auth middleware: reaching it at all
// means the bearer token verified. Clients use it as the opaque
// "is logged in" signal at startup.
func Session(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(r, w, sessionOutput{
		Authenticated: true,
		Subject:       httpx.SubjectFrom(r),
	})
}
