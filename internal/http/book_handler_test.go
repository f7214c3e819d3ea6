package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/book"
	"bookshelf/internal/media"
	"bookshelf/internal/store"
	"bookshelf/internal/testutil"
)

const testSecret = "test-secret"

type gatewayFixture struct {
	router  http.Handler
	repo    *store.BookMemory
	objects *media.MemoryStore
	token   string
}

func newGateway(t *testing.T) *gatewayFixture {
	t.Helper()
	repo := store.NewBookMemory()
	objects := media.NewMemoryStore()
	uploader := media.NewUploader(objects, "shelf-covers", "s3.amazonaws.com")

	router := NewRouter(
		NewBookHandler(book.NewService(repo)),
		NewUploadHandler(uploader),
		testSecret,
	)
	return &gatewayFixture{
		router:  router,
		repo:    repo,
		objects: objects,
		token:   testutil.GenerateTestToken(testSecret, "owner"),
	}
}

func (g *gatewayFixture) do(method, path string, body interface{}) testutil.RecordResponse {
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, testutil.NewRequestWithAuth(method, path, body, g.token))
	return testutil.RecordHTTPResponse(w)
}

func (g *gatewayFixture) doAnon(method, path string, body interface{}) testutil.RecordResponse {
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, testutil.NewRequest(method, path, body))
	return testutil.RecordHTTPResponse(w)
}

func validPayload() map[string]string {
	return map[string]string{
		"title":       "Dune",
		"author":      "Herbert",
		"description": "Sci-fi",
		"image":       "",
		"link":        "",
	}
}

func TestProtectedOperationsRejectMissingSession(t *testing.T) {
	g := newGateway(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"list", http.MethodGet, "/api/books", nil},
		{"create", http.MethodPost, "/api/books", validPayload()},
		{"update", http.MethodPut, "/api/books/some-id", validPayload()},
		{"delete", http.MethodDelete, "/api/books/some-id", nil},
		{"upload", http.MethodPost, "/api/uploads", map[string]string{"fileName": "a.jpg", "file": "data:,aGk="}},
		{"session", http.MethodGet, "/api/session", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := g.doAnon(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}

	// No side effect reached the store or the object storage.
	books := g.do(http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusOK, books.Code)
	assert.Empty(t, books.Body["data"])
	assert.Equal(t, 0, g.objects.Len())
}

func TestExpiredSessionRejected(t *testing.T) {
	g := newGateway(t)
	g.token = testutil.GenerateExpiredToken(testSecret, "owner")

	resp := g.do(http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateBook(t *testing.T) {
	g := newGateway(t)

	resp := g.do(http.MethodPost, "/api/books", validPayload())
	require.Equal(t, http.StatusCreated, resp.Code)

	data := resp.Body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Dune", data["title"])
	assert.Equal(t, "Herbert", data["author"])
	assert.Equal(t, "Sci-fi", data["description"])
}

func TestCreateBookValidation(t *testing.T) {
	g := newGateway(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing title", map[string]string{"author": "a", "description": "d"}},
		{"missing author", map[string]string{"title": "t", "description": "d"}},
		{"missing description", map[string]string{"title": "t", "author": "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := g.do(http.MethodPost, "/api/books", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			errBody := resp.Body["error"].(map[string]interface{})
			assert.Equal(t, "validation_error", errBody["code"])
		})
	}

	list := g.do(http.MethodGet, "/api/books", nil)
	assert.Empty(t, list.Body["data"], "failed validation must not create records")
}

func TestCreateBookMalformedJSON(t *testing.T) {
	g := newGateway(t)

	w := httptest.NewRecorder()
	r := testutil.NewRequestWithAuth(http.MethodPost, "/api/books", nil, g.token)
	r.Body = http.NoBody
	g.router.ServeHTTP(w, r)
	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateBook(t *testing.T) {
	g := newGateway(t)

	created := g.do(http.MethodPost, "/api/books", validPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	id := created.Body["data"].(map[string]interface{})["id"].(string)

	updated := g.do(http.MethodPut, "/api/books/"+id, map[string]string{
		"title":       "Dune Messiah",
		"author":      "Frank Herbert",
		"description": "Sequel",
		"image":       "https://shelf-covers.s3.amazonaws.com/messiah.jpg",
		"link":        "https://example.com/messiah",
	})
	require.Equal(t, http.StatusOK, updated.Code)

	data := updated.Body["data"].(map[string]interface{})
	assert.Equal(t, id, data["id"], "id is immutable")
	assert.Equal(t, "Dune Messiah", data["title"])
	assert.Equal(t, "https://shelf-covers.s3.amazonaws.com/messiah.jpg", data["image"])
}

func TestUpdateMissingBook(t *testing.T) {
	g := newGateway(t)

	resp := g.do(http.MethodPut, "/api/books/no-such-id", validPayload())
	assert.Equal(t, http.StatusNotFound, resp.Code)
	errBody := resp.Body["error"].(map[string]interface{})
	assert.Equal(t, "not_found", errBody["code"])
}

func TestDeleteLifecycle(t *testing.T) {
	g := newGateway(t)

	created := g.do(http.MethodPost, "/api/books", validPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	id := created.Body["data"].(map[string]interface{})["id"].(string)

	list := g.do(http.MethodGet, "/api/books", nil)
	require.Len(t, list.Body["data"], 1)

	deleted := g.do(http.MethodDelete, "/api/books/"+id, nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	data := deleted.Body["data"].(map[string]interface{})
	assert.Equal(t, id, data["id"], "delete returns the deleted record")
	assert.Equal(t, "Dune", data["title"])

	list = g.do(http.MethodGet, "/api/books", nil)
	assert.Empty(t, list.Body["data"])

	again := g.do(http.MethodDelete, "/api/books/"+id, nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestSessionProbe(t *testing.T) {
	g := newGateway(t)

	resp := g.do(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data := resp.Body["data"].(map[string]interface{})
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "owner", data["subject"])
}

func TestMethodNotAllowed(t *testing.T) {
	g := newGateway(t)

	resp := g.do(http.MethodPatch, "/api/books", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)

	resp = g.do(http.MethodPost, "/api/books/some-id", validPayload())
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}
