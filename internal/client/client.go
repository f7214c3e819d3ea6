// Package client is the typed remote-procedure surface the collection
// manager drives. Error codes from the gateway's envelopes map back to
// the sentinel errors below so callers can branch with errors.Is.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bookshelf/internal/entity"
	"bookshelf/internal/httpx"
)

var (
	// ErrUnauthorized means the session token was missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the target record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the gateway rejected the input shape.
	ErrValidation = errors.New("validation failed")
)

// Draft mirrors the mutable fields of a record for create and update.
type Draft struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
}

// Session is the opaque authentication fact returned by the probe.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Session probes the gateway with the configured token.
func (c *Client) Session(ctx context.Context) (Session, error) {
	var out Session
	err := c.call(ctx, http.MethodGet, "/api/session", nil, &out)
	return out, err
}

// List fetches every record. The manager renders exactly this result;
// it never patches the list locally.
func (c *Client) List(ctx context.Context) ([]entity.Book, error) {
	var out []entity.Book
	if err := c.call(ctx, http.MethodGet, "/api/books", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, d Draft) (entity.Book, error) {
	var out entity.Book
	err := c.call(ctx, http.MethodPost, "/api/books", d, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id string, d Draft) (entity.Book, error) {
	var out entity.Book
	err := c.call(ctx, http.MethodPut, "/api/books/"+id, d, &out)
	return out, err
}

// Delete removes a record and returns the deleted record.
func (c *Client) Delete(ctx context.Context, id string) (entity.Book, error) {
	var out entity.Book
	err := c.call(ctx, http.MethodDelete, "/api/books/"+id, nil, &out)
	return out, err
}

type uploadRequest struct {
	FileName string `json:"fileName"`
	File     string `json:"file"`
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Upload stores a cover image and returns its public URL. This is a
// separate call from Create/Update on purpose: image upload and record
// save are two independent, non-atomic steps.
func (c *Client) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	req := uploadRequest{
		FileName: fileName,
		File:     "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data),
	}
	var out uploadResponse
	if err := c.call(ctx, http.MethodPost, "/api/uploads", req, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Data == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func decodeError(status int, raw []byte) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)

	var sentinel error
	switch envelope.Error.Code {
	case httpx.CodeUnauthorized:
		sentinel = ErrUnauthorized
	case httpx.CodeNotFound:
		sentinel = ErrNotFound
	case httpx.CodeValidationError:
		sentinel = ErrValidation
	default:
		if status == http.StatusUnauthorized {
			sentinel = ErrUnauthorized
		}
	}

	message := envelope.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}
	if sentinel != nil {
		return fmt.Errorf("%w: %s", sentinel, message)
	}
	return fmt.Errorf("server error (%d): %s", status, message)
}
