// Package media stores cover images in object storage and hands back
// the public URL a book record can reference. Upload and record save
// are deliberately two independent steps; nothing here ties an uploaded
// object to a record.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Covers are always stored as JPEG; the upload path does no file-type
// sniffing.
const coverContentType = "image/jpeg"

// ErrBadPayload is returned when the upload body is not a decodable
// base64 data URI.
var ErrBadPayload = errors.New("media: payload is not a base64 data URI")

// ObjectStore is the boundary to the object-storage provider: put the
// bytes under a key with public-read visibility. A put with an existing
// key overwrites the prior object.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Uploader decodes data-URI payloads and stores them as public objects.
type Uploader struct {
	store  ObjectStore
	bucket string
	host   string
}

func NewUploader(store ObjectStore, bucket, host string) *Uploader {
	return &Uploader{store: store, bucket: bucket, host: host}
}

// Upload stores the decoded payload under fileName and returns the
// deterministic public URL. Re-using a fileName silently overwrites.
func (u *Uploader) Upload(ctx context.Context, fileName, dataURI string) (string, error) {
	_, encoded, found := strings.Cut(dataURI, ",")
	if !found {
		// Tolerate a bare base64 string with no data-URI prefix.
		encoded = dataURI
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if err := u.store.Put(ctx, fileName, data, coverContentType); err != nil {
		return "", err
	}
	return u.URLFor(fileName), nil
}

// URLFor builds the public URL an object is reachable at.
func (u *Uploader) URLFor(fileName string) string {
	return fmt.Sprintf("https://%s.%s/%s", u.bucket, u.host, fileName)
}
