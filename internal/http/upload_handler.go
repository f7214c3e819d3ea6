package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookshelf/internal/httpx"
	"bookshelf/internal/media"
)

type UploadHandler struct {
	uploader *media.Uploader
}

func NewUploadHandler(uploader *media.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

type uploadInput struct {
	FileName string `json:"fileName" validate:"required"`
	File     string `json:"file" validate:"required"`
}

type uploadOutput struct {
	ImageURL string `json:"imageUrl"`
}

// Upload stores a cover image and returns its public URL. Uploading
// with a previously used fileName overwrites the prior object; the
// record save is a separate, independent call.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var in uploadInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "malformed JSON body", nil)
		return
	}
	if details := ValidateStruct(in); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "invalid upload", details)
		return
	}

	url, err := h.uploader.Upload(r.Context(), in.FileName, in.File)
	if err != nil {
		if errors.Is(err, media.ErrBadPayload) {
			details := []httpx.ErrorDetail{{Field: "file", Message: "must be a base64 data URI"}}
			httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidationError, "invalid upload", details)
			return
		}
		httpx.JSONError(r, w, http.StatusInternalServerError, httpx.CodeInternalError, "server error", nil)
		return
	}

	httpx.JSONSuccess(r, w, uploadOutput{ImageURL: url})
}
