package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/scrazdxvf/baraholka-backend/internal/storage"
)

const maxUploadBytes = 8 << 20 // 8 MiB per image

type UploadHandler struct {
	store *storage.ImageStore
}

func NewUploadHandler(store *storage.ImageStore) *UploadHandler {
	return &UploadHandler{store: store}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts one multipart image and returns its public URL for use in
// a listing submission.
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.store == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("storage_unavailable", "image storage is not configured"))
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image file is required"))
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse("too_large", "image exceeds size limit"))
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "only image uploads are allowed"))
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "could not read upload"))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "could not read upload"))
	}
	url, err := h.store.Upload(c.Request().Context(), data, contentType, filepath.Ext(fh.Filename))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "upload failed"))
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
