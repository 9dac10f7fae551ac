package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/storage"
	"github.com/ice-solution/bniwedding-application/internal/validation"
)

// UploadHandler stores one proof file per request and hands back the
// descriptor the intake form echoes into the final submission. Fallback
// is an optional second backend used when the primary one fails.
type UploadHandler struct {
	store    storage.Storage
	fallback storage.Storage
	maxBytes int64
}

func NewUploadHandler(store, fallback storage.Storage, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		store:    store,
		fallback: fallback,
		maxBytes: maxBytes,
	}
}

// envelopeHeadroom covers multipart boundary and part-header overhead so
// the configured limit applies to the file content, not the whole body.
const envelopeHeadroom = 1 << 20

// Upload handles POST /api/upload with a multipart "file" part.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+envelopeHeadroom)

	file, header, err := r.FormFile("file")
	if err != nil {
		if h.writeTooLarge(w, err) {
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file part"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		if h.writeTooLarge(w, err) {
			return
		}
		writeError(w, err)
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty file"})
		return
	}
	if int64(len(data)) > h.maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Error: fmt.Sprintf("file exceeds the %d MB limit", h.maxBytes/(1<<20)),
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key := buildKey(header.Filename)

	url, err := h.store.Put(r.Context(), key, data, contentType)
	if err != nil && h.fallback != nil {
		logger.Warn("primary storage failed, using fallback", "key", key, "error", err)
		url, err = h.fallback.Put(r.Context(), key, data, contentType)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success: true,
		FileDescriptor: validation.FileDescriptor{
			FileKey:  key,
			FileURL:  url,
			FileName: header.Filename,
			FileSize: int64(len(data)),
			MimeType: contentType,
		},
	})
}

type uploadResponse struct {
	Success bool `json:"success"`
	validation.FileDescriptor
}

func (h *UploadHandler) writeTooLarge(w http.ResponseWriter, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
		Error: fmt.Sprintf("file exceeds the %d MB limit", h.maxBytes/(1<<20)),
	})
	return true
}

// buildKey partitions uploads by date and makes collisions impossible
// regardless of the original file name.
func buildKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	now := time.Now().UTC()
	return fmt.Sprintf("member-files/%s/%d-%s%s",
		now.Format("2006-01-02"),
		now.UnixMilli(),
		uuid.NewString()[:8],
		ext,
	)
}
