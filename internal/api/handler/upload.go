// Package handler contains the HTTP handlers for the segmentation API and
// the HTML pages.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/segmenta/segmenta/internal/api/response"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Input rejection reasons. These are user errors, not processing failures.
var (
	errNoFile        = errors.New("no file part in request")
	errEmptyFilename = errors.New("no selected file")
	errBadExtension  = errors.New("invalid file type, please upload a CSV")
)

// csvUpload extracts the uploaded CSV from the multipart form. Only the
// .csv extension is accepted.
func csvUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, errNoFile
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errNoFile
	}
	if strings.TrimSpace(header.Filename) == "" {
		file.Close()
		return nil, nil, errEmptyFilename
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".csv" {
		file.Close()
		return nil, nil, errBadExtension
	}
	return file, header, nil
}

// writeInputError maps an input rejection to a user-facing 400. Returns
// false when err is not an input error.
func writeInputError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, errNoFile):
		response.Error(w, http.StatusBadRequest, "NO_FILE", errNoFile.Error(), nil)
	case errors.Is(err, errEmptyFilename):
		response.Error(w, http.StatusBadRequest, "EMPTY_FILENAME", errEmptyFilename.Error(), nil)
	case errors.Is(err, errBadExtension):
		response.Error(w, http.StatusBadRequest, "INVALID_FILE_TYPE", errBadExtension.Error(), nil)
	default:
		return false
	}
	return true
}

// saveUpload keeps a copy of the upload under dir, prefixed with a short
// unique id to avoid collisions, and rewinds the file for parsing. Saving
// is best effort: a failure is logged, not surfaced.
func saveUpload(dir string, file multipart.File, originalName string) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("create upload dir failed", "dir", dir, "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s", uuid.NewString()[:8], filepath.Base(originalName))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		slog.Warn("save upload failed", "file", name, "error", err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		slog.Warn("save upload failed", "file", name, "error", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		slog.Warn("rewind upload failed", "file", name, "error", err)
	}
}
