package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/studyme-ai/studyme/internal/models"
)

const maxUploadBytes = 50 << 20

// typeFromFilename maps the upload's extension to a supported file type, or
// returns "" for anything the pipeline cannot handle.
func typeFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.FileTypePDF
	case ".docx":
		return models.FileTypeDOCX
	case ".pptx":
		return models.FileTypePPTX
	}
	return ""
}

// saveTemp copies the upload to a uuid-named temp file. The returned cleanup
// must run on every exit path; the temp file is owned exclusively by this
// request.
func saveTemp(file multipart.File, fileType string) (string, func(), error) {
	path := filepath.Join(os.TempDir(), "studyme-"+uuid.NewString()+"."+fileType)
	dst, err := os.Create(path)
	if err != nil {
		return "", nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
