package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

type DocumentHandler struct {
	processor core.DocumentProcessor
}

func NewDocumentHandler(processor core.DocumentProcessor) *DocumentHandler {
	return &DocumentHandler{processor: processor}
}

// ProcessDocument handles the one logical operation of the service: accept an
// uploaded pdf/docx/pptx, run it through the enrichment pipeline, and return
// the merged result. Fatal pipeline errors map to distinct statuses so the
// caller can tell a bad upload from anything else; rate limiting was already
// decided by the middleware before this handler ran.
func (h *DocumentHandler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	// Reject unsupported types before anything touches disk or a stage.
	fileType := typeFromFilename(header.Filename)
	if fileType == "" {
		writeError(w, http.StatusBadRequest, models.ErrUnsupportedType.Error())
		return
	}

	opts := models.ProcessOptions{
		GenerateFlashcards: r.FormValue("generate_flashcards") == "true",
		Mode:               r.FormValue("mode"),
	}
	if !models.ValidMode(opts.Mode) {
		writeError(w, http.StatusBadRequest, "mode must be brief, standard or detailed")
		return
	}

	path, cleanup, err := saveTemp(file, fileType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("saving upload failed: %v", err))
		return
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	result, err := h.processor.ProcessFile(ctx, path, fileType, opts)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrNoText):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("processing failed: %v", err))
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
