package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

// TextHandler exposes the individual pipeline stages and the raw parsers as
// standalone endpoints, for callers that already hold extracted text.
type TextHandler struct {
	summarizer core.Summarizer
	explainer  core.Explainer
	flashcards core.FlashcardGenerator
	extractor  core.DocumentExtractor
}

func NewTextHandler(s core.Summarizer, e core.Explainer, f core.FlashcardGenerator, x core.DocumentExtractor) *TextHandler {
	return &TextHandler{summarizer: s, explainer: e, flashcards: f, extractor: x}
}

type textPayload struct {
	Text string `json:"text"`
	Mode string `json:"mode,omitempty"`
}

func (p *textPayload) validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return errors.New("text cannot be empty or just whitespace")
	}
	if len(p.Text) < 10 || len(p.Text) > 100000 {
		return errors.New("text must be between 10 and 100000 characters")
	}
	if !models.ValidMode(p.Mode) {
		return errors.New("mode must be brief, standard or detailed")
	}
	return nil
}

func decodePayload(r *http.Request) (*textPayload, error) {
	var p textPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *TextHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	summary, err := h.summarizer.Summarize(ctx, p.Text, p.Mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("summarization failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *TextHandler) Explain(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	expl, err := h.explainer.Explain(ctx, p.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("explanation failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, expl)
}

func (h *TextHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	set, err := h.flashcards.Flashcards(ctx, p.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("flashcard generation failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *TextHandler) ParsePDF(w http.ResponseWriter, r *http.Request) {
	h.parse(w, r, models.FileTypePDF)
}

func (h *TextHandler) ParseDocx(w http.ResponseWriter, r *http.Request) {
	h.parse(w, r, models.FileTypeDOCX)
}

func (h *TextHandler) ParsePptx(w http.ResponseWriter, r *http.Request) {
	h.parse(w, r, models.FileTypePPTX)
}

// parse extracts text only, without running any enrichment stage.
func (h *TextHandler) parse(w http.ResponseWriter, r *http.Request, fileType string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	path, cleanup, err := saveTemp(file, fileType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("saving upload failed: %v", err))
		return
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	text, err := h.extractor.ExtractText(ctx, path, fileType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to parse %s: %v", fileType, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
