package core

import (
	"context"

	"github.com/studyme-ai/studyme/internal/models"
)

// The enrichment stages consumed by the pipeline. Each one calls an unreliable
// external service and may fail; the pipeline isolates those failures.

type Summarizer interface {
	Summarize(ctx context.Context, text string, mode string) (string, error)
}

type Explainer interface {
	Explain(ctx context.Context, text string) (*models.Explanation, error)
}

type Searcher interface {
	Search(ctx context.Context, keyword string) ([]models.SearchResult, error)
}

type FlashcardGenerator interface {
	Flashcards(ctx context.Context, text string) (*models.FlashcardSet, error)
}

// ResultCache deduplicates pipeline runs for identical extracted text. Store
// is best effort; a false return is logged by the caller and swallowed.
type ResultCache interface {
	Lookup(text string) (*models.PipelineResult, bool)
	Store(text string, result *models.PipelineResult) bool
}
