package core

import (
	"context"

	"github.com/studyme-ai/studyme/internal/models"
)

// DocumentProcessor is the single boundary the transport layer calls: one
// uploaded file in, one merged pipeline result (or a fatal error) out.
type DocumentProcessor interface {
	ProcessFile(ctx context.Context, path string, fileType string, opts models.ProcessOptions) (*models.PipelineResult, error)
}
