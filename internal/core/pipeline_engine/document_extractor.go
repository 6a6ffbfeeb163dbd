package pipeline_engine

import (
	"context"
	"fmt"
	"os"

	"code.sajari.com/docconv"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

var _ core.DocumentExtractor = (*DocconvExtractor)(nil)

var mimeByType = map[string]string{
	models.FileTypePDF:  "application/pdf",
	models.FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	models.FileTypePPTX: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// DocconvExtractor implements core.DocumentExtractor using sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ExtractText converts the file at path into plain text. The declared
// fileType picks the parser; types outside pdf/docx/pptx fail with
// models.ErrUnsupportedType before any parsing happens.
func (e *DocconvExtractor) ExtractText(ctx context.Context, path string, fileType string) (string, error) {
	mime, ok := mimeByType[fileType]
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnsupportedType, fileType)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	res, err := docconv.Convert(f, mime, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", fileType, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return res.Body, nil
}
