package core

import "context"

// DocumentExtractor turns an uploaded file into plain text. The fileType hint
// ("pdf", "docx", "pptx") selects the parsing strategy; an unsupported type is
// an error, not a fallback.
type DocumentExtractor interface {
	ExtractText(ctx context.Context, path string, fileType string) (string, error)
}
