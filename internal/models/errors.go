package models

import "errors"

// Fatal request errors. Everything else the pipeline hits is isolated to the
// failing stage and degrades to a fallback value.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoText          = errors.New("no text extracted from document")
)
