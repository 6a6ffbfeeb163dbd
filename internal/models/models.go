package models

// Supported upload types. Anything else is rejected before the pipeline runs.
const (
	FileTypePDF  = "pdf"
	FileTypeDOCX = "docx"
	FileTypePPTX = "pptx"
)

// Summary modes accepted by the summarization stage.
const (
	ModeBrief    = "brief"
	ModeStandard = "standard"
	ModeDetailed = "detailed"
)

// Fallback values substituted when a stage fails. The request still succeeds;
// these markers are what the caller sees in place of the real output.
const (
	FallbackSummary     = "summary unavailable"
	FallbackExplanation = "explanation unavailable"
	FallbackNotes       = "Notes not available"
	SearchDidNotRun     = "search did not run"
)

// ProcessOptions are the caller-facing knobs for one pipeline run.
type ProcessOptions struct {
	GenerateFlashcards bool
	Mode               string // brief | standard | detailed; empty means standard
}

// ValidMode reports whether mode is one of the accepted summary modes.
// The empty string is valid and means ModeStandard.
func ValidMode(mode string) bool {
	switch mode {
	case "", ModeBrief, ModeStandard, ModeDetailed:
		return true
	}
	return false
}

// Explanation is the payload of a successful explanation stage.
type Explanation struct {
	Bullets     []string `json:"bullets"`
	Explanation string   `json:"explanation"`
	Notes       string   `json:"Notes"`
}

// SearchResult is one web hit for a keyword.
type SearchResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Flashcard is a question/answer pair.
type Flashcard struct {
	Question string `json:"Question"`
	Answer   string `json:"answer"`
}

// MCQItem is a multiple-choice question with four options.
type MCQItem struct {
	Question      string   `json:"Question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// FlashcardSet groups the two flashcard formats.
type FlashcardSet struct {
	Cards []Flashcard `json:"Cards"`
	MCQ   []MCQItem   `json:"MCQ"`
}

// SummaryStage is the summarization outcome. When OK is false, Text holds
// FallbackSummary.
type SummaryStage struct {
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

// ExplanationStage is the explanation outcome. Payload is nil on fallback.
type ExplanationStage struct {
	OK       bool         `json:"ok"`
	Payload  *Explanation `json:"payload,omitempty"`
	Fallback string       `json:"fallback,omitempty"`
}

// SearchStage is the web-search outcome. Ran is false when the stage was
// skipped because the explanation produced no usable bullets; Note then
// carries SearchDidNotRun.
type SearchStage struct {
	Ran     bool                      `json:"ran"`
	Results map[string][]SearchResult `json:"results,omitempty"`
	Note    string                    `json:"note,omitempty"`
}

// FlashcardStage is the flashcard outcome. A failed generation degrades to an
// empty set with OK false rather than aborting the request.
type FlashcardStage struct {
	OK    bool          `json:"ok"`
	Cards *FlashcardSet `json:"cards"`
}

// PipelineResult aggregates the stage outputs for one document. It is partial
// by design: every stage after extraction may carry a fallback instead of real
// content, and Flashcards is present only when the caller asked for it.
type PipelineResult struct {
	Summary     SummaryStage     `json:"summary"`
	Explanation ExplanationStage `json:"explanation"`
	Notes       string           `json:"notes"`
	Search      SearchStage      `json:"search_results"`
	Flashcards  *FlashcardStage  `json:"flashcards,omitempty"`
}
