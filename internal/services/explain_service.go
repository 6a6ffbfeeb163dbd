package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

var _ core.Explainer = (*ExplainService)(nil)

const explainPrompt = `Process the text in three ways and return the output as JSON with the keys "bullets", "explanation" and "Notes".

1. "bullets": the most relevant key terms, important concepts and main points of the text, as a plain list of terms. Do not explain them.
2. "explanation": a detailed breakdown of all main points and core ideas, with two or three examples per part. It should be simple enough for a beginner and detailed enough for an advanced student. Expand on key ideas instead of summarizing briefly.
3. "Notes": expressive, exam-oriented notes covering the most important concepts and points, as an optimized list.

Return strictly raw JSON without Markdown formatting, shaped like:
{"bullets": ["key term 1", "key term 2"], "explanation": "Full detailed explanation here.", "Notes": "Full detailed notes here."}`

// ExplainService asks the model for bullets, an explanation and study notes
// in one strict-JSON call. A response that does not parse is a stage error.
type ExplainService struct {
	llm core.LLMProvider
}

func NewExplainService(llm core.LLMProvider) *ExplainService {
	return &ExplainService{llm: llm}
}

func (s *ExplainService) Explain(ctx context.Context, text string) (*models.Explanation, error) {
	answer, err := s.llm.Generate(ctx, explainPrompt, text)
	if err != nil {
		return nil, err
	}

	var expl models.Explanation
	if err := json.Unmarshal([]byte(stripJSONFences(answer)), &expl); err != nil {
		return nil, fmt.Errorf("explanation is not valid JSON: %w", err)
	}
	return &expl, nil
}

// stripJSONFences removes Markdown code fences the model sometimes wraps
// around its JSON output despite the prompt.
func stripJSONFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
