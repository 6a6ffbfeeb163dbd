package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

var _ core.FlashcardGenerator = (*FlashcardService)(nil)

const flashcardPrompt = `Go through the whole text and extract the most important concepts, definitions, examples, facts and details, the way a teacher setting a test would. Produce two kinds of questions and return the output as JSON with the keys "Cards" and "MCQ". Give at least 20 Cards and 20 MCQs if the content allows.

1. "Cards": flashcard-style question/answer pairs.
2. "MCQ": questions with four options taken from the text; the real answer is one of the options, at a randomized position.

Return strictly raw JSON without Markdown formatting, shaped like:
{"Cards": [{"Question": "What is X?", "answer": "X is ..."}], "MCQ": [{"Question": "Question here", "options": ["Option1", "Option2", "Option3", "Option4"], "correct_answer": "Option3"}]}`

// FlashcardService generates question/answer cards and multiple-choice
// questions from the full extracted text.
type FlashcardService struct {
	llm core.LLMProvider
}

func NewFlashcardService(llm core.LLMProvider) *FlashcardService {
	return &FlashcardService{llm: llm}
}

func (s *FlashcardService) Flashcards(ctx context.Context, text string) (*models.FlashcardSet, error) {
	answer, err := s.llm.Generate(ctx, flashcardPrompt, text)
	if err != nil {
		return nil, err
	}

	var set models.FlashcardSet
	if err := json.Unmarshal([]byte(stripJSONFences(answer)), &set); err != nil {
		return nil, fmt.Errorf("flashcards are not valid JSON: %w", err)
	}
	if set.Cards == nil {
		set.Cards = []models.Flashcard{}
	}
	if set.MCQ == nil {
		set.MCQ = []models.MCQItem{}
	}
	return &set, nil
}
