package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/core/pipeline_engine"
	"github.com/studyme-ai/studyme/internal/models"
)

var _ core.Summarizer = (*SummaryService)(nil)

var summaryPrompts = map[string]string{
	models.ModeBrief:    "Summarize the following text in two or three sentences. Keep only the essential points.",
	models.ModeStandard: "Summarize the following text in one concise paragraph, covering the main points and key details.",
	models.ModeDetailed: "Summarize the following text thoroughly. Cover every main point, important detail and core idea, in well-structured paragraphs.",
}

// SummaryService summarizes large text by chunking it and summarizing each
// chunk independently. Per-chunk calls run concurrently but the final summary
// is the space-joined concatenation in original chunk order.
type SummaryService struct {
	llm           core.LLMProvider
	maxChunkChars int
	workers       int
}

func NewSummaryService(llm core.LLMProvider, maxChunkChars, workers int) *SummaryService {
	if maxChunkChars <= 0 {
		maxChunkChars = pipeline_engine.DefaultMaxChunkChars
	}
	if workers <= 0 {
		workers = 4
	}
	return &SummaryService{llm: llm, maxChunkChars: maxChunkChars, workers: workers}
}

func (s *SummaryService) Summarize(ctx context.Context, text string, mode string) (string, error) {
	prompt, ok := summaryPrompts[mode]
	if !ok {
		prompt = summaryPrompts[models.ModeStandard]
	}

	chunks := pipeline_engine.Chunk(text, s.maxChunkChars)
	if len(chunks) == 0 {
		return "", nil
	}

	// Index-addressed output keeps the joined summary in chunk order no
	// matter how the goroutines are scheduled.
	out := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			summary, err := s.llm.Generate(gctx, prompt, chunk)
			if err != nil {
				return fmt.Errorf("summarize chunk %d: %w", i, err)
			}
			out[i] = strings.TrimSpace(summary)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(out, " ")), nil
}
