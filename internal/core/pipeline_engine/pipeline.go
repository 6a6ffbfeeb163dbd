package pipeline_engine

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/logger"
	"github.com/studyme-ai/studyme/internal/models"
)

var _ core.DocumentProcessor = (*Pipeline)(nil)

// Pipeline sequences extraction, summarization, explanation, web search and
// flashcard generation over one uploaded document. Extraction failures abort
// the request; every later stage is individually fault-isolated and degrades
// to a documented fallback value instead of failing the run.
type Pipeline struct {
	extractor  core.DocumentExtractor
	summarizer core.Summarizer
	explainer  core.Explainer
	searcher   core.Searcher
	flashcards core.FlashcardGenerator
	cache      core.ResultCache

	// stageTimeout bounds every single call to an external stage.
	stageTimeout time.Duration
}

func NewPipeline(
	extractor core.DocumentExtractor,
	summarizer core.Summarizer,
	explainer core.Explainer,
	searcher core.Searcher,
	flashcards core.FlashcardGenerator,
	resultCache core.ResultCache,
	stageTimeout time.Duration,
) *Pipeline {
	if stageTimeout <= 0 {
		stageTimeout = 60 * time.Second
	}
	return &Pipeline{
		extractor:    extractor,
		summarizer:   summarizer,
		explainer:    explainer,
		searcher:     searcher,
		flashcards:   flashcards,
		cache:        resultCache,
		stageTimeout: stageTimeout,
	}
}

// ProcessFile runs the whole pipeline for the file at path. Fatal outcomes:
// models.ErrUnsupportedType, models.ErrNoText, extraction errors, and context
// cancellation. Everything else comes back as a merged PipelineResult whose
// stage fields carry either real output or their fallback markers.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, fileType string, opts models.ProcessOptions) (*models.PipelineResult, error) {
	log := logger.FromContext(ctx)

	text, err := p.extractor.ExtractText(ctx, path, fileType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrNoText
	}

	if cached, ok := p.cache.Lookup(text); ok {
		log.Info("pipeline cache hit", zap.String("file_type", fileType))
		return cached, nil
	}

	mode := opts.Mode
	if mode == "" {
		mode = models.ModeStandard
	}

	res := &models.PipelineResult{}
	p.runSummarize(ctx, log, res, text, mode)
	expl := p.runExplain(ctx, log, res, text)
	p.runSearch(ctx, log, res, expl)
	if opts.GenerateFlashcards {
		p.runFlashcards(ctx, log, res, text)
	}

	// A cancelled request discards partial work instead of caching it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ok := p.cache.Store(text, res); !ok {
		log.Warn("cache store failed", zap.String("file_type", fileType))
	}
	return res, nil
}

func (p *Pipeline) runSummarize(ctx context.Context, log *zap.Logger, res *models.PipelineResult, text, mode string) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	summary, err := p.summarizer.Summarize(sctx, text, mode)
	if err != nil || strings.TrimSpace(summary) == "" {
		log.Warn("summarization failed", zap.String("stage", "summarize"), zap.Error(err))
		res.Summary = models.SummaryStage{OK: false, Text: models.FallbackSummary}
		return
	}
	res.Summary = models.SummaryStage{OK: true, Text: summary}
}

// runExplain fills the explanation stage and the derived Notes field. It
// returns the payload so the search stage can read the bullets.
func (p *Pipeline) runExplain(ctx context.Context, log *zap.Logger, res *models.PipelineResult, text string) *models.Explanation {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	expl, err := p.explainer.Explain(sctx, text)
	if err != nil || expl == nil {
		log.Warn("explanation failed", zap.String("stage", "explain"), zap.Error(err))
		res.Explanation = models.ExplanationStage{OK: false, Fallback: models.FallbackExplanation}
		res.Notes = models.FallbackNotes
		return nil
	}

	res.Explanation = models.ExplanationStage{OK: true, Payload: expl}
	res.Notes = expl.Notes
	if strings.TrimSpace(expl.Notes) == "" {
		res.Notes = models.FallbackNotes
	}
	return expl
}

// runSearch queries the web once per unique bullet term. It only runs when
// the explanation succeeded with at least one bullet; otherwise the stage is
// skipped with an explicit sentinel. A failing term is logged and left empty
// rather than sinking the stage.
func (p *Pipeline) runSearch(ctx context.Context, log *zap.Logger, res *models.PipelineResult, expl *models.Explanation) {
	if expl == nil || len(expl.Bullets) == 0 {
		res.Search = models.SearchStage{Ran: false, Note: models.SearchDidNotRun}
		return
	}

	results := make(map[string][]models.SearchResult)
	seen := make(map[string]struct{})
	for _, term := range expl.Bullets {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
		hits, err := p.searcher.Search(sctx, term)
		cancel()
		if err != nil {
			log.Warn("web search failed", zap.String("stage", "search"), zap.String("term", term), zap.Error(err))
			results[term] = []models.SearchResult{}
			continue
		}
		results[term] = hits
	}

	if len(results) == 0 {
		res.Search = models.SearchStage{Ran: false, Note: models.SearchDidNotRun}
		return
	}
	res.Search = models.SearchStage{Ran: true, Results: results}
}

func (p *Pipeline) runFlashcards(ctx context.Context, log *zap.Logger, res *models.PipelineResult, text string) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	set, err := p.flashcards.Flashcards(sctx, text)
	if err != nil || set == nil {
		log.Warn("flashcard generation failed", zap.String("stage", "flashcards"), zap.Error(err))
		res.Flashcards = &models.FlashcardStage{
			OK:    false,
			Cards: &models.FlashcardSet{Cards: []models.Flashcard{}, MCQ: []models.MCQItem{}},
		}
		return
	}
	res.Flashcards = &models.FlashcardStage{OK: true, Cards: set}
}
