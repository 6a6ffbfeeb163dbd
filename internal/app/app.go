package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studyme-ai/studyme/internal/cache"
	"github.com/studyme-ai/studyme/internal/config"
	"github.com/studyme-ai/studyme/internal/core/llm"
	"github.com/studyme-ai/studyme/internal/core/pipeline_engine"
	"github.com/studyme-ai/studyme/internal/core/search"
	"github.com/studyme-ai/studyme/internal/logger"
	"github.com/studyme-ai/studyme/internal/ratelimit"
	"github.com/studyme-ai/studyme/internal/services"
)

type App struct {
	Log      *zap.Logger
	LLM      *llm.GeminiLLM
	Cache    *cache.FileCache
	Limiter  *ratelimit.Limiter
	Pipeline *pipeline_engine.Pipeline
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg.CheckEnvironment(log)

	llmProvider, err := llm.NewGeminiLLM(ctx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the LLM provider: %w", err)
	}

	resultCache, err := cache.New(cfg.CacheDir, cfg.CacheTTL, log)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the result cache: %w", err)
	}

	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	go limiter.RunSweeper(ctx, cfg.RateLimitWindow)

	extractor := pipeline_engine.NewDocconvExtractor(false)
	summarizer := services.NewSummaryService(llmProvider, cfg.MaxChunkChars, cfg.SummaryWorkers)
	explainer := services.NewExplainService(llmProvider)
	flashcards := services.NewFlashcardService(llmProvider)
	searcher := &search.Client{APIKey: cfg.SerpAPIKey}

	pipeline := pipeline_engine.NewPipeline(
		extractor, summarizer, explainer, searcher, flashcards, resultCache, cfg.StageTimeout,
	)

	server := NewServer(cfg, log, limiter, pipeline, summarizer, explainer, flashcards, extractor)

	return &App{
		Log:      log,
		LLM:      llmProvider,
		Cache:    resultCache,
		Limiter:  limiter,
		Pipeline: pipeline,
		Server:   server,
	}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
}
