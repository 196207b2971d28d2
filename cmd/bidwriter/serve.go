package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bidwriter/internal/analysis"
	"bidwriter/internal/auth"
	"bidwriter/internal/config"
	"bidwriter/internal/export"
	"bidwriter/internal/extract"
	"bidwriter/internal/generation"
	"bidwriter/internal/llm"
	"bidwriter/internal/logging"
	"bidwriter/internal/orchestrator"
	"bidwriter/internal/server"
	"bidwriter/internal/task"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.SetLevel(logging.ParseLevel(cfg.Log.Level))
	logger := logging.NewComponentLogger("Main")
	logger.Info("starting bidwriter %s on %s", version, cfg.Server.Addr())

	chatClient := llm.NewChatClient(llm.Config{
		APIKey:           cfg.LLM.APIKey,
		BaseURL:          cfg.LLM.BaseURL,
		Model:            cfg.LLM.Model,
		Timeout:          cfg.LLM.Timeout(),
		MaxResponseBytes: cfg.LLM.MaxResponseBytes,
	}, logging.NewComponentLogger("LLM"))

	analyzer := analysis.NewAnalyzer(
		llm.Instrumented(chatClient, "analysis"),
		cfg.LLM.MaxInputTokens,
		logging.NewComponentLogger("Analysis"),
	)
	generator := generation.NewGenerator(
		llm.Instrumented(chatClient, "generation"),
		logging.NewComponentLogger("Generation"),
	)
	editor := generation.NewEditor(
		llm.Instrumented(chatClient, "edit"),
		logging.NewComponentLogger("Edit"),
	)

	extractor := extract.NewDocumentExtractor(logging.NewComponentLogger("Extract"))
	parsingTasks := task.NewRegistry(cfg.Tasks.MaxEntries, cfg.Tasks.TaskTTL())
	generationTasks := task.NewRegistry(cfg.Tasks.MaxEntries, cfg.Tasks.TaskTTL())
	orch := orchestrator.New(extractor, analyzer, generator, parsingTasks, generationTasks, logging.NewComponentLogger("Orchestrator"))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenDuration(), cfg.Auth.RefreshTokenDuration())
	authService := auth.NewService(cfg.Auth.Users, tokens, logging.NewComponentLogger("Auth"))
	store := export.NewStore(cfg.Storage.UploadDir, logging.NewComponentLogger("Export"))

	srv := server.New(cfg, orch, editor, authService, tokens, store, logging.NewComponentLogger("Server"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(srv.Start)
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return group.Wait()
}
