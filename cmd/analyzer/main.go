package main

// Run a batch over a directory served by the tool server:
//   go run ./cmd/analyzer [directory]

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"analyzer-backend/internal/batch"
	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/llm/openai"
	"analyzer-backend/internal/reader"
	"analyzer-backend/internal/shared/config"
	"analyzer-backend/internal/shared/telemetry"
	"analyzer-backend/internal/tools"
)

func main() {
	cfg := config.Load()

	directory := cfg.DocumentRoot
	if len(os.Args) > 1 && strings.TrimSpace(os.Args[1]) != "" {
		directory = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := tools.NewClient(cfg.ToolServerURL)
	if err != nil {
		log.Fatalf("tool client: %v", err)
	}

	runner := &batch.Runner{
		Lister:     client,
		Reader:     &reader.Adapter{Source: client, ChunkSize: cfg.ChunkSize},
		Saver:      client,
		Summarizer: buildSummarizer(cfg),
		Strict:     cfg.StrictValidation,
	}

	result, err := runner.Run(ctx, directory)
	if err != nil {
		telemetry.Error("batch.aborted", map[string]any{
			"run_id":     result.RunID,
			"directory":  directory,
			"error":      err.Error(),
			"total":      result.Total,
			"completed":  result.Completed,
			"failed":     result.Failed,
			"unresolved": result.Unresolved,
		})
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}

	telemetry.Info("batch.finished", map[string]any{
		"run_id":     result.RunID,
		"directory":  directory,
		"total":      result.Total,
		"completed":  result.Completed,
		"failed":     result.Failed,
		"unresolved": result.Unresolved,
	})
	if result.Unresolved > 0 {
		os.Exit(1)
	}
}

func buildSummarizer(cfg config.Config) llm.Summarizer {
	switch strings.ToLower(cfg.LLMProvider) {
	case "openai":
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			log.Printf("openai summarizer unavailable, documents will be recorded as failed: %v", err)
			return llm.PlaceholderSummarizer{}
		}
		return client
	default:
		log.Printf("unknown LLM_PROVIDER %q, documents will be recorded as failed", cfg.LLMProvider)
		return llm.PlaceholderSummarizer{}
	}
}
