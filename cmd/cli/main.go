package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pep299/update-simplifier/internal/config"
	"github.com/pep299/update-simplifier/internal/llm"
	"github.com/pep299/update-simplifier/internal/logging"
	"github.com/pep299/update-simplifier/internal/simplifier"
)

func main() {
	text := flag.String("text", "", "Technical update to simplify (reads stdin when empty)")
	audience := flag.String("audience", "", "Write a plain-text brief for Executive, Manager, Client or Intern instead")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg)

	input := *text
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			slog.Error("failed to read stdin", "error", err)
			os.Exit(1)
		}
		input = string(data)
	}

	generator, err := llm.New(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.BaseURL(),
		Model:    cfg.Model(),
		Timeout:  cfg.LLMTimeout,
	})
	if err != nil {
		slog.Error("failed to create model client", "error", err)
		os.Exit(1)
	}
	svc := simplifier.New(generator, nil)

	ctx := context.Background()
	var out interface{}
	if *audience != "" {
		out, err = svc.Brief(ctx, input, simplifier.ParseAudience(*audience))
	} else {
		out, err = svc.Simplify(ctx, input)
	}
	if err != nil {
		slog.Error("simplification failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		slog.Error("failed to write result", "error", err)
		os.Exit(1)
	}
}
