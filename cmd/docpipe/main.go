package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/entity"
	"github.com/finwerk/docpipe/internal/export"
	"github.com/finwerk/docpipe/internal/extract"
	"github.com/finwerk/docpipe/internal/llm/openai"
	"github.com/finwerk/docpipe/internal/pipeline"
	"github.com/finwerk/docpipe/internal/resilience"
	"github.com/finwerk/docpipe/internal/spreadsheet"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// itemView is the JSON shape printed per processed file.
type itemView struct {
	ID           string                `json:"id"`
	Source       string                `json:"source"`
	QualityScore *int                  `json:"quality_score,omitempty"`
	Document     *entity.Document      `json:"document,omitempty"`
	Table        *entity.TabularResult `json:"table,omitempty"`
	Error        string                `json:"error,omitempty"`
}

func main() {
	var (
		out      = flag.String("out", "", "output XLSX file path (optional)")
		noRemote = flag.Bool("no-remote", false, "skip the remote OCR tier even when credentials are present")
	)
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		printError("Usage: docpipe [flags] <file.pdf|file.xlsx> ...\n")
		os.Exit(1)
	}

	// .env is optional; real env vars win
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	preferRemote := cfg.HasAWSCredentials() && !*noRemote
	if !preferRemote {
		logger.Warn("remote OCR tier disabled; using local extraction only",
			"has_credentials", cfg.HasAWSCredentials())
	}

	ctx := context.Background()
	exec := resilience.NewExecutor(resilience.DefaultConfig(), logger)

	var remote extract.TextExtractionService
	if preferRemote {
		remote = extract.NewRemoteExtractor(extract.NewTextractClient(cfg.AWS), exec, cfg.AWS.Timeout, logger)
	}
	gateway := extract.NewGateway(remote, extract.NewLocalExtractor(logger), logger)

	gen := openai.NewClient(openai.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, exec, logger)

	batch := pipeline.NewBatch(
		gateway,
		pipeline.NewProcessor(gen, logger),
		spreadsheet.NewParser(logger),
		preferRemote,
		logger,
	)

	inputs := make([]pipeline.FileInput, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			printError("Error: read %s: %v\n", path, err)
			os.Exit(1)
		}
		inputs = append(inputs, pipeline.FileInput{Name: path, Data: data})
	}

	items := batch.Run(ctx, inputs)

	views := make([]itemView, 0, len(items))
	failed := 0
	for _, item := range items {
		view := itemView{
			ID:       item.ID.String(),
			Source:   item.SourceName,
			Document: item.Document,
			Table:    item.Table,
		}
		if item.Extraction != nil {
			score := item.Extraction.QualityScore
			view.QualityScore = &score
		}
		if item.Err != nil {
			view.Error = item.Err.Error()
			failed++
		}
		views = append(views, view)
	}

	output, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		printError("Error: encode results: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))

	if *out != "" {
		workbook, err := export.NewService(logger).BuildWorkbook(items)
		if err != nil {
			printError("Error: build workbook: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, workbook, 0o644); err != nil {
			printError("Error: write %s: %v\n", *out, err)
			os.Exit(1)
		}
		logger.Info("results exported", "path", *out)
	}

	logger.Info("batch finished", "total", len(items), "failed", failed)
}
