package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"examprep-ai/internal/config"
	"examprep-ai/internal/eval"
)

func main() {
	baseURL := flag.String("url", "http://localhost:4000", "base URL of the running answering API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	bank, err := eval.LoadQuestions(cfg.QuestionsPath)
	if err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}

	evaluator := eval.NewEvaluator(*baseURL, nil)
	report, err := evaluator.Run(context.Background(), bank)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	for _, chapter := range report.Chapters {
		accuracy := 0.0
		if chapter.Total > 0 {
			accuracy = float64(chapter.Correct) / float64(chapter.Total) * 100
		}
		fmt.Printf("%s: %d/%d (%.2f%%)\n", chapter.Chapter, chapter.Correct, chapter.Total, accuracy)
	}
	fmt.Printf("TOTAL: %d/%d (%.2f%%)\n", report.Correct, report.Total, report.Accuracy())

	path, err := eval.WriteWrongAnswers(report, cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to write wrong answers: %v", err)
	}
	if path != "" {
		fmt.Printf("Saved %d wrong answers to %s\n", len(report.WrongAnswers), path)
	}
}
