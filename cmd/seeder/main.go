package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/paperflow/ai/mock"
	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/storage"
	"github.com/poiesic/paperflow/storage/badger"
)

// Fixture titles for local digest testing without touching the arXiv API.
var titles = []string{
	"Scaling Laws Revisited for Sparse Language Models",
	"A Unified Benchmark for Long-Context Retrieval",
	"Speech Tokenizers Are Secretly Audio Codecs",
	"Direct Preference Optimization Without Reference Models",
	"Diffusion Policies for Dexterous Manipulation",
	"Video Generation with Temporal Consistency Priors",
	"Grounded Vision-Language Agents for Web Navigation",
	"Quantization-Aware Training at the Trillion Token Scale",
	"Curriculum Distillation for Small Reasoning Models",
	"Multimodal Chain-of-Thought with Interleaved Sketches",
	"Retrieval Heads Explain Long-Context Factuality",
	"Self-Correcting Code Generation with Execution Feedback",
	"Legal Document Summarization Under Citation Constraints",
	"Medical Report Generation with Anatomy-Aware Attention",
	"Low-Resource Speech Recognition via Cross-Lingual Transfer",
}

func main() {
	dbPath := flag.String("db", "paperflow-data", "Path to BadgerDB database directory")
	dateStr := flag.String("date", "", "Day to seed (YYYY-MM-DD, default today UTC)")
	count := flag.Int("count", len(titles), "Number of fixture papers to seed")
	flag.Parse()

	if err := run(*dbPath, *dateStr, *count); err != nil {
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
}

func run(dbPath, dateStr string, count int) error {
	ctx := context.Background()

	date := time.Now().UTC()
	if dateStr != "" {
		parsed, err := core.ParseDayKey(dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		date = parsed
	}
	day := core.DayKey(date)

	if count < 1 || count > len(titles) {
		count = len(titles)
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	statuses := badger.NewStatusRepository(backend)
	papersRepo := badger.NewPaperRepository(backend)
	classifications := badger.NewClassificationRepository(backend)

	papers := make([]*core.Paper, count)
	for i := 0; i < count; i++ {
		arxivId := fmt.Sprintf("2503.9%04d", i)
		papers[i] = &core.Paper{
			ArxivId:   arxivId,
			Title:     titles[i],
			Summary:   "Seeded fixture paper for local testing.",
			URL:       "http://arxiv.org/abs/" + arxivId + "v1",
			Category:  "cs.CL",
			Published: date,
		}
	}

	persisted, err := papersRepo.AddPapers(ctx, day, papers...)
	if err != nil {
		return fmt.Errorf("failed to store papers: %w", err)
	}

	ids := make([]core.ID, len(persisted))
	for i, paper := range persisted {
		ids[i] = paper.Id
	}
	if _, err := papersRepo.AddFetchBatch(ctx, &storage.FetchBatch{
		Day:      day,
		Category: "cs.CL",
		PaperIds: ids,
	}); err != nil {
		return fmt.Errorf("failed to store fetch batch: %w", err)
	}

	// Deterministic labels from the mock classifier keep seeded digests stable.
	classifier := mock.NewMockClassifier()
	results := make([]*core.Classification, 0, len(persisted))
	for _, paper := range persisted {
		result, err := classifier.Classify(ctx, *paper)
		if err != nil {
			return err
		}
		results = append(results, &result)
	}
	if err := classifications.AddClassifications(ctx, results...); err != nil {
		return fmt.Errorf("failed to store classifications: %w", err)
	}

	counts := core.Counts{Attempted: len(persisted), Succeeded: len(persisted)}
	if err := statuses.MarkDone(ctx, day, core.StageFetch, counts); err != nil {
		return fmt.Errorf("failed to mark fetch done: %w", err)
	}
	if err := statuses.MarkDone(ctx, day, core.StageClassify, counts); err != nil {
		return fmt.Errorf("failed to mark classify done: %w", err)
	}

	slog.Info("seeded fixture papers",
		"db", dbPath,
		"day", day,
		"papers", len(persisted))
	return nil
}
