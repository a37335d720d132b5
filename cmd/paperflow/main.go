// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/paperflow/ai"
	"github.com/poiesic/paperflow/ai/openai"
	"github.com/poiesic/paperflow/classify"
	"github.com/poiesic/paperflow/config"
	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/notify"
	_ "github.com/poiesic/paperflow/notify/feishu"
	"github.com/poiesic/paperflow/pipeline"
	"github.com/poiesic/paperflow/slim"
	"github.com/poiesic/paperflow/source"
	_ "github.com/poiesic/paperflow/source/arxiv"
	"github.com/poiesic/paperflow/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "paperflow",
		Usage: "Daily paper pipeline: fetch, classify, deliver",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Path to the YAML profile",
				Value:   "paperflow.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the pipeline for one day",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Logical date to process (YYYY-MM-DD, default today UTC)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Redo completed stages and run on weekends",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show stage markers for recent days",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of days to report, ending today",
						Value: 7,
					},
				},
			},
			{
				Name:   "papers",
				Usage:  "List stored papers for a day",
				Action: papersCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Day to list (YYYY-MM-DD, default today UTC)",
					},
					&cli.StringFlag{
						Name:  "keyword",
						Usage: "Filter papers by keyword across title, summary and labels",
					},
				},
			},
			{
				Name:   "profile",
				Usage:  "Show the loaded profile (secrets omitted)",
				Action: profileCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	profile, err := config.Load(c.String("profile"))
	if err != nil {
		return err
	}

	date, err := parseDateFlag(c.String("date"))
	if err != nil {
		return err
	}

	backend, err := badger.OpenBackend(profile.DataDir, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	statuses := badger.NewStatusRepository(backend)
	papers := badger.NewPaperRepository(backend)
	classifications := badger.NewClassificationRepository(backend)

	src, err := source.Open(profile.Source, profile.Options)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(profile.LLM.Host),
		ai.WithModel(profile.LLM.Model),
		ai.WithToken(profile.LLM.APIKey()),
		ai.WithTemperature(profile.LLM.Temperature),
		ai.WithMaxConcurrency(profile.LLM.MaxConcurrency),
		ai.WithCallTimeout(profile.LLM.CallTimeout()),
	)
	classifier, err := openai.NewClassifier(aiConfig, profile.InterestTags)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}

	tracker := classify.NewProgressTracker(os.Stderr, 0, 5)
	driver, err := classify.NewDriver(classifier, aiConfig, classify.WithProgress(tracker))
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	defer driver.Release()

	opts := []pipeline.Option{
		pipeline.WithWeekendSkip(profile.SkipsWeekends()),
		pipeline.WithWeekendNotice("It is the weekend, no paper updates are expected."),
	}
	for _, channelConfig := range profile.Channels {
		channel, err := notify.Open(channelConfig.Type, channelConfig.ChannelOptions())
		if err != nil {
			return fmt.Errorf("failed to open channel %q: %w", channelConfig.Type, err)
		}
		opts = append(opts, pipeline.WithChannel(channel, channelConfig.ExcludeTags))
	}

	orchestrator, err := pipeline.NewOrchestrator(
		statuses, papers, classifications, src, driver, profile.Categories, opts...)
	if err != nil {
		return err
	}

	summary, runErr := orchestrator.Run(ctx, pipeline.RunOptions{
		Date:  date,
		Force: c.Bool("force"),
	})

	if err := printJSON(slim.Summary(summary)); err != nil {
		return err
	}
	return runErr
}

func statusCommand(c *cli.Context) error {
	ctx := context.Background()

	profile, err := config.Load(c.String("profile"))
	if err != nil {
		return err
	}

	days := c.Int("days")
	if days < 1 {
		return fmt.Errorf("days must be greater than 0")
	}

	backend, err := badger.OpenBackend(profile.DataDir, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	statuses := badger.NewStatusRepository(backend)

	type dayStatus struct {
		Date   string                          `json:"date"`
		Stages map[core.Stage]core.StageMarker `json:"stages"`
	}

	report := make([]dayStatus, 0, days)
	today := time.Now().UTC()
	for i := 0; i < days; i++ {
		day := core.DayKey(today.AddDate(0, 0, -i))
		markers, err := statuses.GetMarkers(ctx, day)
		if err != nil {
			return fmt.Errorf("failed to read markers for %s: %w", day, err)
		}
		report = append(report, dayStatus{Date: day, Stages: markers})
	}

	return printJSON(report)
}

func papersCommand(c *cli.Context) error {
	ctx := context.Background()

	profile, err := config.Load(c.String("profile"))
	if err != nil {
		return err
	}

	date, err := parseDateFlag(c.String("date"))
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	day := core.DayKey(date)

	backend, err := badger.OpenBackend(profile.DataDir, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	papers := badger.NewPaperRepository(backend)
	classifications := badger.NewClassificationRepository(backend)

	stored, err := papers.GetPapersByDay(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to load papers: %w", err)
	}

	ids := make([]core.ID, len(stored))
	for i, paper := range stored {
		ids[i] = paper.Id
	}
	results, err := classifications.GetClassifications(ctx, ids...)
	if err != nil {
		return fmt.Errorf("failed to load classifications: %w", err)
	}

	keyword := strings.ToLower(c.String("keyword"))
	entries := make([]core.DigestEntry, 0, len(stored))
	for _, paper := range stored {
		entry := core.DigestEntry{Paper: *paper}
		if result, ok := results[paper.Id]; ok {
			entry.Classification = *result
		}
		if keyword != "" && !matchesKeyword(&entry, keyword) {
			continue
		}
		entries = append(entries, entry)
	}

	return printJSON(slim.Papers(entries))
}

func profileCommand(c *cli.Context) error {
	profile, err := config.Load(c.String("profile"))
	if err != nil {
		return err
	}
	return printJSON(slim.Profile(profile))
}

// matchesKeyword searches title, summary and every label field.
func matchesKeyword(entry *core.DigestEntry, keyword string) bool {
	if strings.Contains(strings.ToLower(entry.Paper.Title), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Paper.Summary), keyword) {
		return true
	}
	for _, label := range entry.Classification.Labels() {
		if strings.Contains(label, keyword) {
			return true
		}
	}
	return false
}

func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := core.ParseDayKey(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return date, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
