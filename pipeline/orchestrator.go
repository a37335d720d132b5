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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/paperflow/classify"
	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/notify"
	"github.com/poiesic/paperflow/source"
	"github.com/poiesic/paperflow/storage"
)

// Channel pairs a notifier with its exclusion tags. Each channel gets
// its own digest, so exclusions on one never affect another.
type Channel struct {
	Notifier    notify.Notifier
	ExcludeTags []string
}

// Orchestrator sequences the daily fetch, classify and notify stages
// against durable stage markers, so an interrupted day resumes where it
// stopped instead of repeating work.
type Orchestrator struct {
	statuses        storage.StatusRepository
	papers          storage.PaperRepository
	classifications storage.ClassificationRepository
	src             source.Source
	driver          *classify.Driver
	channels        []Channel
	categories      []string
	skipWeekends    bool
	weekendNotice   string
	logger          *slog.Logger

	// now is swapped in tests
	now func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithChannel adds a delivery channel with its exclusion tags.
func WithChannel(notifier notify.Notifier, excludeTags []string) Option {
	return func(o *Orchestrator) error {
		if notifier == nil {
			return ErrNilChannel
		}
		o.channels = append(o.channels, Channel{Notifier: notifier, ExcludeTags: excludeTags})
		return nil
	}
}

// WithWeekendSkip controls whether weekend dates are skipped without
// force. Default is true.
func WithWeekendSkip(skip bool) Option {
	return func(o *Orchestrator) error {
		o.skipWeekends = skip
		return nil
	}
}

// WithWeekendNotice sets a plain-text message sent to every channel when
// a weekend run is skipped. Empty (the default) sends nothing.
func WithWeekendNotice(text string) Option {
	return func(o *Orchestrator) error {
		o.weekendNotice = text
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator wires the pipeline. Repositories, source and driver
// are required; channels are optional (a run without channels still
// fetches and classifies).
func NewOrchestrator(
	statuses storage.StatusRepository,
	papers storage.PaperRepository,
	classifications storage.ClassificationRepository,
	src source.Source,
	driver *classify.Driver,
	categories []string,
	opts ...Option,
) (*Orchestrator, error) {
	if statuses == nil || papers == nil || classifications == nil {
		return nil, ErrRepositoriesRequired
	}
	if src == nil {
		return nil, ErrSourceRequired
	}
	if driver == nil {
		return nil, ErrDriverRequired
	}

	o := &Orchestrator{
		statuses:        statuses,
		papers:          papers,
		classifications: classifications,
		src:             src,
		driver:          driver,
		categories:      categories,
		skipWeekends:    true,
		logger:          slog.Default().With("component", "pipeline"),
		now:             time.Now,
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// RunOptions selects the logical date and whether completed stages are
// redone.
type RunOptions struct {
	// Date is the logical day to process. Zero means today in UTC.
	Date time.Time

	// Force redoes stages even when their markers are done and runs on
	// weekends.
	Force bool
}

// Run executes the pipeline for one day. It always returns a summary;
// the error is non-nil only when the run did not complete.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (core.RunSummary, error) {
	date := opts.Date
	if date.IsZero() {
		date = o.now().UTC()
	}
	date = date.UTC()
	day := core.DayKey(date)

	summary := core.RunSummary{
		Status: core.RunCompleted,
		Date:   day,
		Stages: map[core.Stage]core.Counts{},
	}

	logger := o.logger.With("day", day)

	if o.skipWeekends && isWeekend(date) && !opts.Force {
		logger.Info("weekend, skipping run")
		o.sendWeekendNotice(ctx)
		summary.Status = core.RunSkipped
		summary.Note = "no updates expected"
		return summary, nil
	}

	notifyMarker, err := o.statuses.GetMarker(ctx, day, core.StageNotify)
	if err != nil {
		return o.fail(summary, core.StageNotify, fmt.Errorf("read notify marker: %w", err))
	}
	if notifyMarker.Done() && !opts.Force {
		logger.Info("day already delivered, skipping run")
		summary.Status = core.RunSkippedAlreadyDone
		summary.Note = "already delivered"
		return summary, nil
	}

	papers, err := o.runFetch(ctx, logger, date, day, opts.Force, &summary)
	if err != nil {
		return o.fail(summary, core.StageFetch, err)
	}

	entries, err := o.runClassify(ctx, logger, day, papers, &summary)
	if err != nil {
		return o.fail(summary, core.StageClassify, err)
	}

	if err := o.runNotify(ctx, logger, day, entries, &summary); err != nil {
		return o.fail(summary, core.StageNotify, err)
	}

	logger.Info("run completed",
		"papers", len(papers),
		"delivered", summary.Stages[core.StageNotify].Succeeded)
	return summary, nil
}

// runFetch returns the day's papers, reusing stored ones when the fetch
// marker is already done.
func (o *Orchestrator) runFetch(ctx context.Context, logger *slog.Logger, date time.Time, day string, force bool, summary *core.RunSummary) ([]*core.Paper, error) {
	marker, err := o.statuses.GetMarker(ctx, day, core.StageFetch)
	if err != nil {
		return nil, fmt.Errorf("read fetch marker: %w", err)
	}

	if marker.Done() && !force {
		stored, err := o.papers.GetPapersByDay(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("load stored papers: %w", err)
		}
		if len(stored) > 0 || marker.Counts.Succeeded == 0 {
			logger.Info("reusing stored papers", "papers", len(stored))
			summary.Stages[core.StageFetch] = marker.Counts
			return stored, nil
		}
		// Marker says done but the papers are gone; refetch without
		// touching the done marker.
	} else if !marker.Done() {
		if err := o.statuses.MarkStarted(ctx, day, core.StageFetch); err != nil {
			return nil, fmt.Errorf("mark fetch started: %w", err)
		}
	}

	fetched, err := o.src.Fetch(ctx, date, o.categories)
	if err != nil {
		o.markFailed(ctx, day, core.StageFetch, err)
		return nil, err
	}

	persisted, err := o.persistFetch(ctx, day, fetched)
	if err != nil {
		o.markFailed(ctx, day, core.StageFetch, err)
		return nil, err
	}

	counts := core.Counts{Attempted: len(fetched), Succeeded: len(persisted)}
	summary.Stages[core.StageFetch] = counts
	if err := o.statuses.MarkDone(ctx, day, core.StageFetch, counts); err != nil {
		summary.Note = appendNote(summary.Note, "fetch marker write failed: "+err.Error())
	}

	logger.Info("fetch completed", "papers", len(persisted))
	return persisted, nil
}

func (o *Orchestrator) persistFetch(ctx context.Context, day string, fetched []core.Paper) ([]*core.Paper, error) {
	if len(fetched) == 0 {
		return []*core.Paper{}, nil
	}

	pointers := make([]*core.Paper, len(fetched))
	for i := range fetched {
		pointers[i] = &fetched[i]
	}

	persisted, err := o.papers.AddPapers(ctx, day, pointers...)
	if err != nil {
		return nil, fmt.Errorf("persist papers: %w", err)
	}

	byCategory := map[string][]core.ID{}
	for _, paper := range persisted {
		byCategory[paper.Category] = append(byCategory[paper.Category], paper.Id)
	}
	for category, ids := range byCategory {
		batch := &storage.FetchBatch{Day: day, Category: category, PaperIds: ids}
		if _, err := o.papers.AddFetchBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("persist fetch batch: %w", err)
		}
	}

	return persisted, nil
}

// runClassify drives the classifier over papers that have no stored
// result yet and returns every classified paper for the day.
func (o *Orchestrator) runClassify(ctx context.Context, logger *slog.Logger, day string, papers []*core.Paper, summary *core.RunSummary) ([]core.DigestEntry, error) {
	marker, err := o.statuses.GetMarker(ctx, day, core.StageClassify)
	if err != nil {
		return nil, fmt.Errorf("read classify marker: %w", err)
	}
	if !marker.Done() {
		if err := o.statuses.MarkStarted(ctx, day, core.StageClassify); err != nil {
			return nil, fmt.Errorf("mark classify started: %w", err)
		}
	}

	ids := make([]core.ID, len(papers))
	for i, paper := range papers {
		ids[i] = paper.Id
	}

	stored, err := o.classifications.GetClassifications(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("load stored classifications: %w", err)
	}

	pending := make([]core.Paper, 0, len(papers))
	for _, paper := range papers {
		if _, done := stored[paper.Id]; !done {
			pending = append(pending, *paper)
		}
	}

	counts := core.Counts{Attempted: len(pending)}
	if len(pending) > 0 {
		logger.Info("classifying papers", "pending", len(pending), "resumed", len(stored))

		batch, err := o.driver.Run(ctx, pending)
		if err != nil {
			o.markFailed(ctx, day, core.StageClassify, err)
			return nil, err
		}
		counts.Succeeded = batch.Succeeded
		counts.Failed = batch.Failed

		results := batch.Results()
		pointers := make([]*core.Classification, len(results))
		for i := range results {
			pointers[i] = &results[i]
		}
		if err := o.classifications.AddClassifications(ctx, pointers...); err != nil {
			o.markFailed(ctx, day, core.StageClassify, err)
			return nil, fmt.Errorf("persist classifications: %w", err)
		}
		for _, result := range pointers {
			stored[result.PaperId] = result
		}
	}

	summary.Stages[core.StageClassify] = counts
	if err := o.statuses.MarkDone(ctx, day, core.StageClassify, counts); err != nil {
		summary.Note = appendNote(summary.Note, "classify marker write failed: "+err.Error())
	}

	entries := make([]core.DigestEntry, 0, len(stored))
	for _, paper := range papers {
		result, ok := stored[paper.Id]
		if !ok {
			continue
		}
		entries = append(entries, core.DigestEntry{Paper: *paper, Classification: *result})
	}
	return entries, nil
}

// runNotify builds a digest per channel and delivers it. A channel with
// nothing left after filtering is counted as delivered with zero
// messages.
func (o *Orchestrator) runNotify(ctx context.Context, logger *slog.Logger, day string, entries []core.DigestEntry, summary *core.RunSummary) error {
	marker, err := o.statuses.GetMarker(ctx, day, core.StageNotify)
	if err != nil {
		return fmt.Errorf("read notify marker: %w", err)
	}
	if !marker.Done() {
		if err := o.statuses.MarkStarted(ctx, day, core.StageNotify); err != nil {
			return fmt.Errorf("mark notify started: %w", err)
		}
	}

	counts := core.Counts{Attempted: len(o.channels)}
	for _, channel := range o.channels {
		digest := notify.BuildDigest(day, entries, channel.ExcludeTags)
		if digest.Empty() {
			logger.Info("digest empty after filtering", "channel", channel.Notifier.Name())
			counts.Succeeded++
			continue
		}

		receipt, err := channel.Notifier.Deliver(ctx, digest)
		if err != nil {
			counts.Failed++
			summary.Stages[core.StageNotify] = counts
			o.markFailed(ctx, day, core.StageNotify, err)
			return err
		}
		counts.Succeeded++
		logger.Info("digest delivered",
			"channel", receipt.Channel,
			"messages", receipt.Messages)
	}

	summary.Stages[core.StageNotify] = counts
	if err := o.statuses.MarkDone(ctx, day, core.StageNotify, counts); err != nil {
		summary.Note = appendNote(summary.Note, "notify marker write failed: "+err.Error())
	}
	return nil
}

func (o *Orchestrator) sendWeekendNotice(ctx context.Context) {
	if o.weekendNotice == "" {
		return
	}
	for _, channel := range o.channels {
		if err := channel.Notifier.Notice(ctx, o.weekendNotice); err != nil {
			o.logger.Warn("weekend notice failed",
				"channel", channel.Notifier.Name(),
				"err", err)
		}
	}
}

func (o *Orchestrator) fail(summary core.RunSummary, stage core.Stage, err error) (core.RunSummary, error) {
	summary.Status = core.RunFailed
	summary.Note = appendNote(summary.Note, fmt.Sprintf("%s: %v", stage, err))
	o.logger.Error("run failed", "day", summary.Date, "stage", stage, "err", err)
	return summary, err
}

// markFailed records a stage failure. A marker already done is left
// alone; losing the failure record is preferable to regressing it.
func (o *Orchestrator) markFailed(ctx context.Context, day string, stage core.Stage, cause error) {
	if err := o.statuses.MarkFailed(ctx, day, stage, cause.Error()); err != nil {
		o.logger.Warn("failed to record stage failure", "day", day, "stage", stage, "err", err)
	}
}

func appendNote(note, addition string) string {
	if note == "" {
		return addition
	}
	return note + "; " + addition
}
