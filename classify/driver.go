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


package classify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/paperflow/ai"
	"github.com/poiesic/paperflow/core"
)

// Item is the outcome of classifying one paper. Exactly one of Result
// and Err is meaningful.
type Item struct {
	PaperId core.ID
	Result  core.Classification
	Err     error
}

// Batch holds the outcomes of a classification run, in the same order
// as the input papers.
type Batch struct {
	Items     []Item
	Succeeded int
	Failed    int
}

// Results returns the successful classifications in input order.
func (b *Batch) Results() []core.Classification {
	results := make([]core.Classification, 0, b.Succeeded)
	for _, item := range b.Items {
		if item.Err == nil {
			results = append(results, item.Result)
		}
	}
	return results
}

// Driver runs a classifier over batches of papers with bounded
// concurrency. At most the configured number of classifier calls are in
// flight at any moment, regardless of batch size.
type Driver struct {
	classifier  ai.Classifier
	pool        *ants.Pool
	callTimeout time.Duration
	logger      *slog.Logger
	tracker     *ProgressTracker
}

// Option configures a Driver.
type Option func(*Driver) error

// WithProgress attaches a progress tracker updated once per completed item.
func WithProgress(tracker *ProgressTracker) Option {
	return func(d *Driver) error {
		d.tracker = tracker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDriver creates a driver with the concurrency ceiling and per-call
// timeout taken from config.
func NewDriver(classifier ai.Classifier, config *ai.Config, opts ...Option) (*Driver, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(config.MaxConcurrency)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		classifier:  classifier,
		pool:        pool,
		callTimeout: config.CallTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(d); optErr != nil {
			pool.Release()
			return nil, optErr
		}
	}

	return d, nil
}

// Run classifies every paper in the batch. Individual failures are
// recorded in their Item and do not stop the batch; Run itself fails
// only when the batch is empty or every item failed.
//
// Items always line up with the input: Items[i] is the outcome for
// papers[i].
func (d *Driver) Run(ctx context.Context, papers []core.Paper) (*Batch, error) {
	if len(papers) == 0 {
		return nil, ErrEmptyBatch
	}

	batch := &Batch{
		Items: make([]Item, len(papers)),
	}

	if d.tracker != nil {
		d.tracker.SetTotal(len(papers))
		d.tracker.Start()
	}

	var wg sync.WaitGroup
	for i, paper := range papers {
		wg.Add(1)
		submitErr := d.pool.Submit(func() {
			defer wg.Done()
			batch.Items[i] = d.classifyOne(ctx, paper)
			if d.tracker != nil {
				d.tracker.Increment(1)
			}
		})
		if submitErr != nil {
			// Pool is released or closed; record and move on
			batch.Items[i] = Item{PaperId: paper.Id, Err: submitErr}
			wg.Done()
		}
	}
	wg.Wait()

	if d.tracker != nil {
		d.tracker.Finish()
	}

	for _, item := range batch.Items {
		if item.Err != nil {
			batch.Failed++
		} else {
			batch.Succeeded++
		}
	}

	d.logger.Info("classification batch finished",
		"papers", len(papers),
		"succeeded", batch.Succeeded,
		"failed", batch.Failed)

	if batch.Succeeded == 0 {
		return batch, ErrAllFailed
	}
	return batch, nil
}

func (d *Driver) classifyOne(ctx context.Context, paper core.Paper) Item {
	callCtx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	result, err := d.classifier.Classify(callCtx, paper)
	if err != nil {
		d.logger.Warn("classification failed",
			"paper", paper.ArxivId,
			"err", err)
		return Item{PaperId: paper.Id, Err: err}
	}
	return Item{PaperId: paper.Id, Result: result}
}

// Release releases the worker pool.
// The driver should not be used after calling Release.
func (d *Driver) Release() {
	if d.pool != nil {
		d.pool.Release()
	}
}
