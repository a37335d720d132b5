package classify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/paperflow/ai"
	"github.com/poiesic/paperflow/ai/mock"
	"github.com/poiesic/paperflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePapers(n int) []core.Paper {
	papers := make([]core.Paper, n)
	for i := range papers {
		arxivId := fmt.Sprintf("2503.1%04d", i)
		papers[i] = core.Paper{
			Id:      core.IDFromContent(arxivId),
			ArxivId: arxivId,
			Title:   fmt.Sprintf("Paper %d", i),
			Summary: "An abstract.",
		}
	}
	return papers
}

func TestDriverRunOrdering(t *testing.T) {
	classifier := mock.NewMockClassifier()
	driver, err := NewDriver(classifier, ai.DefaultConfig())
	require.NoError(t, err)
	defer driver.Release()

	papers := makePapers(20)
	batch, err := driver.Run(context.Background(), papers)
	require.NoError(t, err)

	require.Len(t, batch.Items, len(papers))
	for i, item := range batch.Items {
		require.NoError(t, item.Err)
		assert.Equal(t, papers[i].Id, item.PaperId, "item %d out of order", i)
		assert.Equal(t, papers[i].Id, item.Result.PaperId)
	}
	assert.Equal(t, 20, batch.Succeeded)
	assert.Equal(t, 0, batch.Failed)
	assert.Equal(t, 20, classifier.CallCount())
}

func TestDriverRunUpdatesProgress(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 1)

	classifier := mock.NewMockClassifier()
	driver, err := NewDriver(classifier, ai.DefaultConfig(), WithProgress(tracker))
	require.NoError(t, err)
	defer driver.Release()

	_, err = driver.Run(context.Background(), makePapers(7))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "7/7", "tracker should pick up the batch size")
	assert.Contains(t, output, "100.0%")
}

func TestDriverConcurrencyCeiling(t *testing.T) {
	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0

	classifier := mock.NewMockClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, paper core.Paper) (core.Classification, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return core.Classification{PaperId: paper.Id, PrimaryArea: "text_models"}, nil
	}

	config := ai.NewConfig(ai.WithMaxConcurrency(5))
	driver, err := NewDriver(classifier, config)
	require.NoError(t, err)
	defer driver.Release()

	batch, err := driver.Run(context.Background(), makePapers(20))
	require.NoError(t, err)
	assert.Equal(t, 20, batch.Succeeded)
	assert.LessOrEqual(t, maxInFlight, 5,
		"in-flight calls exceeded the concurrency ceiling")
}

func TestDriverToleratesPartialFailure(t *testing.T) {
	classifier := mock.NewMockClassifier()
	failures := map[string]bool{"2503.10003": true, "2503.10007": true, "2503.10011": true}
	classifier.ClassifyFunc = func(ctx context.Context, paper core.Paper) (core.Classification, error) {
		if failures[paper.ArxivId] {
			return core.Classification{}, &ai.ClassificationError{Reason: "remote call failed"}
		}
		return core.Classification{PaperId: paper.Id, PrimaryArea: "text_models"}, nil
	}

	driver, err := NewDriver(classifier, ai.DefaultConfig())
	require.NoError(t, err)
	defer driver.Release()

	batch, err := driver.Run(context.Background(), makePapers(20))
	require.NoError(t, err)
	assert.Equal(t, 17, batch.Succeeded)
	assert.Equal(t, 3, batch.Failed)
	assert.Len(t, batch.Results(), 17)

	for i, item := range batch.Items {
		arxivId := fmt.Sprintf("2503.1%04d", i)
		if failures[arxivId] {
			assert.Error(t, item.Err)
		} else {
			assert.NoError(t, item.Err)
		}
	}
}

func TestDriverAllFailed(t *testing.T) {
	classifier := mock.NewMockClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, paper core.Paper) (core.Classification, error) {
		return core.Classification{}, errors.New("service down")
	}

	driver, err := NewDriver(classifier, ai.DefaultConfig())
	require.NoError(t, err)
	defer driver.Release()

	batch, err := driver.Run(context.Background(), makePapers(4))
	assert.ErrorIs(t, err, ErrAllFailed)
	require.NotNil(t, batch)
	assert.Equal(t, 4, batch.Failed)
}

func TestDriverEmptyBatch(t *testing.T) {
	driver, err := NewDriver(mock.NewMockClassifier(), ai.DefaultConfig())
	require.NoError(t, err)
	defer driver.Release()

	_, err = driver.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestDriverCallTimeout(t *testing.T) {
	classifier := mock.NewMockClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, paper core.Paper) (core.Classification, error) {
		select {
		case <-ctx.Done():
			return core.Classification{}, ctx.Err()
		case <-time.After(time.Second):
			return core.Classification{PaperId: paper.Id, PrimaryArea: "text_models"}, nil
		}
	}

	config := ai.NewConfig(ai.WithCallTimeout(20 * time.Millisecond))
	driver, err := NewDriver(classifier, config)
	require.NoError(t, err)
	defer driver.Release()

	batch, err := driver.Run(context.Background(), makePapers(2))
	assert.ErrorIs(t, err, ErrAllFailed)
	for _, item := range batch.Items {
		assert.ErrorIs(t, item.Err, context.DeadlineExceeded)
	}
}

func TestDriverRequiresClassifier(t *testing.T) {
	_, err := NewDriver(nil, ai.DefaultConfig())
	assert.ErrorIs(t, err, ErrClassifierRequired)
}
