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


package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/storage"
)

// StatusRepository implements storage.StatusRepository for BadgerDB.
// Writes are committed per (day, stage) key before the call returns, which is
// what makes markers survive a process crash mid-run.
type StatusRepository struct {
	backend *Backend
}

var _ storage.StatusRepository = (*StatusRepository)(nil)

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(backend *Backend) *StatusRepository {
	return &StatusRepository{backend: backend}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *StatusRepository) Close() error {
	return nil
}

// GetMarker retrieves the marker for (day, stage).
// A missing record returns a zero marker with StatusPending, not an error.
func (r *StatusRepository) GetMarker(ctx context.Context, day string, stage core.Stage) (core.StageMarker, error) {
	marker := core.StageMarker{Status: core.StatusPending}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMarkerKey(day, stage))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			marker, unmarshalErr = storage.UnmarshalMarker(val)
			return unmarshalErr
		})
	}, false)

	return marker, err
}

// GetMarkers retrieves all recorded markers for a day.
func (r *StatusRepository) GetMarkers(ctx context.Context, day string) (map[core.Stage]core.StageMarker, error) {
	markers := make(map[core.Stage]core.StageMarker)
	prefix := makeMarkerDayPrefix(day)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			stage := core.Stage(bytes.TrimPrefix(item.Key(), prefix))
			err := item.Value(func(val []byte) error {
				marker, unmarshalErr := storage.UnmarshalMarker(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				markers[stage] = marker
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return markers, nil
}

// MarkStarted transitions (day, stage) to in_progress.
func (r *StatusRepository) MarkStarted(ctx context.Context, day string, stage core.Stage) error {
	return r.transition(day, stage, core.StageMarker{
		Status:    core.StatusInProgress,
		Timestamp: time.Now().UTC(),
	})
}

// MarkDone transitions (day, stage) to done with item counts.
func (r *StatusRepository) MarkDone(ctx context.Context, day string, stage core.Stage, counts core.Counts) error {
	return r.transition(day, stage, core.StageMarker{
		Status:    core.StatusDone,
		Counts:    counts,
		Timestamp: time.Now().UTC(),
	})
}

// MarkFailed transitions (day, stage) to failed with a reason.
func (r *StatusRepository) MarkFailed(ctx context.Context, day string, stage core.Stage, reason string) error {
	return r.transition(day, stage, core.StageMarker{
		Status:    core.StatusFailed,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

// transition writes the new marker, refusing to move an existing done marker
// to any other state. Re-marking done (an idempotent stage redo) is allowed.
func (r *StatusRepository) transition(day string, stage core.Stage, next core.StageMarker) error {
	if err := core.ValidateStage(stage); err != nil {
		return err
	}

	key := makeMarkerKey(day, stage)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err == nil {
			var current core.StageMarker
			err = item.Value(func(val []byte) error {
				var unmarshalErr error
				current, unmarshalErr = storage.UnmarshalMarker(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}
			if current.Done() && next.Status != core.StatusDone {
				return storage.ErrMarkerRegression
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalMarker(next)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
