package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/storage"
)

// PaperRepository implements storage.PaperRepository for BadgerDB.
type PaperRepository struct {
	backend *Backend
}

var _ storage.PaperRepository = (*PaperRepository)(nil)

// NewPaperRepository creates a new PaperRepository.
func NewPaperRepository(backend *Backend) *PaperRepository {
	return &PaperRepository{backend: backend}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *PaperRepository) Close() error {
	return nil
}

// AddPapers stores papers under the given day. IDs are derived from the arXiv
// ID, so re-fetching a day overwrites the same records instead of duplicating.
func (r *PaperRepository) AddPapers(ctx context.Context, day string, papers ...*core.Paper) ([]*core.Paper, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, paper := range papers {
			if err := core.ValidatePaper(paper); err != nil {
				return err
			}
			if paper.Id == 0 {
				paper.Id = core.IDFromContent(paper.ArxivId)
			}
			if paper.FetchedAt.IsZero() {
				paper.FetchedAt = time.Now().UTC()
			}

			value, err := storage.MarshalPaper(paper)
			if err != nil {
				return err
			}
			if err := tx.Set(makePaperKey(paper.Id), value); err != nil {
				return err
			}

			dayKey := makePaperDayKey(day, paper.Id)
			if err := tx.Set(dayKey, storage.MarshalID(paper.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return papers, nil
}

// GetPaper retrieves a single paper by ID.
func (r *PaperRepository) GetPaper(ctx context.Context, id core.ID) (*core.Paper, error) {
	var paper *core.Paper
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePaperKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			paper, unmarshalErr = storage.UnmarshalPaper(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return paper, nil
}

// GetPapersByDay retrieves all papers fetched for a day, ordered by
// publication time then arXiv ID. The day index stores IDs; records are read
// back individually and sorted, since the index iterates in ID order.
func (r *PaperRepository) GetPapersByDay(ctx context.Context, day string) ([]*core.Paper, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePaperDayPrefix(day)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, unmarshalErr := storage.UnmarshalID(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				ids = append(ids, id)
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

	papers := make([]*core.Paper, 0, len(ids))
	for _, id := range ids {
		paper, err := r.GetPaper(ctx, id)
		if err != nil {
			return nil, err
		}
		papers = append(papers, paper)
	}
	sort.Slice(papers, func(i, j int) bool {
		if !papers[i].Published.Equal(papers[j].Published) {
			return papers[i].Published.Before(papers[j].Published)
		}
		return papers[i].ArxivId < papers[j].ArxivId
	})
	return papers, nil
}

// AddFetchBatch records which papers one category fetch produced.
func (r *PaperRepository) AddFetchBatch(ctx context.Context, batch *storage.FetchBatch) (*storage.FetchBatch, error) {
	if batch == nil || batch.Day == "" || batch.Category == "" {
		return nil, storage.ErrInvalidBatch
	}
	if batch.Id == "" {
		batch.Id = uuid.NewString()
	}
	if batch.FetchedAt.IsZero() {
		batch.FetchedAt = time.Now().UTC()
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		value, err := storage.MarshalFetchBatch(batch)
		if err != nil {
			return err
		}
		key := makeFetchBatchKey(batch.Day, batch.Category, batch.Id)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return batch, nil
}

// GetFetchBatches retrieves the fetch batches recorded for a day.
func (r *PaperRepository) GetFetchBatches(ctx context.Context, day string) ([]*storage.FetchBatch, error) {
	var batches []*storage.FetchBatch
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeFetchBatchDayPrefix(day)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				batch, unmarshalErr := storage.UnmarshalFetchBatch(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				batches = append(batches, batch)
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
	return batches, nil
}
