package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/storage"
)

// ClassificationRepository implements storage.ClassificationRepository for
// BadgerDB. Results are keyed by paper ID with a taxonomy index mirroring the
// primary/secondary/application hierarchy.
type ClassificationRepository struct {
	backend *Backend
}

var _ storage.ClassificationRepository = (*ClassificationRepository)(nil)

// NewClassificationRepository creates a new ClassificationRepository.
func NewClassificationRepository(backend *Backend) *ClassificationRepository {
	return &ClassificationRepository{backend: backend}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *ClassificationRepository) Close() error {
	return nil
}

// AddClassifications stores results, replacing any existing result and
// taxonomy index entry for the same paper.
func (r *ClassificationRepository) AddClassifications(ctx context.Context, results ...*core.Classification) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, cls := range results {
			if err := core.ValidateClassification(cls); err != nil {
				return err
			}
			if cls.ClassifiedAt.IsZero() {
				cls.ClassifiedAt = time.Now().UTC()
			}

			key := makeClassifiedDocKey(cls.PaperId)

			// Drop the old taxonomy entry when labels changed.
			item, err := tx.Get(key)
			if err == nil {
				var old *core.Classification
				err = item.Value(func(val []byte) error {
					var unmarshalErr error
					old, unmarshalErr = storage.UnmarshalClassification(val)
					return unmarshalErr
				})
				if err != nil {
					return err
				}
				if err := tx.Delete(makeTaxonomyKey(old)); err != nil {
					return err
				}
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			value, err := storage.MarshalClassification(cls)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
			if err := tx.Set(makeTaxonomyKey(cls), storage.MarshalID(cls.PaperId)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetClassification retrieves the result for one paper.
func (r *ClassificationRepository) GetClassification(ctx context.Context, paperId core.ID) (*core.Classification, error) {
	var cls *core.Classification
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeClassifiedDocKey(paperId))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			cls, unmarshalErr = storage.UnmarshalClassification(val)
			return unmarshalErr
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return cls, nil
}

// GetClassifications retrieves results for multiple papers. Papers without a
// stored result are absent from the map.
func (r *ClassificationRepository) GetClassifications(ctx context.Context, paperIds ...core.ID) (map[core.ID]*core.Classification, error) {
	results := make(map[core.ID]*core.Classification, len(paperIds))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range paperIds {
			item, err := tx.Get(makeClassifiedDocKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				cls, unmarshalErr := storage.UnmarshalClassification(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				results[id] = cls
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
	return results, nil
}

// GetByTaxonomy returns the paper IDs archived under a taxonomy triple.
// Empty segments widen the scan to every value at that level and below.
func (r *ClassificationRepository) GetByTaxonomy(ctx context.Context, primaryArea, secondaryFocus, applicationDomain string) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTaxonomyPrefix(primaryArea, secondaryFocus, applicationDomain)
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
	return ids, nil
}
