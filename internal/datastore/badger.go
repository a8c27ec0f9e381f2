package datastore

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

type badgerStore struct {
	db *badger.DB
}

func openBadger(dir string) (*badgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger %s", dir)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *badgerStore) PutDataset(name string, data []int) error {
	return s.set(datasetPrefix+name, encodeInts(data))
}

func (s *badgerStore) GetDataset(name string) ([]int, error) {
	var data []int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(datasetPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrapf(ErrNotFound, "dataset %q", name)
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			data, err = decodeInts(v)
			return err
		})
	})
	return data, err
}

// scan prefix 아래의 키를 순서대로 방문한다
func (s *badgerStore) scan(prefix string, withValues bool, fn func(k, v []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = withValues
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var v []byte
			if withValues {
				var err error
				if v, err = item.ValueCopy(nil); err != nil {
					return err
				}
			}
			if err := fn(item.KeyCopy(nil), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *badgerStore) ListDatasets() ([]string, error) {
	var names []string
	err := s.scan(datasetPrefix, false, func(k, _ []byte) error {
		names = append(names, string(k[len(datasetPrefix):]))
		return nil
	})
	return names, err
}

func (s *badgerStore) PutResult(r Result) error {
	v, err := encodeResult(r)
	if err != nil {
		return err
	}
	return s.set(resultPrefix+resultKey(r), v)
}

func (s *badgerStore) ListResults() ([]Result, error) {
	var results []Result
	err := s.scan(resultPrefix, true, func(_, v []byte) error {
		r, err := decodeResult(v)
		if err != nil {
			return err
		}
		results = append(results, r)
		return nil
	})
	return results, err
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
