package datastore

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

type pebbleStore struct {
	db *pebble.DB
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %s", dir)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) PutDataset(name string, data []int) error {
	return s.db.Set([]byte(datasetPrefix+name), encodeInts(data), pebble.Sync)
}

func (s *pebbleStore) GetDataset(name string) ([]int, error) {
	v, closer, err := s.db.Get([]byte(datasetPrefix + name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "dataset %q", name)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return decodeInts(v)
}

func (s *pebbleStore) scan(prefix string, fn func(k, v []byte) error) error {
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: prefixEnd([]byte(prefix)),
	})
	if err != nil {
		return err
	}
	for it.First(); it.Valid(); it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			it.Close()
			return err
		}
	}
	return it.Close()
}

func (s *pebbleStore) ListDatasets() ([]string, error) {
	var names []string
	err := s.scan(datasetPrefix, func(k, _ []byte) error {
		names = append(names, string(k[len(datasetPrefix):]))
		return nil
	})
	return names, err
}

func (s *pebbleStore) PutResult(r Result) error {
	v, err := encodeResult(r)
	if err != nil {
		return err
	}
	return s.db.Set([]byte(resultPrefix+resultKey(r)), v, pebble.Sync)
}

func (s *pebbleStore) ListResults() ([]Result, error) {
	var results []Result
	err := s.scan(resultPrefix, func(_, v []byte) error {
		r, err := decodeResult(v)
		if err != nil {
			return err
		}
		results = append(results, r)
		return nil
	})
	return results, err
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}
