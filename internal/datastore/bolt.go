package datastore

import (
	"bytes"
	"time"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

var (
	datasetBucket = []byte("datasets")
	resultBucket  = []byte("results")
)

type boltStore struct {
	db *bbolt.DB
}

func openBolt(path string) (*boltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bbolt %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{datasetBucket, resultBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create bbolt buckets")
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) PutDataset(name string, data []int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(datasetBucket).Put([]byte(name), encodeInts(data))
	})
}

func (s *boltStore) GetDataset(name string) ([]int, error) {
	var data []int
	err := s.db.View(func(tx *bbolt.Tx) error {
		// bbolt 값은 트랜잭션 안에서만 유효하므로 여기서 디코딩
		// 빈 값과 없는 키를 구분하려고 Get 대신 커서 사용
		k, v := tx.Bucket(datasetBucket).Cursor().Seek([]byte(name))
		if k == nil || !bytes.Equal(k, []byte(name)) {
			return errors.Wrapf(ErrNotFound, "dataset %q", name)
		}
		var err error
		data, err = decodeInts(v)
		return err
	})
	return data, err
}

func (s *boltStore) ListDatasets() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(datasetBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (s *boltStore) PutResult(r Result) error {
	v, err := encodeResult(r)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(resultBucket).Put([]byte(resultKey(r)), v)
	})
}

func (s *boltStore) ListResults() ([]Result, error) {
	var results []Result
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(resultBucket).ForEach(func(_, v []byte) error {
			r, err := decodeResult(v)
			if err != nil {
				return err
			}
			results = append(results, r)
			return nil
		})
	})
	return results, err
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
