package datastore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound       = errors.New("datastore: not found")
	ErrUnknownBackend = errors.New("datastore: unknown backend")
	ErrCorrupted      = errors.New("datastore: corrupted value")
)

const (
	datasetPrefix = "dataset/"
	resultPrefix  = "result/"
)

// Result 벤치마크 한 번의 결과
type Result struct {
	Algorithm    string        `json:"algorithm"`
	Dataset      string        `json:"dataset"`
	DataSize     int           `json:"data_size"`
	Cutoff       int           `json:"cutoff"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	GoroutineNum int           `json:"goroutine_num"`
}

// Store 입력 데이터셋과 벤치마크 결과 저장소
type Store interface {
	PutDataset(name string, data []int) error
	// GetDataset 없으면 ErrNotFound
	GetDataset(name string) ([]int, error)
	ListDatasets() ([]string, error)
	PutResult(r Result) error
	ListResults() ([]Result, error)
	Close() error
}

// Open backend: "bbolt", "badger", "pebble"
func Open(backend, path string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch backend {
	case "bbolt":
		s, err = openBolt(path)
	case "badger":
		s, err = openBadger(path)
	case "pebble":
		s, err = openPebble(path)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func resultKey(r Result) string {
	// 사전순 정렬이 크기 순서가 되도록 0으로 채운다
	return fmt.Sprintf("%s/%s/%012d/%04d", r.Algorithm, r.Dataset, r.DataSize, r.TestRun)
}

// encodeInts 원소당 8바이트 리틀엔디언
func encodeInts(data []int) []byte {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(int64(v)))
	}
	return buf
}

func decodeInts(buf []byte) ([]int, error) {
	if len(buf)%8 != 0 {
		return nil, errors.Wrapf(ErrCorrupted, "dataset length %d is not a multiple of 8", len(buf))
	}
	data := make([]int, len(buf)/8)
	for i := range data {
		data[i] = int(int64(binary.LittleEndian.Uint64(buf[i*8:])))
	}
	return data, nil
}

func encodeResult(r Result) ([]byte, error) {
	return json.Marshal(r)
}

func decodeResult(buf []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(buf, &r); err != nil {
		return Result{}, errors.Wrap(ErrCorrupted, err.Error())
	}
	return r, nil
}

// prefixEnd prefix로 시작하는 키 범위의 상한
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
