package bench

import (
	"context"
	"runtime"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/rlaau/pmsort/internal/datastore"
	"github.com/rlaau/pmsort/internal/logutil"
	"github.com/rlaau/pmsort/msort"
)

const (
	SequentialMergeSort = "sequential_mergesort"
	ParallelMergeSort   = "parallel_mergesort"
	StdlibSort          = "stdlib_sort"
)

var (
	ErrUnknownAlgorithm = errors.New("bench: unknown algorithm")
	ErrUnsorted         = errors.New("bench: output is not sorted")
)

// Algorithms 지원하는 알고리즘 목록
func Algorithms() []string {
	return []string{SequentialMergeSort, ParallelMergeSort, StdlibSort}
}

// Measure data의 복사본을 algorithm으로 정렬하고 측정값을 돌려준다.
// 결과가 정렬되지 않았으면 ErrUnsorted.
func Measure(algorithm string, data []int, sorter *msort.Sorter) (datastore.Result, error) {
	result := datastore.Result{
		Algorithm:    algorithm,
		DataSize:     len(data),
		GoroutineNum: runtime.NumGoroutine(),
	}

	testData := slices.Clone(data)
	var scratch []int
	if algorithm != StdlibSort {
		scratch = make([]int, len(testData))
	}

	stats := startStats()

	switch algorithm {
	case SequentialMergeSort:
		msort.SequentialSort(testData, scratch, 0, len(testData)-1)
	case ParallelMergeSort:
		if sorter == nil {
			sorter = msort.New()
		}
		result.Cutoff = sorter.Cutoff()
		sorter.ParallelSort(testData, scratch, 0, len(testData)-1, 0)
	case StdlibSort:
		slices.Sort(testData)
	default:
		return result, errors.Wrapf(ErrUnknownAlgorithm, "%q", algorithm)
	}

	result.Duration, result.MemoryUsage = stats.endStats()

	if !msort.IsSorted(testData) {
		return result, errors.Wrapf(ErrUnsorted, "%s on %d elements", algorithm, len(data))
	}
	return result, nil
}

// Runner 데이터셋을 준비하고 알고리즘별로 반복 실행해서 결과를 저장한다
type Runner struct {
	Store      datastore.Store
	Sorter     *msort.Sorter
	Sizes      []int
	Runs       int
	Seed       int64
	Algorithms []string
}

// Prepare 저장소에 없는 데이터셋만 생성해서 저장한다
func (r *Runner) Prepare(ctx context.Context) (map[int][]int, error) {
	datasets := make(map[int][]int, len(r.Sizes))
	var missing []int
	for _, size := range r.Sizes {
		data, err := r.Store.GetDataset(DatasetName(size))
		switch {
		case err == nil:
			datasets[size] = data
		case errors.Is(err, datastore.ErrNotFound):
			missing = append(missing, size)
		default:
			return nil, err
		}
	}
	if len(missing) == 0 {
		return datasets, nil
	}

	generated, err := GenerateAll(ctx, missing, r.Seed)
	if err != nil {
		return nil, err
	}
	for i, size := range missing {
		if err := r.Store.PutDataset(DatasetName(size), generated[i]); err != nil {
			return nil, errors.Wrapf(err, "store dataset %s", DatasetName(size))
		}
		datasets[size] = generated[i]
		logutil.Info("dataset generated", zap.String("name", DatasetName(size)))
	}
	return datasets, nil
}

func (r *Runner) Run(ctx context.Context) ([]datastore.Result, error) {
	datasets, err := r.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	var results []datastore.Result
	for _, size := range r.Sizes {
		for _, algo := range r.Algorithms {
			for run := 1; run <= r.Runs; run++ {
				if err := ctx.Err(); err != nil {
					return results, err
				}
				res, err := Measure(algo, datasets[size], r.Sorter)
				if err != nil {
					return results, err
				}
				res.Dataset = DatasetName(size)
				res.TestRun = run
				if err := r.Store.PutResult(res); err != nil {
					return results, errors.Wrap(err, "store result")
				}
				logutil.Debug("benchmark run finished",
					zap.String("algorithm", algo),
					zap.Int("size", size),
					zap.Int("run", run),
					zap.Duration("duration", res.Duration))
				results = append(results, res)
			}
		}
	}
	return results, nil
}
