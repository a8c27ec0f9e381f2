package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/rlaau/pmsort/internal/datastore"
)

var algoNames = map[string]string{
	SequentialMergeSort: "머지소트",
	ParallelMergeSort:   "병렬머지소트",
	StdlibSort:          "표준정렬",
}

func algoName(algo string) string {
	if name, ok := algoNames[algo]; ok {
		return name
	}
	return algo
}

// WriteMarkdown 크기별 표와 평균 요약을 마크다운으로 쓴다
func WriteMarkdown(w io.Writer, results []datastore.Result) error {
	writer := bufio.NewWriterSize(w, 32*1024)

	var builder strings.Builder
	builder.WriteString("# 정렬 알고리즘 벤치마크 결과\n\n")
	builder.WriteString(fmt.Sprintf("실행 시간: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU 코어 수: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0)))

	sizes, algorithms := groupKeys(results)

	for _, size := range sizes {
		builder.WriteString(fmt.Sprintf("## %d개 데이터\n\n", size))
		builder.WriteString("| 알고리즘 | 테스트 | 컷오프 | 실행시간 | 메모리사용량 | 고루틴수 |\n")
		builder.WriteString("|----------|--------|--------|----------|--------------|----------|\n")
		for _, algo := range algorithms {
			for _, r := range results {
				if r.Algorithm != algo || r.DataSize != size {
					continue
				}
				builder.WriteString(fmt.Sprintf("| %s | %d | %d | %v | %d bytes | %d |\n",
					algoName(algo), r.TestRun, r.Cutoff, r.Duration, r.MemoryUsage, r.GoroutineNum))
			}
		}
		builder.WriteString("\n")
	}

	// 요약 통계
	builder.WriteString("## 요약 통계\n\n")
	for _, size := range sizes {
		builder.WriteString(fmt.Sprintf("### %d개 데이터 평균\n\n", size))
		builder.WriteString("| 알고리즘 | 평균 실행시간 | 평균 메모리사용량 |\n")
		builder.WriteString("|----------|---------------|-------------------|\n")
		for _, algo := range algorithms {
			avgDuration, avgMemory, ok := average(results, algo, size)
			if !ok {
				continue
			}
			builder.WriteString(fmt.Sprintf("| %s | %v | %d bytes |\n", algoName(algo), avgDuration, avgMemory))
		}
		builder.WriteString("\n")
	}

	if _, err := writer.WriteString(builder.String()); err != nil {
		return err
	}
	return writer.Flush()
}

// WriteJSON 결과를 들여쓰기 된 JSON 배열로 쓴다
func WriteJSON(w io.Writer, results []datastore.Result) error {
	if results == nil {
		results = []datastore.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// groupKeys 결과에 나타난 크기(오름차순)와 알고리즘(처음 나온 순서)
func groupKeys(results []datastore.Result) ([]int, []string) {
	var sizes []int
	var algorithms []string
	for _, r := range results {
		if !slices.Contains(sizes, r.DataSize) {
			sizes = append(sizes, r.DataSize)
		}
		if !slices.Contains(algorithms, r.Algorithm) {
			algorithms = append(algorithms, r.Algorithm)
		}
	}
	slices.Sort(sizes)
	return sizes, algorithms
}

func average(results []datastore.Result, algo string, size int) (time.Duration, uint64, bool) {
	var totalDuration time.Duration
	var totalMemory uint64
	count := 0
	for _, r := range results {
		if r.Algorithm == algo && r.DataSize == size {
			totalDuration += r.Duration
			totalMemory += r.MemoryUsage
			count++
		}
	}
	if count == 0 {
		return 0, 0, false
	}
	return totalDuration / time.Duration(count), totalMemory / uint64(count), true
}
