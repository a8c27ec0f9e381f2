package bench

import (
	"runtime"
	"time"
)

// systemStats 실행 시간과 할당량 측정
type systemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

func startStats() *systemStats {
	runtime.GC() // 가비지 컬렉션으로 정확한 측정

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &systemStats{
		startTime: time.Now(),
		startMem:  m,
	}
}

func (s *systemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}
