package msort

import (
	"math/bits"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrTaskAlloc 태스크 디스크립터를 만들지 못했을 때의 에러
var ErrTaskAlloc = errors.New("msort: task descriptor allocation failed")

// task 병렬 정렬 한 번의 호출 단위. a[left..right]를 level 깊이에서 정렬한다.
// 부모가 만들고, 자식은 읽기만 하며, 조인 후 부모가 해제한다.
type task struct {
	left, right int
	level       int
}

// allocTask, releaseTask 는 테스트에서 할당 실패를 흉내내기 위해 교체할 수 있다.
var allocTask = func(left, right, level int) (*task, error) {
	return &task{left: left, right: right, level: level}, nil
}

var releaseTask = func(t *task) {
	*t = task{}
}

// Sorter 컷오프 깊이와 스포너를 묶은 병렬 머지소트 설정.
// 생성 후에는 바뀌지 않으므로 여러 고루틴에서 동시에 써도 된다.
type Sorter struct {
	cutoff  int
	spawner Spawner
	logger  *zap.Logger
}

type Option func(*Sorter)

// WithCutoff 병렬 분할을 허용하는 최대 재귀 깊이. 0이면 완전 순차.
func WithCutoff(cutoff int) Option {
	return func(s *Sorter) {
		if cutoff < 0 {
			cutoff = 0
		}
		s.cutoff = cutoff
	}
}

func WithSpawner(sp Spawner) Option {
	return func(s *Sorter) {
		if sp != nil {
			s.spawner = sp
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Sorter) {
		if l != nil {
			s.logger = l
		}
	}
}

// maxProcs 테스트에서 코어 수를 바꿔 끼울 수 있도록 변수로 둔다
var maxProcs = func() int {
	return runtime.GOMAXPROCS(0)
}

// DefaultCutoff ceil(log2(GOMAXPROCS)) + 1, 최소 1.
// 리프 태스크 수(2^cutoff)가 코어 수의 2배 이상이 된다.
func DefaultCutoff() int {
	n := maxProcs()
	if n < 1 {
		n = 1
	}
	return bits.Len(uint(n-1)) + 1
}

func New(opts ...Option) *Sorter {
	s := &Sorter{
		cutoff:  DefaultCutoff(),
		spawner: GoSpawner{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sorter) Cutoff() int {
	return s.cutoff
}

// Sort a 전체를 오름차순 정렬한다. 보조 버퍼는 호출마다 한 번 할당된다.
func Sort(a []int, opts ...Option) {
	if len(a) < 2 {
		return
	}
	b := make([]int, len(a))
	New(opts...).ParallelSort(a, b, 0, len(a)-1, 0)
}

// ParallelSort 기본 설정의 Sorter로 a[left..right]를 정렬한다.
func ParallelSort(a, b []int, left, right, level int) {
	New().ParallelSort(a, b, left, right, level)
}

// ParallelSort a[left..right]를 level 깊이부터 병렬 머지소트로 정렬한다.
// level >= cutoff 이면 현재 고루틴에서 순차 정렬로 넘어간다.
func (s *Sorter) ParallelSort(a, b []int, left, right, level int) {
	if level >= s.cutoff || left >= right {
		if left < right {
			SequentialSort(a, b, left, right)
		}
		return
	}

	mid := left + (right-left)/2

	lt, lerr := allocTask(left, mid, level+1)
	rt, rerr := allocTask(mid+1, right, level+1)
	if lerr != nil || rerr != nil || lt == nil || rt == nil {
		// 할당 실패: 성공한 쪽만 해제하고 이 구간 전체를 순차 정렬
		if lt != nil {
			releaseTask(lt)
		}
		if rt != nil {
			releaseTask(rt)
		}
		s.logger.Debug("task alloc failed, falling back to sequential sort",
			zap.Int("left", left), zap.Int("right", right), zap.Int("level", level),
			zap.NamedError("left_err", lerr), zap.NamedError("right_err", rerr))
		SequentialSort(a, b, left, right)
		return
	}

	var wg sync.WaitGroup
	var inline []*task

	for _, t := range []*task{lt, rt} {
		wg.Add(1)
		err := s.spawner.Go(func() {
			defer wg.Done()
			s.ParallelSort(a, b, t.left, t.right, t.level)
		})
		if err != nil {
			// 스폰 거부: 이 자식은 현재 고루틴에서 실행
			wg.Done()
			s.logger.Debug("spawn refused, running subtree inline",
				zap.Int("left", t.left), zap.Int("right", t.right), zap.Int("level", t.level),
				zap.Error(err))
			inline = append(inline, t)
		}
	}

	for _, t := range inline {
		s.ParallelSort(a, b, t.left, t.right, t.level)
	}

	// 두 자식이 모두 끝나야 병합할 수 있다
	wg.Wait()

	releaseTask(lt)
	releaseTask(rt)

	Merge(a, b, left, mid, mid+1, right)
}
