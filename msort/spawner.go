package msort

import (
	"github.com/cockroachdb/errors"
)

// ErrSpawnRefused 스포너가 새 고루틴 생성을 거부했을 때 반환된다.
var ErrSpawnRefused = errors.New("msort: spawn refused")

// Spawner 분할 단계에서 자식 태스크를 독립 실행시키는 방법.
// Go가 에러를 반환하면 fn은 실행되지 않은 상태여야 한다.
type Spawner interface {
	Go(fn func()) error
}

// GoSpawner go 문으로 태스크마다 새 고루틴을 띄운다. 거부하지 않는다.
type GoSpawner struct{}

func (GoSpawner) Go(fn func()) error {
	go fn()
	return nil
}

// Limiter 동시에 살아있는 자식 고루틴 수를 제한하는 스포너.
// 채널을 세마포로 사용하며, 슬롯이 없으면 기다리지 않고 ErrSpawnRefused를 반환한다.
// 고루틴은 재사용하지 않는다. 매 호출마다 새로 만들고 끝나면 슬롯만 돌려준다.
type Limiter struct {
	slots chan struct{}
}

// NewLimiter 최대 n개의 고루틴을 허용하는 Limiter 생성
func NewLimiter(n int) *Limiter {
	if n < 0 {
		n = 0
	}
	return &Limiter{slots: make(chan struct{}, n)}
}

func (l *Limiter) Go(fn func()) error {
	select {
	case l.slots <- struct{}{}: // 슬롯 획득 시도
		go func() {
			defer func() { <-l.slots }() // 확실히 반환
			fn()
		}()
		return nil
	default:
		return ErrSpawnRefused
	}
}

// Status 사용 중인 슬롯 수와 전체 용량 (디버깅용)
func (l *Limiter) Status() (used int, capacity int) {
	return len(l.slots), cap(l.slots)
}
