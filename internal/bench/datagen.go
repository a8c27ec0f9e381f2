package bench

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

const valueLimit = 1000000

// DatasetName 크기별 랜덤 데이터셋 이름
func DatasetName(size int) string {
	return fmt.Sprintf("random_%d", size)
}

// GenerateRandomData 고정 시드로 재현 가능한 랜덤 데이터 생성
func GenerateRandomData(size int, seed int64) []int {
	r := rand.New(rand.NewSource(seed))
	data := make([]int, size)
	for i := range data {
		data[i] = r.Intn(valueLimit)
	}
	return data
}

// GenerateAll 크기마다 하나씩 데이터셋을 동시에 만든다. 결과는 sizes와 같은 순서
func GenerateAll(ctx context.Context, sizes []int, seed int64) ([][]int, error) {
	out := make([][]int, len(sizes))
	g, ctx := errgroup.WithContext(ctx)
	for i, size := range sizes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// 크기마다 시드를 달리 해도 같은 설정이면 항상 같은 데이터
			out[i] = GenerateRandomData(size, seed+int64(size))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
