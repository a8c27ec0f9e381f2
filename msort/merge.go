package msort

// Merge 인접한 두 정렬 구간 a[leftStart..leftEnd], a[rightStart..rightEnd]를
// 하나의 정렬 구간 a[leftStart..rightEnd]로 병합한다.
// b는 a와 같은 길이의 보조 버퍼이며 같은 전역 인덱스를 사용한다.
// rightStart == leftEnd+1 이고 두 구간이 각각 정렬되어 있어야 한다 (검사하지 않음).
func Merge(a, b []int, leftStart, leftEnd, rightStart, rightEnd int) {
	// 병합 구간 전체를 보조 버퍼로 복사
	copy(b[leftStart:rightEnd+1], a[leftStart:rightEnd+1])

	i, j, k := leftStart, rightStart, leftStart

	for i <= leftEnd && j <= rightEnd {
		// <= 로 비교해야 같은 값일 때 왼쪽이 먼저 나온다 (안정 정렬)
		if b[i] <= b[j] {
			a[k] = b[i]
			i++
		} else {
			a[k] = b[j]
			j++
		}
		k++
	}

	// 남은 요소들 한 번에 복사
	if i <= leftEnd {
		copy(a[k:], b[i:leftEnd+1])
	}
	if j <= rightEnd {
		copy(a[k:], b[j:rightEnd+1])
	}
}
