package msort

// SequentialSort a[left..right]를 순차 재귀 머지소트로 정렬한다.
// 병렬 정렬이 컷오프 깊이에 도달하면 이 함수로 넘어온다.
func SequentialSort(a, b []int, left, right int) {
	if left >= right {
		return
	}

	// (left+right)/2 는 큰 범위에서 오버플로우 가능
	mid := left + (right-left)/2

	SequentialSort(a, b, left, mid)
	SequentialSort(a, b, mid+1, right)
	Merge(a, b, left, mid, mid+1, right)
}

// IsSorted 오름차순 여부 확인
func IsSorted(a []int) bool {
	for i := 1; i < len(a); i++ {
		if a[i-1] > a[i] {
			return false
		}
	}
	return true
}
