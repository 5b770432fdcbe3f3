package worker

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitCoversRangeExactlyOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{0, 4}, {1, 4}, {3, 1}, {7, 3}, {100, 7}, {5, 16},
	} {
		chunks := Split(tc.n, tc.workers)
		covered := make([]bool, tc.n)
		for _, c := range chunks {
			require.GreaterOrEqual(t, c.Lo, 0)
			require.LessOrEqual(t, c.Hi, tc.n)
			require.Less(t, c.Lo, c.Hi)
			for i := c.Lo; i < c.Hi; i++ {
				require.False(t, covered[i], "index %d covered twice (n=%d,w=%d)", i, tc.n, tc.workers)
				covered[i] = true
			}
		}
		for i, ok := range covered {
			require.True(t, ok, "index %d never covered (n=%d,w=%d)", i, tc.n, tc.workers)
		}
	}
}

func TestRunStaticDeterministicAcrossWorkerCounts(t *testing.T) {
	const n = 1000
	for _, workers := range []int{1, 2, 3, 8, 16, 64} {
		out := make([]int, n)
		RunStatic(n, workers, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				out[i] = i * i
			}
		})
		for i := 0; i < n; i++ {
			require.Equal(t, i*i, out[i])
		}
	}
}

func TestRunStaticJoinsBeforeReturning(t *testing.T) {
	var mu sync.Mutex
	var order []int

	RunStatic(50, 10, func(lo, hi int) {
		mu.Lock()
		order = append(order, lo)
		mu.Unlock()
	})

	require.Len(t, order, 10)
	sort.Ints(order)
	require.Equal(t, []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45}, order)
}
