package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForRangeCoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}
	n := 1001
	hits := make([]int32, n)

	var mu sync.Mutex
	var chunks int
	ForRange(n, func(start, end int) {
		mu.Lock()
		chunks++
		mu.Unlock()
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
	assert.Equal(t, 3, chunks)
}

func TestForRange_Sequential(t *testing.T) {
	var calls int
	ForRange(100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	}, Sequential())
	assert.Equal(t, 1, calls)
}

func TestForRange_SmallChunk(t *testing.T) {
	// Small work units stay on the calling goroutine.
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = 8

	var calls int
	ForRange(cfg.MinChunkSize-1, func(_, _ int) { calls++ }, cfg)
	assert.Equal(t, 1, calls)
}

func TestForRange_Empty(t *testing.T) {
	ForRange(0, func(_, _ int) { t.Fatal("must not be called") }, DefaultConfig())
}

func BenchmarkForRange(b *testing.B) {
	data := make([]float32, 1<<20)
	fill := func(start, end int) {
		for i := start; i < end; i++ {
			data[i] = 1
		}
	}

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			ForRange(len(data), fill, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(len(data), fill, Sequential())
		}
	})
}
