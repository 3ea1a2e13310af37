package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_StartsAtOrigin(t *testing.T) {
	seq := NewSequence(0)

	assert.Equal(t, int64(0), seq.Next())
	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
}

func TestSequence_AdvancePastUpsertedID(t *testing.T) {
	seq := NewSequence(0)
	seq.Next() // 0

	seq.Advance(9999)

	assert.Equal(t, int64(10000), seq.Next(), "the next allocation jumps past the upserted id")
}

func TestSequence_AdvanceBehindIsNoop(t *testing.T) {
	seq := NewSequence(0)
	seq.Next() // 0
	seq.Next() // 1

	seq.Advance(0)

	assert.Equal(t, int64(2), seq.Next())
}

func TestSequence_ConcurrentNextNeverRepeats(t *testing.T) {
	seq := NewSequence(0)

	const goroutines = 16
	const perGoroutine = 200

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id := seq.Next()
				mu.Lock()
				assert.False(t, seen[id], "id %d allocated twice", id)
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine)
}
