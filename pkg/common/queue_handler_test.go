package common

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueHandlerBatches(t *testing.T) {
	var mu sync.Mutex
	var batches [][]int
	q := NewQueueHandlerWithInterval(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, slices.Clone(items))
	}, 2, time.Hour)

	q.Add(1, 2, 3)
	q.AddIter(slices.Values([]int{4, 5}))
	assert.Equal(t, 5, q.Len())
	q.Close()

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, batches)
	assert.Equal(t, 0, q.Len())
}

func TestQueueHandlerProcessesOnTick(t *testing.T) {
	processed := make(chan []string, 1)
	q := NewQueueHandlerWithInterval(func(items []string) {
		processed <- slices.Clone(items)
	}, 10, 10*time.Millisecond)
	defer q.Close()

	q.Add("view")
	select {
	case items := <-processed:
		assert.Equal(t, []string{"view"}, items)
	case <-time.After(2 * time.Second):
		t.Fatal("queue was not processed")
	}
}
