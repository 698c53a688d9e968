package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatest(t *testing.T) {
	l := NewLatest()

	_, ok := l.Get()
	assert.False(t, ok)

	l.Log(sampleEvent(1))
	l.Log(sampleEvent(2))

	got, ok := l.Get()
	assert.True(t, ok)
	assert.Equal(t, uint64(2), got.Cycle)
}

func TestLatestConcurrent(t *testing.T) {
	l := NewLatest()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			l.Log(sampleEvent(uint64(i)))
		}(i)
		go func() {
			defer wg.Done()
			l.Get()
		}()
	}
	wg.Wait()
}
