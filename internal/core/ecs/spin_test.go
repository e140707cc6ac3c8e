package ecs

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinRWExcludesWriterFromReaders(t *testing.T) {
	var (
		lock       SpinRW
		readers    atomic.Int32
		writers    atomic.Int32
		violations atomic.Int32
		wg         sync.WaitGroup
	)

	check := func() {
		r, w := readers.Load(), writers.Load()
		if w > 1 || (w == 1 && r != 0) || r < 0 {
			violations.Add(1)
		}
	}

	const readerCount = 16
	const rounds = 2000

	for i := 0; i < readerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				lock.RLock()
				readers.Add(1)
				check()
				readers.Add(-1)
				lock.RUnlock()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < rounds; j++ {
			lock.Lock()
			writers.Add(1)
			check()
			writers.Add(-1)
			lock.Unlock()
		}
	}()

	wg.Wait()
	assert.Zero(t, violations.Load())

	r, w := lock.Observe()
	assert.Zero(t, r)
	assert.False(t, w)
}

func TestSpinRWTryLock(t *testing.T) {
	var lock SpinRW

	require.True(t, lock.TryRLock())
	require.True(t, lock.TryRLock())
	assert.False(t, lock.TryLock(), "writer must wait for readers")

	r, w := lock.Observe()
	assert.Equal(t, uint32(2), r)
	assert.False(t, w)

	lock.RUnlock()
	lock.RUnlock()
	require.True(t, lock.TryLock())
	assert.False(t, lock.TryRLock(), "reader must wait for writer")
	assert.False(t, lock.TryLock())

	_, w = lock.Observe()
	assert.True(t, w)
	lock.Unlock()

	r, w = lock.Observe()
	assert.Zero(t, r)
	assert.False(t, w)
}

func TestSpinRWWritersSerialize(t *testing.T) {
	var (
		lock    SpinRW
		counter int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				lock.Lock()
				counter++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8000, counter)
}
