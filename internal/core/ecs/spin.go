package ecs

import (
	"runtime"
	"sync/atomic"
)

const (
	spinWriter uint32 = 1
	spinReader uint32 = 2

	// Adding these is the atomic decrement of one reader or the writer.
	spinReaderDone = ^(spinReader - 1)
	spinWriterDone = ^(spinWriter - 1)
)

// SpinRW is a reader/writer spinlock packed into one word: bit 0 is the
// writer flag and every reader adds 2. Acquisition never fails and never
// blocks in the scheduler, it yields with runtime.Gosched while waiting.
// Critical sections must stay short.
//
// The zero value is unlocked.
type SpinRW struct {
	state atomic.Uint32
}

// RLock optimistically registers a reader, then backs out and waits if a
// writer holds the lock.
func (l *SpinRW) RLock() {
	for {
		if l.state.Add(spinReader)&spinWriter == 0 {
			return
		}
		l.state.Add(spinReaderDone)
		for l.state.Load()&spinWriter != 0 {
			runtime.Gosched()
		}
	}
}

func (l *SpinRW) RUnlock() {
	l.state.Add(spinReaderDone)
}

func (l *SpinRW) TryRLock() bool {
	if l.state.Add(spinReader)&spinWriter == 0 {
		return true
	}
	l.state.Add(spinReaderDone)
	return false
}

// Lock waits until there are no readers and no writer.
func (l *SpinRW) Lock() {
	for !l.state.CompareAndSwap(0, spinWriter) {
		runtime.Gosched()
	}
}

// Unlock clears only the writer bit; readers spinning in RLock may have a
// transient increment in flight.
func (l *SpinRW) Unlock() {
	l.state.Add(spinWriterDone)
}

func (l *SpinRW) TryLock() bool {
	return l.state.CompareAndSwap(0, spinWriter)
}

// Observe returns the raw reader count and writer flag. Readers counted here
// may be in the middle of backing out of RLock.
func (l *SpinRW) Observe() (readers uint32, writer bool) {
	s := l.state.Load()
	return s / spinReader, s&spinWriter != 0
}
