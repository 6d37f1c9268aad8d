// Copyright 2025 The go-blocksort Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent pool of goroutines that fans
// independent blocks out across CPUs.
//
// Each task handed to a worker carries a slot number in [0, NumWorkers()), so
// callers can keep per-slot state (such as a group's scratch buffer) and
// reuse it for every block that slot processes.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	scratch := make([][]uint32, pool.NumWorkers())
//	pool.ParallelForBatched(numBlocks, 4, func(slot, start, end int) {
//	    for b := start; b < end; b++ {
//	        sortBlock(b, &scratch[slot])
//	    }
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once by New and
// serve tasks until Close.
type Pool struct {
	numWorkers int
	workC      chan func()
	closeOnce  sync.Once
	closed     atomic.Bool
}

// New creates a pool with numWorkers goroutines.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan func(), numWorkers),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for fn := range p.workC {
		fn()
	}
}

// NumWorkers returns the number of workers, which is also the number of
// distinct slots passed to task functions.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the pool down. Calling Close more than once is safe; a closed
// pool runs subsequent work on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into one contiguous range per slot and blocks
// until all of them are processed.
func (p *Pool) ParallelFor(n int, fn func(slot, start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	p.ParallelForBatched(n, (n+workers-1)/workers, fn)
}

// ParallelForBatched hands out [0, n) in batches of batchSize by atomic work
// stealing, which balances uneven blocks better than fixed ranges. A slot
// never runs two batches at once. Blocks until all batches complete.
//
// The calling goroutine works as slot 0 and helpers are only waited for once
// they have started, so a task may itself call ParallelForBatched on the same
// pool: with every worker busy, the caller simply processes all batches.
func (p *Pool) ParallelForBatched(n, batchSize int, fn func(slot, start, end int)) {
	if n <= 0 {
		return
	}
	batchSize = max(batchSize, 1)
	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || p.closed.Load() {
		fn(0, 0, n)
		return
	}

	var next atomic.Int64
	run := func(slot int) {
		for {
			start := int(next.Add(1)-1) * batchSize
			if start >= n {
				return
			}
			fn(slot, start, min(start+batchSize, n))
		}
	}

	var (
		mu       sync.Mutex
		finished bool
		running  sync.WaitGroup
	)
	for slot := 1; slot < workers; slot++ {
		helper := func() {
			mu.Lock()
			if finished {
				mu.Unlock()
				return
			}
			running.Add(1)
			mu.Unlock()
			defer running.Done()
			run(slot)
		}
		select {
		case p.workC <- helper:
		default:
			// Queue full: the caller and already queued helpers cover it.
		}
	}

	run(0)
	mu.Lock()
	finished = true
	mu.Unlock()
	running.Wait()
}
