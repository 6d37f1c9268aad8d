// Copyright 2025 go-blocksort Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blocksort

import (
	"fmt"

	"github.com/ajroetker/go-blocksort/contrib/workerpool"
	"golang.org/x/exp/constraints"
)

// blocksPerBatch is how many blocks a worker grabs per atomic fetch.
const blocksPerBatch = 4

// poolSlot is the state of one pool slot: its kernel and the lowest block it
// failed on.
type poolSlot[T any, K constraints.Unsigned] struct {
	k     *kernel[T, K]
	block int
	err   error
}

type options struct {
	strategy Strategy
	pool     *workerpool.Pool
}

// Option configures SortBlocks and SortBlock.
type Option func(*options)

// WithStrategy overrides CurrentStrategy.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithPool runs blocks in parallel on pool. Without a pool, blocks are sorted
// one after another on the calling goroutine. SortBlocks may be called from a
// task already running on the same pool; the calling goroutine then sorts
// whatever blocks no idle worker picks up.
func WithPool(pool *workerpool.Pool) Option {
	return func(o *options) { o.pool = pool }
}

func buildOptions(opts []Option) options {
	o := options{strategy: CurrentStrategy()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func validate(inLen, outLen, blockSize int, strategy Strategy) error {
	if !IsPowerOfTwo(blockSize) {
		return fmt.Errorf("%w: got %d", ErrBlockSize, blockSize)
	}
	if inLen%blockSize != 0 {
		return fmt.Errorf("%w: %d records, block size %d", ErrLength, inLen, blockSize)
	}
	if outLen != inLen {
		return fmt.Errorf("%w: input %d, output %d", ErrOutputLength, inLen, outLen)
	}
	if strategy == Group && blockSize > MaxGroupSize {
		return fmt.Errorf("%w: %d > %d", ErrGroupTooLarge, blockSize, MaxGroupSize)
	}
	return nil
}

// SortBlocks sorts every contiguous block of blockSize records of in by key
// and stores it in the same block of out. Within a block, records with equal
// keys keep their input order. Blocks are independent of each other.
//
// in and out may be the same slice. An empty input is a no-op.
//
// If getKey panics, the failing block's output is left untouched, the other
// blocks are still sorted, and the error for the lowest failing block is
// returned wrapping ErrKeyPanic.
func SortBlocks[T any, K constraints.Unsigned](in, out []T, blockSize int, getKey KeyFunc[T, K], opts ...Option) error {
	o := buildOptions(opts)
	if err := validate(len(in), len(out), blockSize, o.strategy); err != nil {
		return err
	}
	numBlocks := len(in) / blockSize
	if numBlocks == 0 {
		return nil
	}

	if o.pool == nil {
		k := newKernel(blockSize, o.strategy, getKey)
		var firstErr error
		for b := range numBlocks {
			lo, hi := b*blockSize, (b+1)*blockSize
			if err := k.sort(in[lo:hi], out[lo:hi]); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("block %d: %w", b, err)
			}
		}
		return firstErr
	}

	slots := make([]poolSlot[T, K], o.pool.NumWorkers())
	o.pool.ParallelForBatched(numBlocks, blocksPerBatch, func(slot, start, end int) {
		st := &slots[slot]
		if st.k == nil {
			st.k = newKernel(blockSize, o.strategy, getKey)
		}
		for b := start; b < end; b++ {
			lo, hi := b*blockSize, (b+1)*blockSize
			if err := st.k.sort(in[lo:hi], out[lo:hi]); err != nil && (st.err == nil || b < st.block) {
				st.block, st.err = b, err
			}
		}
	})

	var firstErr error
	firstBlock := numBlocks
	for _, st := range slots {
		if st.err != nil && st.block < firstBlock {
			firstBlock, firstErr = st.block, st.err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("block %d: %w", firstBlock, firstErr)
	}
	return nil
}

// SortBlock sorts a single block; len(in) is the block size.
func SortBlock[T any, K constraints.Unsigned](in, out []T, getKey KeyFunc[T, K], opts ...Option) error {
	return SortBlocks(in, out, max(len(in), 1), getKey, opts...)
}

// IsSortedBlocks reports whether every block of data is in ascending key
// order. A trailing partial block is checked as well.
func IsSortedBlocks[T any, K constraints.Unsigned](data []T, blockSize int, getKey KeyFunc[T, K]) bool {
	if blockSize <= 0 {
		return false
	}
	for lo := 0; lo < len(data); lo += blockSize {
		hi := min(lo+blockSize, len(data))
		for i := lo + 1; i < hi; i++ {
			if getKey(data[i]) < getKey(data[i-1]) {
				return false
			}
		}
	}
	return true
}
