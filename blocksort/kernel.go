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
	"sync/atomic"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// laneSlot is a scratch slot owned by one goroutine of a Group. Lanes write
// their own slot concurrently in every write phase; the pad keeps two lanes'
// slots off a shared cache line.
type laneSlot[T any, K constraints.Unsigned] struct {
	s slot[T, K]
	_ cpu.CacheLinePad
}

// kernel owns the group-local state for sorting blocks of one size: the
// shared scratch buffer, the lanes' private registers and, for the Group
// strategy, the barrier. A kernel is reused across blocks but serves one
// block at a time.
type kernel[T any, K constraints.Unsigned] struct {
	nw       Network
	strategy Strategy
	getKey   KeyFunc[T, K]

	// Lockstep: local is the shared scratch buffer and held is each lane's
	// private copy of the value it decided to keep, captured in the read
	// phase and stored in the write phase.
	local []slot[T, K]
	held  []slot[T, K]

	// Group: one padded slot per lane goroutine.
	lanes   []laneSlot[T, K]
	barrier *Barrier

	// failed is set during setup when a lane could not load its record.
	// It is only read after the setup barrier, so all lanes agree on it.
	failed atomic.Bool
}

func newKernel[T any, K constraints.Unsigned](n int, strategy Strategy, getKey KeyFunc[T, K]) *kernel[T, K] {
	k := &kernel[T, K]{
		nw:       networkFor(n),
		strategy: strategy,
		getKey:   getKey,
	}
	switch strategy {
	case Group:
		k.lanes = make([]laneSlot[T, K], n)
		k.barrier = NewBarrier(n)
	default:
		k.local = make([]slot[T, K], n)
		k.held = make([]slot[T, K], n)
	}
	return k
}

// sort sorts one block. len(in) and len(out) must equal the network size;
// in and out may alias. On error out is left untouched.
func (k *kernel[T, K]) sort(in, out []T) error {
	switch k.strategy {
	case Group:
		return k.sortGroup(in, out)
	default:
		return k.sortLockstep(in, out)
	}
}

// load builds lane i's slot. A panicking getKey becomes ErrKeyPanic.
func (k *kernel[T, K]) load(i int, rec T) (s slot[T, K], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: record %d: %v", ErrKeyPanic, i, r)
		}
	}()
	return slot[T, K]{rec: rec, key: k.getKey(rec), origin: i}, nil
}

// sortLockstep runs every round as two passes over the buffer: the read pass
// fills held for all lanes, then the write pass publishes held. The pass
// boundaries stand in for the barriers.
func (k *kernel[T, K]) sortLockstep(in, out []T) error {
	local, held := k.local, k.held
	for i, rec := range in {
		s, err := k.load(i, rec)
		if err != nil {
			return err
		}
		local[i] = s
	}

	for _, s := range k.nw.Steps() {
		for i := range local {
			j := s.Partner(i)
			if takesPartner(s, i, &local[i], &local[j]) {
				held[i] = local[j]
			} else {
				held[i] = local[i]
			}
		}
		copy(local, held)
	}

	for i := range out {
		out[i] = local[i].rec
	}
	return nil
}

// sortGroup runs one goroutine per lane over the shared buffer and returns
// the first lane error.
func (k *kernel[T, K]) sortGroup(in, out []T) error {
	k.failed.Store(false)
	var g errgroup.Group
	for i := range k.nw.Size() {
		g.Go(func() error {
			return k.lane(i, in, out)
		})
	}
	return g.Wait()
}

// lane is the body executed by lane i. Every lane calls Wait the same number
// of times regardless of the data.
func (k *kernel[T, K]) lane(i int, in, out []T) error {
	lanes := k.lanes
	s, err := k.load(i, in[i])
	if err != nil {
		k.failed.Store(true)
	} else {
		lanes[i].s = s
	}
	k.barrier.Wait()
	if k.failed.Load() {
		return err
	}

	for _, st := range k.nw.Steps() {
		j := st.Partner(i)
		mine, theirs := lanes[i].s, lanes[j].s
		held := mine
		if takesPartner(st, i, &mine, &theirs) {
			held = theirs
		}
		// Partner must have read our slot before we overwrite it.
		k.barrier.Wait()
		lanes[i].s = held
		// All writes of this round land before the next round reads.
		k.barrier.Wait()
	}

	out[i] = lanes[i].s.rec
	return nil
}
