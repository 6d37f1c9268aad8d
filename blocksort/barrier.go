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

import "sync"

// Barrier is a reusable synchronisation point for a fixed number of
// goroutines, the equivalent of a work-group barrier with a local memory
// fence.
//
// Wait blocks until every party has called it, then releases all of them and
// re-arms for the next phase. Writes made before Wait are visible to every
// party once Wait returns.
//
// Every party must call Wait the same number of times; a party that skips a
// Wait stalls the whole group.
type Barrier struct {
	mu      sync.Mutex
	arrived int
	release chan struct{}
	parties int
}

// NewBarrier returns a barrier for the given number of parties.
// parties < 1 is treated as 1.
func NewBarrier(parties int) *Barrier {
	return &Barrier{
		parties: max(parties, 1),
		release: make(chan struct{}),
	}
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties of the current phase have arrived.
func (b *Barrier) Wait() {
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.parties {
		// Last one in opens the current phase and arms the next.
		close(b.release)
		b.release = make(chan struct{})
		b.arrived = 0
		b.mu.Unlock()
		return
	}
	release := b.release
	b.mu.Unlock()
	<-release
}
