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
	"sync"
	"sync/atomic"
	"testing"
)

func TestBarrierParties(t *testing.T) {
	if got := NewBarrier(16).Parties(); got != 16 {
		t.Errorf("Parties() = %d, want 16", got)
	}
	if got := NewBarrier(0).Parties(); got != 1 {
		t.Errorf("NewBarrier(0).Parties() = %d, want 1", got)
	}
}

func TestBarrierSingleParty(t *testing.T) {
	b := NewBarrier(1)
	for range 10 {
		b.Wait() // Must not block
	}
}

// No party may leave phase p before every party has entered it, across many
// reuses of the same barrier.
func TestBarrierPhases(t *testing.T) {
	const parties = 32
	const phases = 200

	b := NewBarrier(parties)
	var arrived [phases]atomic.Int32
	var wg sync.WaitGroup
	var failed atomic.Bool

	for range parties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range phases {
				arrived[p].Add(1)
				b.Wait()
				if arrived[p].Load() != parties {
					failed.Store(true)
				}
			}
		}()
	}
	wg.Wait()

	if failed.Load() {
		t.Error("a party passed the barrier before all parties arrived")
	}
}

// Plain writes before Wait must be visible to other parties after it.
func TestBarrierVisibility(t *testing.T) {
	const parties = 8
	b := NewBarrier(parties)
	shared := make([]int, parties)
	sums := make([]int, parties)

	var wg sync.WaitGroup
	for i := range parties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 1; round <= 50; round++ {
				shared[i] = round * (i + 1)
				b.Wait()
				sum := 0
				for _, v := range shared {
					sum += v
				}
				sums[i] = sum
				b.Wait()
			}
		}()
	}
	wg.Wait()

	want := 50 * parties * (parties + 1) / 2
	for i, got := range sums {
		if got != want {
			t.Errorf("party %d saw sum %d, want %d", i, got, want)
		}
	}
}
