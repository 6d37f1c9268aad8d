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
	"math/bits"
	"sync"
)

// Step is one compare-exchange round of the bitonic network.
type Step struct {
	// Length is the size of the sorted runs being merged in this stage.
	Length int

	// Inc is the distance between compared lanes.
	Inc int
}

// Partner returns the lane that lane i is compared against.
func (s Step) Partner(i int) int {
	return i ^ s.Inc
}

// Descending reports whether lane i belongs to a descending sub-merge.
// The last stage (Length == N/2) is always ascending for i < N.
func (s Step) Descending(i int) bool {
	return i&(s.Length<<1) != 0
}

// Network is the static sequence of rounds for one block size.
// It depends only on the size, never on the data.
type Network struct {
	size  int
	steps []Step
}

// NewNetwork builds the network for blocks of n lanes.
// n must be a power of two; n == 1 yields an empty network.
func NewNetwork(n int) Network {
	k := Log2(n)
	steps := make([]Step, 0, k*(k+1)/2)
	for length := 1; length < n; length <<= 1 {
		for inc := length; inc > 0; inc >>= 1 {
			steps = append(steps, Step{Length: length, Inc: inc})
		}
	}
	return Network{size: n, steps: steps}
}

// Size returns the number of lanes.
func (nw Network) Size() int {
	return nw.size
}

// Steps returns the rounds in execution order. The slice is shared and must
// not be modified.
func (nw Network) Steps() []Step {
	return nw.steps
}

// Rounds returns the number of synchronised rounds, k(k+1)/2 for n = 2^k.
func (nw Network) Rounds() int {
	return len(nw.steps)
}

var networks sync.Map // int -> Network

// networkFor returns the cached network for size n.
func networkFor(n int) Network {
	if nw, ok := networks.Load(n); ok {
		return nw.(Network)
	}
	nw, _ := networks.LoadOrStore(n, NewNetwork(n))
	return nw.(Network)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns floor(log2(n)) for n > 0, and 0 otherwise.
func Log2(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}
