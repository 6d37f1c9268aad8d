// Package blocksort sorts fixed-size blocks of keyed records with a bitonic
// sorting network, the way a GPU work-group sorts one tile in local memory.
//
// It is the local phase of a multi-pass sort: every block of N records (N a
// power of two) is sorted independently, and a later phase merges blocks.
//
// # Algorithm
//
// Each block is loaded into a scratch buffer of N slots. A group of N lanes
// then runs Batcher's bitonic network over it:
//   - stages of length 1, 2, 4, ..., N/2 build ever larger bitonic runs
//   - within a stage, distances length, length/2, ..., 1 compare lane i
//     against lane i^distance
//   - every round is a read phase and a write phase separated by a barrier
//
// Equal keys are ordered by their position in the input block, so the sort is
// stable.
//
// # Strategies
//
// Two execution strategies produce identical results:
//   - Lockstep evaluates all lanes' read phase, then all lanes' write phase,
//     as two passes over the buffer. No goroutines.
//   - Group runs one goroutine per lane and synchronises them with a Barrier.
//
// The default comes from the BLOCKSORT_STRATEGY environment variable
// ("lockstep" or "group") and is Lockstep when unset.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-blocksort/blocksort"
//
//	type item struct {
//	    id  string
//	    key uint32
//	}
//
//	func SortTiles(items []item) error {
//	    return blocksort.SortBlocks(items, items, 256, func(it item) uint32 { return it.key })
//	}
package blocksort
