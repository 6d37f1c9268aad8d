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

import "golang.org/x/exp/constraints"

// KeyFunc extracts the sort key of a record.
type KeyFunc[T any, K constraints.Unsigned] func(T) K

// slot is one entry of the scratch buffer. origin is the record's position
// in the input block and breaks ties between equal keys.
type slot[T any, K constraints.Unsigned] struct {
	rec    T
	key    K
	origin int
}

// smaller reports whether theirs orders before mine.
// (key, origin) pairs are unique within a block, so this is a strict total order.
func smaller[T any, K constraints.Unsigned](mine, theirs *slot[T, K]) bool {
	return theirs.key < mine.key || (theirs.key == mine.key && theirs.origin < mine.origin)
}

// takesPartner reports whether lane i ends the round holding its partner's
// slot instead of its own. Both lanes of a pair evaluate it independently and
// reach the same answer, so a pair either swaps or stays.
func takesPartner[T any, K constraints.Unsigned](s Step, i int, mine, theirs *slot[T, K]) bool {
	j := s.Partner(i)
	return smaller(mine, theirs) != (j < i) != s.Descending(i)
}
