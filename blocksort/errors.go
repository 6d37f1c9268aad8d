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

import "errors"

var (
	// ErrBlockSize is returned when the block size is not a positive power of two.
	ErrBlockSize = errors.New("blocksort: block size must be a positive power of two")

	// ErrLength is returned when the input is not a whole number of blocks.
	ErrLength = errors.New("blocksort: input length is not a multiple of the block size")

	// ErrOutputLength is returned when output and input lengths differ.
	ErrOutputLength = errors.New("blocksort: output length does not match input length")

	// ErrGroupTooLarge is returned when the Group strategy is asked for more
	// than MaxGroupSize lanes.
	ErrGroupTooLarge = errors.New("blocksort: block size exceeds the group size limit")

	// ErrKeyPanic is returned when the key function panics on a record.
	// The block's output is left untouched.
	ErrKeyPanic = errors.New("blocksort: key function panicked")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
	ErrUnknownStrategy = errors.New("blocksort: unknown strategy")
)
