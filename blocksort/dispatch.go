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
	"os"
	"strings"
)

// Strategy selects how the lanes of a group are executed.
type Strategy int

const (
	// Lockstep simulates the group sequentially: all read phases of a round,
	// then all write phases.
	Lockstep Strategy = iota

	// Group runs one goroutine per lane, synchronised by a Barrier.
	Group
)

// MaxGroupSize is the largest block the Group strategy accepts, the usual
// work-group limit of GPU devices. Lockstep has no limit.
const MaxGroupSize = 1024

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case Lockstep:
		return "lockstep"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name as returned by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lockstep", "":
		return Lockstep, nil
	case "group":
		return Group, nil
	}
	return Lockstep, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// currentStrategy is the default strategy, set by init from the environment.
var currentStrategy Strategy

func init() {
	currentStrategy = StrategyEnv()
}

// CurrentStrategy returns the strategy used when none is passed explicitly.
func CurrentStrategy() Strategy {
	return currentStrategy
}

// StrategyEnv reads the BLOCKSORT_STRATEGY environment variable.
// Unset or unrecognised values select Lockstep.
func StrategyEnv() Strategy {
	s, err := ParseStrategy(os.Getenv("BLOCKSORT_STRATEGY"))
	if err != nil {
		return Lockstep
	}
	return s
}
