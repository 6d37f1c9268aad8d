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

// Command blocksort sorts unsigned integer keys block by block with the
// bitonic block sorter.
//
// Usage:
//
//	blocksort -block 8 5 3 1 4 2 0 7 6
//	seq 1024 | shuf | blocksort -block 256 -strategy group -workers 4
//
// Keys are read from the arguments or, if there are none, from stdin
// (whitespace separated). Each sorted block is printed on its own line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/go-blocksort/blocksort"
	"github.com/ajroetker/go-blocksort/contrib/workerpool"
)

var (
	blockSize = flag.Int("block", 8, "Block size, a power of two")
	strategy  = flag.String("strategy", blocksort.CurrentStrategy().String(), "Lane execution strategy (lockstep, group)")
	workers   = flag.Int("workers", 0, "Worker goroutines for independent blocks (0: GOMAXPROCS)")
	verbose   = flag.Bool("v", false, "Print the network shape to stderr")
)

func main() {
	flag.Parse()

	s, err := blocksort.ParseStrategy(*strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var keys []uint32
	if flag.NArg() > 0 {
		keys, err = parseKeys(strings.NewReader(strings.Join(flag.Args(), " ")))
	} else {
		keys, err = parseKeys(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose && blocksort.IsPowerOfTwo(*blockSize) {
		nw := blocksort.NewNetwork(*blockSize)
		fmt.Fprintf(os.Stderr, "strategy=%s block=%d rounds=%d blocks=%d\n",
			s, nw.Size(), nw.Rounds(), len(keys)/nw.Size())
	}

	pool := workerpool.New(*workers)
	defer pool.Close()

	identity := func(k uint32) uint32 { return k }
	if err := blocksort.SortBlocks(keys, keys, *blockSize, identity,
		blocksort.WithStrategy(s), blocksort.WithPool(pool)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		pool.Close()
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	writeBlocks(w, keys, *blockSize)
}

func parseKeys(r io.Reader) ([]uint32, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var keys []uint32
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", len(keys), err)
		}
		keys = append(keys, uint32(v))
	}
	return keys, sc.Err()
}

func writeBlocks(w io.Writer, keys []uint32, blockSize int) {
	for lo := 0; lo < len(keys); lo += blockSize {
		block := keys[lo:min(lo+blockSize, len(keys))]
		parts := make([]string, len(block))
		for i, k := range block {
			parts[i] = strconv.FormatUint(uint64(k), 10)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
}
